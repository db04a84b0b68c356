// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TFD_LOG env variable.  If TFD_LOG_FILE names a file, records go there
// through the concurrent-safe file handler instead of stdout.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("TFD_LOG"))
	if level == "" {
		level = "ERROR"
	}
	if path := os.Getenv("TFD_LOG_FILE"); path != "" {
		log.SetHandler(NewFileHandler(path))
	} else {
		log.SetHandler(&CustomHandler{})
	}
	log.SetLevelFromString(level)
}

// CustomHandler formats log messages and writes to stdout
type CustomHandler struct{}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	message := e.Message
	fmt.Fprintf(os.Stdout, "%s %.1s %s\n", timestamp, level, message)
	return nil
}

// FileHandler appends records to a file, opening and closing it around every
// write.  A long-lived shared handle lets records from separate processes
// appending to the same file (batch jobs fanned out across a cluster)
// interleave mid-line; open-write-flush-close keeps each record whole.
type FileHandler struct {
	filename string
}

// NewFileHandler returns a handler writing to the given path.  The path is
// made absolute up front so a later chdir doesn't move the log.
func NewFileHandler(filename string) *FileHandler {
	if abs, err := filepath.Abs(filename); err == nil {
		filename = abs
	}
	return &FileHandler{filename: filename}
}

// HandleLog implements the log.Handler interface.
func (h *FileHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	msg := fmt.Sprintf("%s %.1s %s\n", timestamp, level, e.Message)

	f, err := os.OpenFile(h.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(msg); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
