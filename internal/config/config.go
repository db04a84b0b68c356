// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type is a loaded config file plus the namespace used for key lookups.
// The namespace is normally the tfd subcommand, so `fetch.source` can be
// set per-command while `source` applies everywhere.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

// Load reads tfd.yaml and caches it in the package-level Config.  An
// optional namespace (usually the subcommand name) scopes later lookups.
func Load(namespace ...string) (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, err
	}

	Config = Type{
		Source: path,
		Data:   data}
	if len(namespace) == 1 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// get traverses the map using a dotted key path.  The namespaced form of
// the key is tried first so per-command settings win.
func (cfg *Type) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 {
		_, _ = Load(cfg.Namespace)
	}

	candidateKeys := []string{"", kspec}
	if cfg.Namespace != "" {
		candidateKeys[0] = cfg.Namespace + "." + kspec
	}

	for _, key := range candidateKeys {
		keys := strings.Split(key, ".")
		var current interface{} = Config.Data

		success := true
		for _, key := range keys {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[key]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

func GetString(key string, defaultValue ...string) (string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetStringSlice returns the list value at key.  Scalar items are
// stringified with %v so numeric entries in the yaml don't error.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	items, ok := val.([]interface{})
	if !ok {
		return nil, errors.New("value is not a list")
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, fmt.Sprintf("%v", item))
	}
	return result, nil
}

// getConfigPath resolves tfd.yaml.  TFD_CFG wins when set; otherwise the
// standard per-platform config locations are scanned.
func getConfigPath() (string, error) {
	if path := os.Getenv("TFD_CFG"); path != "" {
		fileInfo, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", path)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("TFD_CFG points to a directory: %s", path)
		}
		return path, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, "tfd.yaml")
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("config file not found in standard locations")
}
