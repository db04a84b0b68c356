// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/cacheutil"
	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/output"
)

// CacheCommandAction reports on the archive cache and optionally purges
// entries older than --purge hours.
func CacheCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "cache") {
		return nil
	}

	if hours := cmd.Int("purge"); hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			return err
		}
	}

	base, ok := cacheutil.Dir()
	if !ok {
		log.Warn("no cache directory could be resolved")
		return nil
	}

	var rows []map[string]interface{}
	_ = filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		rows = append(rows, map[string]interface{}{
			"entry":    path,
			"size":     humanize.Bytes(uint64(info.Size())),
			"modified": info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})

	log.Infof("cache %s holds %d entries (enabled=%v)", base, len(rows), cacheutil.Enabled())

	fields := []string{"entry", "size", "modified"}
	return output.Spit(os.Stdout, fields, rows, SpitOptions(cmd))
}

func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "cache",
		Usage:     "inspect or purge the archive cache",
		UsageText: `tfd cache [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "purge",
				Usage: "purge entries older than this many hours",
			},
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return CacheCommandAction(ctx, c)
		},
	}
}
