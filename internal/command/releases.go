// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/output"
	"github.com/todddeluca/tfdgo/internal/release"
)

// ReleasesCommandAction lists the releases the source carries, newest
// first, along with whether each is fetched and extracted under the data
// dir.
func ReleasesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "releases") {
		return nil
	}

	src, err := NewSource(ctx, cmd)
	if err != nil {
		return err
	}

	candidates, err := src.Releases(ctx)
	if err != nil {
		return err
	}
	release.Sort(candidates)

	limit := cmd.Int("limit")
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	root := DataDir(cmd)
	rows := make([]map[string]interface{}, 0, len(candidates))
	for _, rel := range candidates {
		fetched := false
		if _, err := os.Stat(release.ArchivePath(root, rel.Date)); err == nil {
			fetched = true
		}

		extracted := false
		if dir, err := release.TablesDir(root, rel.Date); err == nil {
			if _, err := os.Stat(dir); err == nil {
				extracted = true
			}
		}

		rows = append(rows, map[string]interface{}{
			"release":   rel.Date,
			"archive":   release.ArchiveBasename(rel.Date),
			"fetched":   fetched,
			"extracted": extracted,
		})
	}

	fields := []string{"release", "archive", "fetched", "extracted"}
	return output.Spit(os.Stdout, fields, rows, SpitOptions(cmd))
}

func ReleasesCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "releases",
		Usage:     "list the releases the source carries",
		UsageText: `tfd releases [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit releases returned (<= 0 means all)",
				Value:   99999,
			},
			NewSourceFlag("releases", meta.Config.Source),
			NewDirFlag("releases", meta.Config.Source),
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return ReleasesCommandAction(ctx, c)
		},
	}
}
