// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/archive"
	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/source"
	"github.com/todddeluca/tfdgo/internal/temps"
	"github.com/todddeluca/tfdgo/internal/util"
)

// FetchCommandAction downloads the termdb-tables archive for each requested
// release into <dir>/geneontology/, optionally extracting it in place.
func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "fetch") {
		return nil
	}

	src, err := NewSource(ctx, cmd)
	if err != nil {
		return err
	}

	releases, err := ResolveReleases(ctx, cmd, src)
	if err != nil {
		return err
	}

	root := DataDir(cmd)
	for _, rel := range releases {
		target := release.ArchivePath(root, rel.Date)

		if _, err := os.Stat(target); err == nil && !cmd.Bool("force") {
			log.Infof("%s already exists, skipping", target)
		} else {
			if err := fetchOne(ctx, src, rel, target); err != nil {
				return err
			}
		}

		if cmd.Bool("extract") {
			if err := archive.Extract(target); err != nil {
				return err
			}
		}
	}

	return nil
}

func fetchOne(ctx context.Context, src source.Source, rel release.Release, target string) error {
	data, err := src.Fetch(ctx, rel)
	if err != nil {
		return err
	}
	log.Infof("fetched release %s from %s (%s)", rel.Date, src, humanize.Bytes(uint64(len(data))))

	// A forced re-fetch of an existing archive may come back identical.
	// Compare before clobbering so the mtime survives.
	if _, err := os.Stat(target); err == nil {
		tmp, cleanup, err := temps.File()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := os.WriteFile(tmp, data, 0o664); err != nil {
			return err
		}
		if same, err := util.SameContents(tmp, target); err == nil && same {
			log.Infof("%s unchanged", target)
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), release.DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0o664); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	log.Infof("wrote %s", target)

	return nil
}

func FetchCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "download a release archive",
		UsageText: `tfd fetch [release ...] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "extract",
				Aliases:     []string{"x"},
				Usage:       "extract the archive after downloading",
				HideDefault: true,
			},
			NewSourceFlag("fetch", meta.Config.Source),
			NewDirFlag("fetch", meta.Config.Source),
			tldrFlag,
			forceFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return FetchCommandAction(ctx, c)
		},
	}
}
