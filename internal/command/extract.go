// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/archive"
	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/release"
)

// ExtractCommandAction unpacks already-downloaded release archives. The
// positional args are release specs; full spec resolution needs a source
// listing, so only dates, YYYYMM forms and an empty default are accepted
// here.
func ExtractCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "extract") {
		return nil
	}

	dates, err := localReleases(cmd)
	if err != nil {
		return err
	}

	root := DataDir(cmd)
	for _, date := range dates {
		archivePath := release.ArchivePath(root, date)
		if _, err := os.Stat(archivePath); err != nil {
			return fmt.Errorf("archive not found, fetch it first: %s", archivePath)
		}

		tablesDir, err := release.TablesDir(root, date)
		if err != nil {
			return err
		}
		if _, err := os.Stat(tablesDir); err == nil && !cmd.Bool("force") {
			log.Infof("%s already exists, skipping", tablesDir)
			continue
		}

		if err := archive.Extract(archivePath); err != nil {
			return err
		}
		log.Infof("extracted %s", tablesDir)
	}

	return nil
}

// localReleases resolves the positional args to release dates without
// consulting a source. No args means the guessed latest release.
func localReleases(cmd *cli.Command) ([]string, error) {
	specs := cmd.Args().Slice()
	if len(specs) == 0 {
		return []string{guessedRelease()}, nil
	}

	var dates []string
	for _, s := range specs {
		date, err := release.Normalize(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func ExtractCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "unpack a downloaded release archive",
		UsageText: `tfd extract [release ...] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewDirFlag("extract", meta.Config.Source),
			tldrFlag,
			forceFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return ExtractCommandAction(ctx, c)
		},
	}
}
