// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/term"
	"github.com/todddeluca/tfdgo/internal/termdb"
)

// LoadCommandAction loads the term table of an extracted release into a
// per-release sqlite database next to the archive.
func LoadCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "load") {
		return nil
	}

	dates, err := localReleases(cmd)
	if err != nil {
		return err
	}

	root := DataDir(cmd)
	for _, date := range dates {
		termFile, err := release.TermFile(root, date)
		if err != nil {
			return err
		}
		if _, err := os.Stat(termFile); err != nil {
			return fmt.Errorf("term table not found, extract the release first: %s", termFile)
		}

		dbPath := TermDBPath(root, date)
		if _, err := os.Stat(dbPath); err == nil && !cmd.Bool("force") {
			log.Infof("%s already exists, skipping", dbPath)
			continue
		}

		terms, err := term.Read(termFile)
		if err != nil {
			return err
		}

		db, err := termdb.Open(dbPath)
		if err != nil {
			return err
		}

		n, err := termdb.Load(ctx, db, terms)
		if cerr := db.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", dbPath, err)
		}
		log.Infof("loaded %d terms into %s", n, dbPath)
	}

	return nil
}

func LoadCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "load the term table of a release into a sqlite termdb",
		UsageText: `tfd load [release ...] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewDirFlag("load", meta.Config.Source),
			tldrFlag,
			forceFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return LoadCommandAction(ctx, c)
		},
	}
}
