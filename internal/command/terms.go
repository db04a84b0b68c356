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
	"github.com/todddeluca/tfdgo/internal/output"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/term"
)

// TermsCommandAction reads the term table of an extracted release and
// emits it through the output pipeline, so --filter/--sort/--attrs work
// the same way they do everywhere else.
func TermsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "terms") {
		return nil
	}

	dates, err := localReleases(cmd)
	if err != nil {
		return err
	}
	if len(dates) != 1 {
		return fmt.Errorf("terms wants exactly one release, got %d", len(dates))
	}

	root := DataDir(cmd)
	termFile, err := release.TermFile(root, dates[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(termFile); err != nil {
		return fmt.Errorf("term table not found, extract the release first: %s", termFile)
	}

	terms, err := term.Read(termFile)
	if err != nil {
		return err
	}
	log.Debugf("read %d terms from %s", len(terms), termFile)

	return output.Spit(os.Stdout, term.Fields(), term.Maps(terms), SpitOptions(cmd))
}

func TermsCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "terms",
		Usage:     "query the term table of a release",
		UsageText: `tfd terms [release] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewDirFlag("terms", meta.Config.Source),
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return TermsCommandAction(ctx, c)
		},
	}
}
