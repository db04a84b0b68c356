// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/todddeluca/tfdgo/internal/config"
	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/urfave/cli/v3"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the tfd
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "tfd",
		Usage: "Gene Ontology termdb dataset tool",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tfd version info",
				HideDefault: true,
			},
		},
	}

	globalFlags := NewGlobalFlags(ns)
	app.Commands = append(app.Commands,
		CacheCommandBuilder(app, meta, globalFlags),
		DiffCommandBuilder(app, meta, globalFlags),
		ExtractCommandBuilder(app, meta, globalFlags),
		FetchCommandBuilder(app, meta, globalFlags),
		LoadCommandBuilder(app, meta, globalFlags),
		ReleasesCommandBuilder(app, meta, globalFlags),
		TermsCommandBuilder(app, meta, globalFlags),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
