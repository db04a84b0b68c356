// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/output"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/source"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr tfd <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "tfd", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// DataDir resolves the dataset root for cmd. The --dir flag wins, then the
// starting directory recorded at startup.
func DataDir(cmd *cli.Command) string {
	if dir := cmd.String("dir"); dir != "" {
		return dir
	}
	m := GetMeta(cmd)
	if m.StartingDir != "" {
		return m.StartingDir
	}
	dir, _ := os.Getwd()
	return dir
}

// NewSource builds the archive source for cmd from the --source flag.
func NewSource(ctx context.Context, cmd *cli.Command) (source.Source, error) {
	src, err := source.New(ctx, cmd.String("source"))
	if err != nil {
		return nil, err
	}
	log.Debugf("source: %s", src)
	return src, nil
}

// ResolveReleases resolves the command's positional args as release specs
// against the source's listing. No args means latest.
func ResolveReleases(ctx context.Context, cmd *cli.Command, src source.Source) ([]release.Release, error) {
	candidates, err := src.Releases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	log.Debugf("candidates: %d", len(candidates))

	return release.Find(candidates, cmd.Args().Slice()...)
}

// SpitOptions assembles output.Options from the global flags.
func SpitOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Attrs:  cmd.String("attrs"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// guessedRelease returns the release date to assume when no spec is given
// and no source listing is available.
func guessedRelease() string {
	return release.Guess(time.Now())
}

// TermDBPath returns the local path of a release's sqlite termdb,
// e.g. "<root>/geneontology/go_201206-termdb.sqlite".
func TermDBPath(root, date string) string {
	basename := fmt.Sprintf("go_%s-termdb.sqlite", release.Compact(date))
	return filepath.Join(root, "geneontology", basename)
}
