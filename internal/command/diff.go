// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/todddeluca/tfdgo/internal/meta"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/term"
)

// DiffCommandAction compares the term tables of two extracted releases.
// Terms are keyed by accession, so the diff reads as terms added, removed
// or changed between the releases.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	specs := cmd.Args().Slice()
	if len(specs) != 2 {
		return fmt.Errorf("diff wants exactly two releases, got %d", len(specs))
	}

	root := DataDir(cmd)
	docs := make([][]byte, 2)
	for i, spec := range specs {
		date, err := release.Normalize(spec)
		if err != nil {
			return err
		}
		doc, err := termDocument(root, date)
		if err != nil {
			return err
		}
		docs[i] = doc
	}

	differ := gojsondiff.New()
	d, err := differ.Compare(docs[0], docs[1])
	if err != nil {
		return fmt.Errorf("failed to diff: %w", err)
	}

	if !d.Modified() {
		log.Infof("releases %s and %s have identical term tables", specs[0], specs[1])
		return nil
	}

	var out string
	switch cmd.String("output") {
	case "json":
		f := formatter.NewDeltaFormatter()
		out, err = f.Format(d)
	default:
		var left map[string]interface{}
		if err := json.Unmarshal(docs[0], &left); err != nil {
			return err
		}
		f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
			ShowArrayIndex: false,
			Coloring:       cmd.Bool("color"),
		})
		out, err = f.Format(d)
	}
	if err != nil {
		return fmt.Errorf("failed to format diff: %w", err)
	}

	fmt.Fprint(os.Stdout, out)
	return nil
}

// termDocument marshals a release's term table as a JSON object keyed by
// accession.
func termDocument(root, date string) ([]byte, error) {
	termFile, err := release.TermFile(root, date)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(termFile); err != nil {
		return nil, fmt.Errorf("term table not found, extract the release first: %s", termFile)
	}

	terms, err := term.Read(termFile)
	if err != nil {
		return nil, err
	}

	byAcc := make(map[string]interface{}, len(terms))
	for _, t := range terms {
		byAcc[t.Acc] = t.Map()
	}

	return json.Marshal(byAcc)
}

func DiffCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "diff the term tables of two releases",
		UsageText: `tfd diff <release> <release> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewDirFlag("diff", meta.Config.Source),
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return DiffCommandAction(ctx, c)
		},
	}
}
