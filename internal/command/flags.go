// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/todddeluca/tfdgo/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	forceFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "force",
		Usage:       "redo the work even if the result already exists",
		HideDefault: true,
	}
)

// NewGlobalFlags builds the output-shaping flags every query command
// carries. params[0] is the command name, used to namespace config file
// lookups so per-command settings win over globals.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewSourceFlag constructs the "source" flag, optionally namespaced to a
// command and config file. params[1] is the config file.
func NewSourceFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "source",
		Usage: "archive site URL (ftp, http(s) or s3)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TFD_SOURCE"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewDirFlag constructs the "dir" flag for the local dataset root,
// optionally namespaced to a command and config file. params[1] is the
// config file.
func NewDirFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "root directory holding downloaded datasets",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TFD_DIR"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
