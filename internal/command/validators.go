// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todddeluca/tfdgo/internal/output"
	"github.com/urfave/cli/v3"
)

// GlobalFlagsValidator checks the flags that can't be validated per-flag
// because their values only make sense as a whole, currently the --filter
// expression list.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return output.ValidateFilters(c.String("filter"))
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	for _, v := range output.Formats() {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", output.Formats())
}
