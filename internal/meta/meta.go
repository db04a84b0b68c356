// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/todddeluca/tfdgo/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
