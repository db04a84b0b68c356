// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// Package termdb loads a release's term table into a local sqlite database
// and answers simple queries against it.
package termdb
