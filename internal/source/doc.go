// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// Package source abstracts over the places a termdb release archive can be
// fetched from: the canonical FTP site, an HTTP(S) mirror, or an S3 bucket.
package source
