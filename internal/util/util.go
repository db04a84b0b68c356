// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package util

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"
)

// RetryOptions controls Retry. Tries is the total number of attempts,
// including the first. Delay is the pause between attempts, multiplied by
// Backoff after each failure. Pred, when set, inspects the error and
// returns false to stop retrying immediately.
type RetryOptions struct {
	Tries   int
	Delay   time.Duration
	Backoff float64
	Pred    func(error) bool
}

// Retry executes op until it succeeds, the attempts are exhausted, the
// predicate rejects the error, or the context is done. The last error is
// returned. Tries <= 0 means op is never executed and nil is returned.
func Retry(ctx context.Context, opts RetryOptions, op func() error) error {
	if opts.Backoff == 0 {
		opts.Backoff = 1
	}

	delay := opts.Delay
	var err error
	for i := 0; i < opts.Tries; i++ {
		if err = op(); err == nil {
			return nil
		}
		if opts.Pred != nil && !opts.Pred(err) {
			return err
		}
		if i == opts.Tries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * opts.Backoff)
	}
	return err
}

// falsies are the strings (uppercased) that StrToBool maps to false.
// Everything else is true.
var falsies = map[string]bool{
	"F": true, "FALSE": true, "0": true, "0.0": true,
	"NO": true, "N": true, "NONE": true,
}

// StrToBool interprets a human-readable string as a boolean.
func StrToBool(value string) bool {
	return !falsies[strings.ToUpper(strings.TrimSpace(value))]
}

// BoolFromEnv looks up key in the environment. An unset key returns the
// default; a set key is interpreted with StrToBool.
func BoolFromEnv(key string, defaultValue bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		return StrToBool(v)
	}
	return defaultValue
}

// SameContents compares two files by SHA-1 digest and reports whether their
// contents are identical. Either file failing to open is an error.
func SameContents(path1, path2 string) (bool, error) {
	d1, err := fileDigest(path1)
	if err != nil {
		return false, err
	}
	d2, err := fileDigest(path2)
	if err != nil {
		return false, err
	}
	return d1 == d2, nil
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, bufio.NewReader(f)); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SplitIntoN splits items into n evenly sized groups. If items is not
// evenly divisible, earlier groups get one extra element. When exact is
// true, exactly n groups are returned even if some are empty; otherwise
// empty groups are omitted.
func SplitIntoN[T any](items []T, n int, exact bool) [][]T {
	if n <= 0 {
		return nil
	}

	size := len(items) / n
	extra := len(items) % n

	var groups [][]T
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < extra {
			end++
		}
		if !exact && start == end {
			break
		}
		groups = append(groups, items[start:end])
		start = end
	}
	return groups
}

// GroupsOfN collects items into groups of n. The last group may be short.
func GroupsOfN[T any](items []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	var groups [][]T
	for start := 0; start < len(items); start += n {
		end := start + n
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[start:end])
	}
	return groups
}

// Mean returns the arithmetic mean of nums. Empty input returns 0.
func Mean(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums))
}

// Variance returns the population variance of nums.
func Variance(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	m := Mean(nums)
	var sum float64
	for _, n := range nums {
		sum += (n - m) * (n - m)
	}
	return sum / float64(len(nums))
}

// StdDev returns the population standard deviation of nums.
func StdDev(nums []float64) float64 {
	return math.Sqrt(Variance(nums))
}

// Median returns the middle value of nums, or the mean of the two middle
// values for even-length input. Empty input returns 0.
func Median(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	s := append([]float64(nil), nums...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
