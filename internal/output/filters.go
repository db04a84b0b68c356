// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. It matches: key + operator + target,
// where the operator is one of = ^ ~ < or >, optionally prefixed with '!'
// for negation. This allows forms like '=', '!=', '^', '!^', etc.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>])(.*)$`)

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// filterDelim returns the delimiter separating filter expressions.
// Default is ",", overridable so targets containing commas can be
// expressed.
func filterDelim() string {
	if d, ok := os.LookupEnv("TFD_FILTER_DELIM"); ok {
		return d
	}
	return ","
}

// ValidateFilters reports the first malformed expression in a filter spec,
// so commands can reject it up front instead of silently dropping it.
func ValidateFilters(spec string) error {
	if spec == "" {
		return nil
	}
	for _, filterSpec := range strings.Split(spec, filterDelim()) {
		if !filterRegex.MatchString(filterSpec) {
			return fmt.Errorf("invalid filter %q", filterSpec)
		}
	}
	return nil
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	for _, filterSpec := range strings.Split(spec, filterDelim()) {
		parts := filterRegex.FindStringSubmatch(filterSpec)

		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(parts[2], "!")
		if negate {
			parts[2] = strings.TrimPrefix(parts[2], "!")
		}

		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: parts[2],
			Target:  parts[3],
		})
	}

	return filters
}

// matches reports whether one row satisfies a filter. The row is a gjson
// document so filter keys can drill with dotted paths.
func (f Filter) matches(row gjson.Result) bool {
	value := row.Get(f.Key)
	if !value.Exists() {
		return f.Negate
	}

	var result bool
	switch f.Operand {
	case "=":
		result = value.String() == f.Target
		if !result {
			// Numeric compare so 1 matches 1.0.
			if fv, err := strconv.ParseFloat(f.Target, 64); err == nil && value.Type == gjson.Number {
				result = value.Float() == fv
			}
		}
	case "^":
		result = strings.HasPrefix(value.String(), f.Target)
	case "~":
		result = strings.Contains(value.String(), f.Target)
	case "<", ">":
		fv, err := strconv.ParseFloat(f.Target, 64)
		if err != nil {
			return false
		}
		if f.Operand == "<" {
			result = value.Float() < fv
		} else {
			result = value.Float() > fv
		}
	default:
		return false
	}

	if f.Negate {
		return !result
	}
	return result
}

// FilterRows returns the rows matching every filter in the spec.
func FilterRows(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	//nolint:prealloc
	var filtered []map[string]interface{}
	for _, row := range rows {
		doc := rowJSON(row)
		ok := true
		for _, f := range filters {
			if !f.matches(doc) {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
