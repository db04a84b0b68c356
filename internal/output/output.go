// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"
)

// Options control how a dataset is emitted.
type Options struct {
	// Format is one of text, json, raw, yaml.
	Format string
	// Attrs is a comma-separated list of columns to emit, in order.
	// Empty means all fields in their natural order.
	Attrs string
	// Filter is a comma-separated list of filter expressions.
	Filter string
	// Sort is a comma-separated list of keys; a leading '-' descends.
	Sort string
	// Titles emits a header row with text output.
	Titles bool
	// Color styles text output. It is forced off when w isn't a terminal.
	Color bool
}

// Formats are the accepted --output values.
func Formats() []string {
	return []string{"text", "json", "raw", "yaml"}
}

// Spit filters, sorts, projects, and renders rows to w. fields gives the
// natural column order for rows; attrs narrows and reorders it.
func Spit(w io.Writer, fields []string, rows []map[string]interface{}, opts Options) error {
	rows = FilterRows(rows, opts.Filter)
	if err := sortRows(rows, opts.Sort); err != nil {
		return err
	}

	cols := fields
	if opts.Attrs != "" {
		cols = nil
		for _, a := range strings.Split(opts.Attrs, ",") {
			if a = strings.TrimSpace(a); a != "" {
				cols = append(cols, a)
			}
		}
	}

	switch opts.Format {
	case "", "text":
		return spitText(w, cols, rows, opts)
	case "raw":
		return spitRaw(w, cols, rows)
	case "json":
		return spitJSON(w, cols, rows)
	case "yaml":
		return spitYAML(w, cols, rows)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// sortRows orders rows per the sort spec. Numeric values compare
// numerically, everything else as strings.
func sortRows(rows []map[string]interface{}, spec string) error {
	if spec == "" {
		return nil
	}

	type sortKey struct {
		key  string
		desc bool
	}
	//nolint:prealloc
	var keys []sortKey
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		desc := strings.HasPrefix(k, "-")
		keys = append(keys, sortKey{key: strings.TrimPrefix(k, "-"), desc: desc})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(rows[i][k.key], rows[j][k.key])
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return nil
}

func compareValues(a, b interface{}) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func spitText(w io.Writer, cols []string, rows []map[string]interface{}, opts Options) error {
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder())

	color := opts.Color && isTerminal(w)

	if opts.Titles {
		headers := make([]string, len(cols))
		for i, c := range cols {
			if color {
				headers[i] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(c)
			} else {
				headers[i] = c
			}
		}
		t = t.Headers(headers...).BorderHeader(false)
	}

	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = stringify(row[c])
		}
		t = t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

func spitRaw(w io.Writer, cols []string, rows []map[string]interface{}) error {
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = stringify(row[c])
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func spitJSON(w io.Writer, cols []string, rows []map[string]interface{}) error {
	out := projectRows(cols, rows)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func spitYAML(w io.Writer, cols []string, rows []map[string]interface{}) error {
	out := projectRows(cols, rows)
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// projectRows narrows every row to the selected columns.
func projectRows(cols []string, rows []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		p := make(map[string]interface{}, len(cols))
		for _, c := range cols {
			if v, ok := row[c]; ok {
				p[c] = v
			}
		}
		out[i] = p
	}
	return out
}

// rowJSON wraps a row as a gjson document for filter evaluation.
func rowJSON(row map[string]interface{}) gjson.Result {
	data, err := json.Marshal(row)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.ParseBytes(data)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
