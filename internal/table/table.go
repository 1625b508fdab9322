package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is an ordered sequence of fields from one tab-delimited record.
// Tab is the sole delimiter; there is no quoting or escaping, so a field
// never contains an embedded tab.
type Row []string

// Split parses one record into a Row. The caller strips the trailing newline.
func Split(line string) Row {
	return strings.Split(line, "\t")
}

// Join renders the row back into a record.
func (r Row) Join() string {
	return strings.Join(r, "\t")
}

// Field returns the value at 0-based position i, or "" when i is out of
// range. Short rows and bad column references never fail.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Pick returns the tab-joined values at the given 0-based positions, in the
// order given.
func (r Row) Pick(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = r.Field(c)
	}
	return strings.Join(parts, "\t")
}

// Key builds the join key for the row. Multi-column keys compare by exact
// string equality of this joined form.
func (r Row) Key(cols []int) string {
	return r.Pick(cols)
}

// Splice returns a new row with fragment inserted as a single element before
// 0-based position at. The fragment may itself contain tabs; joining the
// result flattens it into place. Positions past the end append.
func (r Row) Splice(at int, fragment string) Row {
	if at < 0 {
		at = 0
	}
	if at > len(r) {
		at = len(r)
	}
	out := make(Row, 0, len(r)+1)
	out = append(out, r[:at]...)
	out = append(out, fragment)
	out = append(out, r[at:]...)
	return out
}

// ParseColumns parses a comma-separated list of 1-based column positions
// into 0-based indices. The empty spec parses to an empty list. This is the
// only place positions are converted; everything downstream is 0-based.
func ParseColumns(spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}
	parts := strings.Split(spec, ",")
	cols := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing column list %q: %w", spec, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("column positions are 1-based, got %d", n)
		}
		cols = append(cols, n-1)
	}
	return cols, nil
}

// NewScanner returns a line scanner sized for wide rows.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return sc
}
