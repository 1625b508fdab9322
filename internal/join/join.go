// Package join implements the left-outer join over the primary stream: one
// output line per input line, in input order, matched or not.
package join

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsvkit/tsvjoin/internal/config"
	"github.com/tsvkit/tsvjoin/internal/lookup"
	"github.com/tsvkit/tsvjoin/internal/output"
	"github.com/tsvkit/tsvjoin/internal/table"
)

// Joiner splices lookup fragments into rows from the primary stream.
type Joiner struct {
	opts *config.Options
	tbl  *lookup.Table
}

// Summary counts data rows seen by the joiner. A header line is not counted.
type Summary struct {
	Processed int
	Matched   int
	Missing   int
}

// New creates a Joiner over a loaded lookup table.
func New(opts *config.Options, tbl *lookup.Table) *Joiner {
	return &Joiner{opts: opts, tbl: tbl}
}

// Run consumes the primary stream line by line and emits one output line per
// input line. Rows whose key is absent from the table get placeholder fields
// instead of lookup data; no row is ever dropped.
func (j *Joiner) Run(r io.Reader, w io.Writer) (Summary, error) {
	var sum Summary
	out := output.NewWriter(w)

	sc := table.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		row := table.Split(sc.Text())

		if lineno == 0 && j.opts.IncludeHeader {
			if err := out.WriteRow(j.headerRow(row)); err != nil {
				return sum, err
			}
			lineno++
			continue
		}

		sum.Processed++
		fragment, ok := j.tbl.Get(row.Key(j.opts.FirstKeyCols))
		switch {
		case ok && j.opts.Fill01:
			fragment = "1"
			sum.Matched++
		case ok:
			sum.Matched++
		case j.opts.Fill01:
			fragment = "0"
			sum.Missing++
		default:
			fragment = placeholder(j.tbl.Width())
			sum.Missing++
		}

		if err := out.WriteRow(row.Splice(j.opts.Insert, fragment)); err != nil {
			return sum, err
		}
		lineno++
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("reading input: %w", err)
	}

	return sum, out.Flush()
}

// headerRow builds the output header: the stream's own header fields,
// optionally prefixed, with the lookup table's derived header spliced in at
// the same position used for data rows.
func (j *Joiner) headerRow(row table.Row) table.Row {
	if j.opts.PrefixFirst != "" {
		row = table.Split(PrefixHeader(row.Join(), j.opts.PrefixFirst))
	}
	hdr := j.tbl.Header()
	if j.opts.PrefixSecond != "" {
		hdr = PrefixHeader(hdr, j.opts.PrefixSecond)
	}
	return row.Splice(j.opts.Insert, hdr)
}

// PrefixHeader rewrites every field of a tab-joined header to
// "<prefix>.<field>".
func PrefixHeader(header, prefix string) string {
	fields := strings.Split(header, "\t")
	for i, f := range fields {
		fields[i] = prefix + "." + f
	}
	return strings.Join(fields, "\t")
}

// placeholder builds the miss fragment: width fields of "NA".
func placeholder(width int) string {
	parts := make([]string, width)
	for i := range parts {
		parts[i] = "NA"
	}
	return strings.Join(parts, "\t")
}
