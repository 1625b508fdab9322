// Package lookup builds the in-memory side table for the join. The table is
// constructed once at startup and read-only afterwards; lookup misses are
// normal, not errors.
package lookup

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsvkit/tsvjoin/internal/table"
)

// NoHeader is the header value when header propagation is off.
const NoHeader = "NA"

// Table maps a join key to the precomputed tab-joined fragment of kept
// columns. Immutable after construction.
type Table struct {
	entries map[string]string
	header  string
	width   int
}

// Get returns the stored fragment for a key.
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Header returns the derived header fragment, or NoHeader when header
// propagation was off at load time.
func (t *Table) Header() string {
	return t.header
}

// Width is the number of kept columns; it fixes how many placeholder fields
// a miss produces.
func (t *Table) Width() int {
	return t.width
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// builder accumulates rows into a Table. With headers on, the first row
// supplies the header fragment and is not mapped; duplicate keys are
// overwritten silently, last write wins.
type builder struct {
	keyCols       []int
	keepCols      []int
	includeHeader bool
	tbl           *Table
	n             int
}

func newBuilder(keyCols, keepCols []int, includeHeader bool) *builder {
	return &builder{
		keyCols:       keyCols,
		keepCols:      keepCols,
		includeHeader: includeHeader,
		tbl: &Table{
			entries: make(map[string]string),
			header:  NoHeader,
			width:   len(keepCols),
		},
	}
}

func (b *builder) add(row table.Row) {
	if b.includeHeader && b.n == 0 {
		b.tbl.header = row.Pick(b.keepCols)
		b.n++
		return
	}
	b.tbl.entries[row.Key(b.keyCols)] = row.Pick(b.keepCols)
	b.n++
}

// LoadFile reads a tab-delimited file into a Table. An unreadable file is
// the one fatal error this tool recognizes.
func LoadFile(path string, keyCols, keepCols []int, includeHeader bool) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lookup file: %w", err)
	}
	defer f.Close()

	b := newBuilder(keyCols, keepCols, includeHeader)
	sc := table.NewScanner(f)
	for sc.Scan() {
		b.add(table.Split(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lookup file: %w", err)
	}

	return b.tbl, nil
}

// LoadQuery runs a SQL query and builds a Table from its result set. With
// headers on, the result's column names act as the header row, so key and
// keep positions address query columns exactly like file columns.
func LoadQuery(ctx context.Context, pool *pgxpool.Pool, query string, keyCols, keepCols []int, includeHeader bool) (*Table, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("running lookup query: %w", err)
	}
	defer rows.Close()

	b := newBuilder(keyCols, keepCols, includeHeader)

	if includeHeader {
		fds := rows.FieldDescriptions()
		hdr := make(table.Row, len(fds))
		for i, fd := range fds {
			hdr[i] = fd.Name
		}
		b.add(hdr)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = renderValue(v)
		}
		b.add(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading lookup query results: %w", err)
	}

	return b.tbl, nil
}
