package output

import (
	"bufio"
	"io"

	"github.com/tsvkit/tsvjoin/internal/table"
)

// Writer emits tab-delimited records with buffered output. Records come out
// in the order they are written; callers must Flush when done.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a new TSV record writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteRow writes one row as a tab-joined, newline-terminated record.
func (w *Writer) WriteRow(row table.Row) error {
	return w.WriteLine(row.Join())
}

// WriteLine writes one already-joined record.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.bw.WriteString(line); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

// Flush drains the buffer to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
