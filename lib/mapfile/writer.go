package mapfile

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// A Writer writes record blocks to an underlying stream
type Writer struct {
	target *bufio.Writer
	count  int
}

// NewWriter creates a Writer that writes to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		target: bufio.NewWriter(w),
	}
}

// Write writes one record block
func (w *Writer) Write(r Record) error {
	for _, line := range r.Lines() {
		if _, err := w.target.WriteString(line); err != nil {
			return errors.Wrapf(err, "writing record %d", w.count)
		}
		if err := w.target.WriteByte('\n'); err != nil {
			return errors.Wrapf(err, "writing record %d", w.count)
		}
	}
	w.count++
	return nil
}

// WriteAll writes all records and flushes the output
func (w *Writer) WriteAll(records []Record) error {
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying stream
func (w *Writer) Flush() error {
	return errors.Wrap(w.target.Flush(), "flushing map output")
}

// Count returns the number of records written so far
func (w *Writer) Count() int {
	return w.count
}
