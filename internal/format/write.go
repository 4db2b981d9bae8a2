package format

import (
	"pixelwalle/internal/source"
)

// Writer accumulates formatted output and provides helpers for copying source
// fragments and emitting canonical whitespace.
type Writer struct {
	sf  *source.File
	buf []byte
}

// NewWriter creates a new formatting writer.
func NewWriter(sf *source.File) *Writer {
	capacity := 0
	if sf != nil {
		capacity = len(sf.Content)
	}
	return &Writer{sf: sf, buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteString writes s as is.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
}

// BlankLine ends the current line and adds one empty line.
func (w *Writer) BlankLine() {
	w.Newline()
	if len(w.buf) > 0 && (len(w.buf) < 2 || w.buf[len(w.buf)-2] != '\n') {
		w.buf = append(w.buf, '\n')
	}
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if w.sf == nil || sp.File != w.sf.ID || sp.End <= sp.Start {
		return
	}
	start, end := int(sp.Start), int(sp.End)
	if end > len(w.sf.Content) {
		return
	}
	w.buf = append(w.buf, w.sf.Content[start:end]...)
}
