// Package view renders brewdex screens as plain text.
package view

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
)

// NotAvailable stands in for absent optional fields.
const NotAvailable = "N/A"

var tag = language.English

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// typeLabel turns a brewery type into a selector label ("micro" -> "Micro").
func typeLabel(t brewery.Type) string {
	return cases.Title(tag).String(string(t))
}

// page buffers a whole screen so a render either writes completely or reports one error.
type page struct {
	buf bytes.Buffer
	p   *message.Printer
}

func newPage() *page {
	return &page{p: message.NewPrinter(tag)}
}

// printf formats with locale-aware number grouping.
func (pg *page) printf(format string, args ...any) {
	_, _ = pg.p.Fprintf(&pg.buf, format, args...)
}

// layoutf formats with fmt; used where column padding matters.
func (pg *page) layoutf(format string, args ...any) {
	_, _ = fmt.Fprintf(&pg.buf, format, args...)
}

func (pg *page) line(s string) {
	pg.buf.WriteString(s)
	pg.buf.WriteByte('\n')
}

func (pg *page) flush(w io.Writer) error {
	if _, err := w.Write(pg.buf.Bytes()); err != nil {
		return fmt.Errorf("write screen: %w", err)
	}
	return nil
}
