// Package pdfexport renders a Record as a paginated PDF document.
//
// Text is written with the PDF core fonts, which are single-byte. Every
// string is encoded to ISO-8859-1 before it reaches the page; a rune outside
// that range, or a C1 control (U+0080-U+009F), fails the export with
// ErrEncoding instead of being replaced.
package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Page geometry and typography, in millimetres and points.
const (
	MarginLeft      = 21.0
	MarginRight     = 21.0
	MarginTop       = 10.0
	PageBreakMargin = 20.0
	LineHeight      = 10.0

	FontFamily     = "Arial"
	HeaderFontSize = 14.0
	TitleFontSize  = 12.0
	BodyFontSize   = 12.0

	headerGap = 10.0
	titleGap  = 4.0
)

// Section is one titled block as it was written to the document.
type Section struct {
	Title string
	Lines []string
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithCompression toggles compression of page content streams.
func WithCompression(compress bool) DocumentOption {
	return func(d *Document) {
		d.compress = compress
	}
}

// Document builds a PDF out of a running header and titled sections.
type Document struct {
	pdf      *fpdf.Fpdf
	title    string
	compress bool
	sections []Section
	out      []byte
}

// NewDocument creates an A4 portrait document whose running header shows
// title. It fails with ErrEncoding if title is not Latin-1.
func NewDocument(title string, opts ...DocumentOption) (*Document, error) {
	encTitle, err := encodeLatin1("document title", title)
	if err != nil {
		return nil, err
	}

	d := &Document{title: encTitle}
	for _, opt := range opts {
		opt(d)
	}

	d.pdf = fpdf.New("P", "mm", "A4", "")
	d.pdf.SetMargins(MarginLeft, MarginTop, MarginRight)
	d.pdf.SetAutoPageBreak(true, PageBreakMargin)
	d.pdf.SetCompression(d.compress)
	d.pdf.SetTitle(encTitle, false)
	d.pdf.SetCreator("scorecard", false)
	return d, nil
}

// WriteHeader registers the running header printed at the top of every page.
// It must be called before the first AddPage.
func (d *Document) WriteHeader() {
	d.pdf.SetHeaderFunc(func() {
		d.pdf.SetFont(FontFamily, "B", HeaderFontSize)
		d.pdf.CellFormat(0, LineHeight, d.title, "", 1, "C", false, 0, "")
		d.pdf.Ln(headerGap)
	})
}

// AddPage starts a new page. Pages are also added automatically when
// content runs past the bottom margin.
func (d *Document) AddPage() {
	d.pdf.AddPage()
}

// WriteSection writes a bold title followed by each line in regular weight.
// All text is encoded up front, so on error nothing is written.
func (d *Document) WriteSection(title string, lines ...string) error {
	encTitle, err := encodeLatin1(title, title)
	if err != nil {
		return err
	}
	encLines := make([]string, len(lines))
	for i, line := range lines {
		if encLines[i], err = encodeLatin1(title, line); err != nil {
			return err
		}
	}

	d.pdf.SetFont(FontFamily, "B", TitleFontSize)
	d.pdf.CellFormat(0, LineHeight, encTitle, "", 1, "L", false, 0, "")
	d.pdf.Ln(titleGap)

	for _, line := range encLines {
		d.pdf.SetFont(FontFamily, "", BodyFontSize)
		d.pdf.MultiCell(0, LineHeight, line, "", "", false)
		d.pdf.Ln(-1)
	}

	d.sections = append(d.sections, Section{Title: title, Lines: append([]string(nil), lines...)})
	return nil
}

// Sections returns the sections written so far, in order.
func (d *Document) Sections() []Section {
	out := make([]Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// Pages returns the number of pages produced so far.
func (d *Document) Pages() int {
	return d.pdf.PageNo()
}

// Bytes finalises the document and returns the encoded PDF.
// The document cannot be written to afterwards.
func (d *Document) Bytes() ([]byte, error) {
	if d.out != nil {
		return d.out, nil
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	d.out = buf.Bytes()
	return d.out, nil
}

// encodeLatin1 converts s to single-byte ISO-8859-1. field names the
// offending input in the returned error. C1 controls are rejected too: the
// core fonts map 0x80-0x9F through cp1252 and would draw other glyphs.
func encodeLatin1(field, s string) (string, error) {
	out := make([]byte, 0, len(s))
	for i, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok || isC1(r) {
			return "", fmt.Errorf("%w: %s: %U at byte %d", ErrEncoding, field, r, i)
		}
		out = append(out, b)
	}
	return string(out), nil
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}
