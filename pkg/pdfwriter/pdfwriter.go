// Package pdfwriter implements a minimal PDF 1.4 document writer.
// It supports single-font text placement on fixed-size pages, which is
// all the report generator needs. The emitted file carries a catalog,
// a page tree, one content stream per page, a standard Helvetica font
// object, and a cross-reference table with a trailer.
package pdfwriter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// A4 page dimensions in PDF points.
const (
	PageWidthA4  = 595
	PageHeightA4 = 842
)

// TextOp is a single text placement on a page. Coordinates follow the
// PDF convention: the origin is the bottom-left corner of the page.
type TextOp struct {
	X, Y     float64
	FontSize float64
	Text     string
}

// Page accumulates text operations for one output page.
type Page struct {
	ops []TextOp
}

// Text places a string at the given position with the given font size.
func (p *Page) Text(x, y, size float64, text string) {
	p.ops = append(p.ops, TextOp{X: x, Y: y, FontSize: size, Text: text})
}

// Document is an in-memory PDF document under construction.
type Document struct {
	width  int
	height int
	pages  []*Page
}

// New creates an empty A4 document.
func New() *Document {
	return &Document{width: PageWidthA4, height: PageHeightA4}
}

// AddPage appends a blank page and returns it for writing.
func (d *Document) AddPage() *Page {
	p := &Page{}
	d.pages = append(d.pages, p)
	return p
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// winAnsiExtras maps the punctuation runes that WinAnsiEncoding places
// in the 0x80..0x9F range, where it diverges from Latin-1.
var winAnsiExtras = map[rune]byte{
	'€': 0x80, // euro sign
	'…': 0x85, // horizontal ellipsis
	'‘': 0x91,
	'’': 0x92,
	'“': 0x93,
	'”': 0x94,
	'–': 0x96, // en dash
	'—': 0x97, // em dash
}

// escapeText encodes a string for a PDF literal string under
// WinAnsiEncoding. Backslash and parentheses are escaped, runes in the
// Latin-1 upper range come out as octal escapes, and runes the encoding
// cannot represent degrade to a question mark.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteByte(byte(r))
		case r >= 0x20 && r < 0x7F:
			b.WriteByte(byte(r))
		case r >= 0xA0 && r <= 0xFF:
			fmt.Fprintf(&b, "\\%03o", r)
		default:
			if c, ok := winAnsiExtras[r]; ok {
				fmt.Fprintf(&b, "\\%03o", c)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}

// contentStream renders a page's text operations as a PDF content stream.
func contentStream(p *Page) []byte {
	var b bytes.Buffer
	for _, op := range p.ops {
		b.WriteString("BT\n")
		fmt.Fprintf(&b, "/F1 %.2f Tf\n", op.FontSize)
		fmt.Fprintf(&b, "%.2f %.2f Td\n", op.X, op.Y)
		fmt.Fprintf(&b, "(%s) Tj\n", escapeText(op.Text))
		b.WriteString("ET\n")
	}
	return b.Bytes()
}

// WriteTo serializes the document to w. A document must contain at
// least one page; an empty document gets a single blank page so the
// output is always a valid PDF.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if len(d.pages) == 0 {
		d.AddPage()
	}

	// Object numbering: 1 catalog, 2 pages root, 3 font, then for each
	// page two objects: the page node and its content stream.
	numPages := len(d.pages)
	numObjects := 3 + 2*numPages

	var buf bytes.Buffer
	offsets := make([]int, numObjects+1)

	buf.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, numPages)
	for i := range d.pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), numPages))

	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, p := range d.pages {
		pageNum := 4 + 2*i
		streamNum := pageNum + 1
		writeObj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>",
			d.width, d.height, streamNum))

		stream := contentStream(p)
		offsets[streamNum] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d >>\nstream\n", streamNum, len(stream))
		buf.Write(stream)
		buf.WriteString("endstream\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", numObjects+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= numObjects; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		numObjects+1, xrefOffset)

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// Bytes serializes the document and returns the raw PDF bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
