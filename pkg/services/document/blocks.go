package document

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

type block interface {
	kind() BlockKind
	text() string
	draw(p *painter)
}

// painter carries the per-pass drawing state shared by all blocks.
type painter struct {
	pdf      *fpdf.Fpdf
	settings Settings
	tr       func(string) string
	images   int
}

func (p *painter) top() float64 {
	return p.settings.Margins.Top
}

func (p *painter) limit() float64 {
	return p.settings.PageHeight - p.settings.Margins.Bottom
}

func (p *painter) atTop() bool {
	return p.pdf.GetY() <= p.top()+0.01
}

// ensure starts a new page when height does not fit below the cursor,
// unless the cursor already sits at the top of a page.
func (p *painter) ensure(height float64) bool {
	if p.pdf.GetY()+height <= p.limit() || p.atTop() {
		return false
	}
	p.pdf.AddPage()
	return true
}

func (p *painter) font(f FontSpec) {
	p.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (p *painter) textColor(c RGBColor) {
	p.pdf.SetTextColor(c.R, c.G, c.B)
}

// split wraps text at width using the current font. fpdf measures core
// font glyphs by code page position, so the text is translated to cp1252
// first and carried as one rune per byte until it is written out.
func (p *painter) split(text string, width float64) []string {
	if text == "" {
		return nil
	}
	return p.pdf.SplitText(toRunes(p.tr(text)), width)
}

func toRunes(s string) string {
	r := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		r[i] = rune(s[i])
	}
	return string(r)
}

func toBytes(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r))
	}
	return string(b)
}

func lineHeight(f FontSpec) float64 {
	return f.Size * 1.2
}

type textBlock struct {
	blockKind BlockKind
	content   string
	style     TextStyle
}

func (t *textBlock) kind() BlockKind { return t.blockKind }
func (t *textBlock) text() string    { return t.content }

func (t *textBlock) draw(p *painter) {
	width := p.settings.ContentWidth()
	p.font(t.style.Font)
	p.textColor(t.style.Color)

	for _, line := range p.split(t.content, width) {
		p.ensure(t.style.Leading)
		p.pdf.SetX(p.settings.Margins.Left)
		p.pdf.CellFormat(width, t.style.Leading, toBytes(line), "", 2, "L", false, 0, "")
	}
	advance(p, t.style.SpaceAfter)
}

type spacerBlock struct {
	height float64
}

func (s *spacerBlock) kind() BlockKind { return BlockSpacer }
func (s *spacerBlock) text() string    { return "" }

func (s *spacerBlock) draw(p *painter) {
	advance(p, s.height)
}

// advance moves the cursor down, never past the bottom margin. Space at the
// top of a page is dropped.
func advance(p *painter, height float64) {
	if height <= 0 || p.atTop() {
		return
	}
	p.pdf.SetY(math.Min(p.pdf.GetY()+height, p.limit()))
}

type imageBlock struct {
	blockKind BlockKind
	img       preparedImage
	width     float64
	height    float64
}

func (i *imageBlock) kind() BlockKind { return i.blockKind }
func (i *imageBlock) text() string    { return "" }

func (i *imageBlock) draw(p *painter) {
	p.ensure(i.height)

	p.images++
	name := fmt.Sprintf("img-%d", p.images)
	opts := fpdf.ImageOptions{ImageType: i.img.imageType}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(i.img.data))

	x := p.settings.Margins.Left + (p.settings.ContentWidth()-i.width)/2
	y := p.pdf.GetY()
	p.pdf.ImageOptions(name, x, y, i.width, i.height, false, opts, 0, "")
	p.pdf.SetY(y + i.height)
}

type tableBlock struct {
	rows   [][]string
	widths []float64
	style  TableStyle
}

func (t *tableBlock) kind() BlockKind { return BlockTable }

func (t *tableBlock) text() string {
	if len(t.rows) == 0 || len(t.rows[0]) == 0 {
		return ""
	}
	return t.rows[0][0]
}

type cellLayout struct {
	lines [][]string
	h     float64
}

// draw renders the grid row by row. Automatic page breaks are suspended so
// a row is never split; rows that do not fit move to the next page, led by
// a copy of the header row when RepeatHeader is set.
func (t *tableBlock) draw(p *painter) {
	p.pdf.SetAutoPageBreak(false, p.settings.Margins.Bottom)
	defer p.pdf.SetAutoPageBreak(true, p.settings.Margins.Bottom)

	header := t.layout(p, 0)
	for i := range t.rows {
		row := header
		if i > 0 {
			row = t.layout(p, i)
		}

		if p.ensure(row.h) && i > 0 && t.style.RepeatHeader {
			t.drawRow(p, 0, header)
		}
		t.drawRow(p, i, row)
	}
	p.pdf.SetX(p.settings.Margins.Left)
}

func (t *tableBlock) fontFor(row int) (FontSpec, Padding) {
	if row == 0 {
		return t.style.HeaderFont, t.style.HeaderPadding
	}
	return t.style.BodyFont, t.style.BodyPadding
}

func (t *tableBlock) layout(p *painter, row int) cellLayout {
	font, pad := t.fontFor(row)
	p.font(font)

	out := cellLayout{lines: make([][]string, len(t.widths)), h: t.style.MinRowHeight}
	for c, w := range t.widths {
		var cell string
		if c < len(t.rows[row]) {
			cell = t.rows[row][c]
		}
		out.lines[c] = p.split(cell, w-pad.Left-pad.Right)
		h := float64(len(out.lines[c]))*lineHeight(font) + pad.Top + pad.Bottom
		if h > out.h {
			out.h = h
		}
	}
	return out
}

func (t *tableBlock) drawRow(p *painter, row int, l cellLayout) {
	font, pad := t.fontFor(row)
	fill, ink := t.style.BodyFill, t.style.BodyText
	if row == 0 {
		fill, ink = t.style.HeaderFill, t.style.HeaderText
	}

	pdf := p.pdf
	pdf.SetFillColor(fill.R, fill.G, fill.B)
	pdf.SetDrawColor(t.style.GridColor.R, t.style.GridColor.G, t.style.GridColor.B)
	pdf.SetLineWidth(t.style.GridWidth)
	p.font(font)
	p.textColor(ink)

	lh := lineHeight(font)
	x, y := p.settings.Margins.Left, pdf.GetY()
	for c, w := range t.widths {
		pdf.Rect(x, y, w, l.h, "FD")

		block := float64(len(l.lines[c])) * lh
		ty := y + pad.Top + (l.h-pad.Top-pad.Bottom-block)/2
		for n, line := range l.lines[c] {
			pdf.SetXY(x+pad.Left, ty+float64(n)*lh)
			pdf.CellFormat(w-pad.Left-pad.Right, lh, toBytes(line), "", 0, "L", false, 0, "")
		}
		x += w
	}
	pdf.SetXY(p.settings.Margins.Left, y+l.h)
}
