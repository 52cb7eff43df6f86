package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Footer is the text stamped at the bottom of one page.
type Footer struct {
	Page  int
	Left  string
	Right string
}

type Rendered struct {
	Bytes       []byte
	PageCount   int
	Footers     []Footer
	GeneratedAt time.Time
}

type passResult struct {
	data    []byte
	pages   int
	footers []Footer
}

// Render produces the final PDF. The first pass only measures the page
// count; the second pass repeats the layout with that count known so every
// footer reads "Page k of N". Render seals the builder against further
// blocks whether or not it succeeds; rendering again lays out the same
// blocks from scratch.
func (b *Builder) Render() (*Rendered, error) {
	b.sealed = true

	if len(b.blocks) == 0 {
		return nil, ErrNoBlocks
	}

	generatedAt := b.settings.Clock()

	first, err := b.pass(generatedAt, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out document: %w", err)
	}

	second, err := b.pass(generatedAt, first.pages)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	if second.pages != first.pages {
		return nil, fmt.Errorf("page count changed between passes: %d then %d", first.pages, second.pages)
	}

	b.logger.Debug().
		Int("pages", second.pages).
		Int("bytes", len(second.data)).
		Msg("document rendered")

	return &Rendered{
		Bytes:       second.data,
		PageCount:   second.pages,
		Footers:     second.footers,
		GeneratedAt: generatedAt,
	}, nil
}

// pass lays out every block on a fresh document. A zero total leaves the
// page counter out of the footers.
func (b *Builder) pass(generatedAt time.Time, total int) (result *passResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic during layout: %v", r)
		}
	}()

	s := b.settings
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: s.PageWidth, Ht: s.PageHeight},
	})
	pdf.SetMargins(s.Margins.Left, s.Margins.Top, s.Margins.Right)
	pdf.SetAutoPageBreak(true, s.Margins.Bottom)
	pdf.SetCellMargin(0)
	pdf.SetCompression(s.Compress)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(s.DocumentTitle, true)
	pdf.SetAuthor(s.Author, true)

	p := &painter{
		pdf:      pdf,
		settings: s,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
	}

	var footers []Footer
	stamp := generatedAt.Format(s.Styles.Footer.TimestampLayout)
	pdf.SetFooterFunc(func() {
		f := Footer{
			Page: pdf.PageNo(),
			Left: fmt.Sprintf(" %s %s", s.Brand, stamp),
		}
		if total > 0 {
			f.Right = fmt.Sprintf("Page %d of %d", f.Page, total)
		}
		footers = append(footers, f)
		drawFooter(p, f)
	})

	pdf.AddPage()
	for _, blk := range b.blocks {
		blk.draw(p)
		if pdf.Err() {
			return nil, fmt.Errorf("failed to draw %s block: %w", blk.kind(), pdf.Error())
		}
	}

	pages := pdf.PageCount()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return &passResult{data: buf.Bytes(), pages: pages, footers: footers}, nil
}

func drawFooter(p *painter, f Footer) {
	style := p.settings.Styles.Footer
	y := p.settings.PageHeight - style.Offset

	p.font(style.Font)
	p.textColor(Black)
	p.pdf.Text(p.settings.Margins.Left, y, p.tr(f.Left))

	if f.Right != "" {
		right := p.tr(f.Right)
		x := p.settings.PageWidth - p.settings.Margins.Right - p.pdf.GetStringWidth(right)
		p.pdf.Text(x, y, right)
	}
}
