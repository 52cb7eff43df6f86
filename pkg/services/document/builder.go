// Package document lays out report content into a paginated PDF.
//
// A Builder collects an ordered list of blocks (title, header, paragraph,
// table, image) and renders them in two passes: the first pass binds content
// to pages and yields the page count, the second lays out the same blocks
// again and stamps every page footer with "Page k of N".
package document

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var (
	ErrSealed   = errors.New("document: builder already rendered")
	ErrNoBlocks = errors.New("document: nothing to render")
)

type BlockKind string

const (
	BlockTitle     BlockKind = "title"
	BlockHeader    BlockKind = "header"
	BlockParagraph BlockKind = "paragraph"
	BlockTable     BlockKind = "table"
	BlockImage     BlockKind = "image"
	BlockLogo      BlockKind = "logo"
	BlockSpacer    BlockKind = "spacer"
)

// OutlineEntry summarizes one block; Text is empty for images and spacers.
type OutlineEntry struct {
	Kind BlockKind
	Text string
}

type Builder struct {
	logger   zerolog.Logger
	settings Settings
	blocks   []block
	sealed   bool
}

func NewBuilder(logger zerolog.Logger, settings Settings) *Builder {
	if settings.Clock == nil {
		settings.Clock = DefaultSettings().Clock
	}
	return &Builder{
		logger:   logger.With().Str("component", "document").Logger(),
		settings: settings,
	}
}

// AddLogo embeds the image at path at a quarter of the content width.
// Failures are logged and reported as false; the document stays usable.
func (b *Builder) AddLogo(path string) bool {
	if !b.writable("logo") {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		b.logger.Error().Err(err).Str("path", path).Msg("error adding logo")
		return false
	}

	img, err := prepareImage(data)
	if err != nil {
		b.logger.Error().Err(err).Str("path", path).Msg("error adding logo")
		return false
	}

	w, h := fitImage(img, b.settings.ContentWidth(), b.settings.LogoWidthFraction, b.settings.MaxImageHeight)
	b.append(&imageBlock{blockKind: BlockLogo, img: img, width: w, height: h})
	b.append(&spacerBlock{height: b.settings.SpacerAfterBlock})
	return true
}

func (b *Builder) AddTitle(text string) {
	b.addText(BlockTitle, text, b.settings.Styles.Title, b.settings.SpacerAfterBlock)
}

func (b *Builder) AddHeader(text string) {
	b.addText(BlockHeader, text, b.settings.Styles.Header, b.settings.SpacerAfterBlock)
}

func (b *Builder) AddParagraph(text string) {
	b.addText(BlockParagraph, text, b.settings.Styles.Paragraph, b.settings.SpacerAfterParagraph)
}

// AddTable appends a grid whose first row is styled as the header. Without
// explicit widths the configured defaults are used; missing trailing widths
// share the remaining content width.
func (b *Builder) AddTable(rows [][]string, columnWidths ...float64) {
	if !b.writable("table") {
		return
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		b.logger.Warn().Msg("skipping empty table")
		return
	}

	if len(columnWidths) == 0 {
		columnWidths = b.settings.DefaultColumnWidths
	}

	b.append(&tableBlock{
		rows:   cloneRows(rows),
		widths: resolveWidths(columnWidths, columns(rows), b.settings.ContentWidth()),
		style:  b.settings.Styles.Table,
	})
	b.append(&spacerBlock{height: b.settings.SpacerAfterBlock})
}

// AddImage embeds image bytes scaled to widthFraction of the content width
// (a non-positive fraction selects the configured default) with the height
// capped at the configured maximum. Undecodable data is logged and reported
// as false.
func (b *Builder) AddImage(data []byte, widthFraction float64) bool {
	if !b.writable("image") {
		return false
	}
	if widthFraction <= 0 {
		widthFraction = b.settings.ImageWidthFraction
	}

	img, err := prepareImage(data)
	if err != nil {
		b.logger.Error().Err(err).Int("bytes", len(data)).Msg("error adding image to PDF")
		return false
	}

	w, h := fitImage(img, b.settings.ContentWidth(), widthFraction, b.settings.MaxImageHeight)
	b.append(&imageBlock{blockKind: BlockImage, img: img, width: w, height: h})
	b.append(&spacerBlock{height: b.settings.SpacerAfterBlock})
	return true
}

// Outline lists the accumulated blocks in order, spacers excluded.
func (b *Builder) Outline() []OutlineEntry {
	outline := make([]OutlineEntry, 0, len(b.blocks))
	for _, blk := range b.blocks {
		if blk.kind() == BlockSpacer {
			continue
		}
		outline = append(outline, OutlineEntry{Kind: blk.kind(), Text: blk.text()})
	}
	return outline
}

func (b *Builder) Sealed() bool {
	return b.sealed
}

func (b *Builder) addText(kind BlockKind, text string, style TextStyle, spaceAfter float64) {
	if !b.writable(string(kind)) {
		return
	}
	b.append(&textBlock{blockKind: kind, content: text, style: style})
	b.append(&spacerBlock{height: spaceAfter})
}

func (b *Builder) writable(what string) bool {
	if b.sealed {
		b.logger.Error().Err(ErrSealed).Str("block", what).Msg("dropping block added after render")
		return false
	}
	return true
}

func (b *Builder) append(blk block) {
	b.blocks = append(b.blocks, blk)
}

func columns(rows [][]string) int {
	n := 0
	for _, r := range rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

func resolveWidths(requested []float64, cols int, contentWidth float64) []float64 {
	widths := make([]float64, cols)
	used, missing := 0.0, 0
	for i := range widths {
		if i < len(requested) && requested[i] > 0 {
			widths[i] = requested[i]
			used += requested[i]
		} else {
			missing++
		}
	}
	if missing > 0 {
		share := (contentWidth - used) / float64(missing)
		if share < Inch/2 {
			share = Inch / 2
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (k BlockKind) String() string {
	return string(k)
}

func (e OutlineEntry) String() string {
	if e.Text == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Text)
}
