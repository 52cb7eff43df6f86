package document

import "time"

// All lengths are in PDF points.
const (
	Inch = 72.0

	LetterWidth  = 8.5 * Inch
	LetterHeight = 11 * Inch
)

type RGBColor struct {
	R, G, B int
}

var (
	Black      = RGBColor{0, 0, 0}
	White      = RGBColor{255, 255, 255}
	WhiteSmoke = RGBColor{245, 245, 245}
	BrandBlue  = RGBColor{0x44, 0xA5, 0xDB}
)

type FontSpec struct {
	Family string
	Style  string // "", "B", "I", "BI"
	Size   float64
}

type Padding struct {
	Top, Right, Bottom, Left float64
}

// TextStyle describes a flowing text block. Leading is the line height.
type TextStyle struct {
	Font       FontSpec
	Leading    float64
	SpaceAfter float64
	Color      RGBColor
}

type TableStyle struct {
	HeaderFont    FontSpec
	HeaderFill    RGBColor
	HeaderText    RGBColor
	HeaderPadding Padding
	BodyFont      FontSpec
	BodyFill      RGBColor
	BodyText      RGBColor
	BodyPadding   Padding
	GridColor     RGBColor
	GridWidth     float64
	MinRowHeight  float64
	// RepeatHeader redraws the header row at the top of continuation pages.
	RepeatHeader bool
}

type Margins struct {
	Left, Top, Right, Bottom float64
}

type FooterStyle struct {
	Font FontSpec
	// Baseline distance from the bottom edge of the page.
	Offset          float64
	TimestampLayout string
}

type Styles struct {
	Title     TextStyle
	Header    TextStyle
	Paragraph TextStyle
	Table     TableStyle
	Footer    FooterStyle
}

type Settings struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins
	Styles     Styles

	// Brand is printed at the left of every footer, before the timestamp.
	Brand string
	// DocumentTitle and Author go into the PDF metadata.
	DocumentTitle string
	Author        string

	// Default column widths when AddTable is called without any.
	DefaultColumnWidths []float64
	// SpacerAfterBlock follows titles, headers, tables, images and the logo.
	SpacerAfterBlock     float64
	SpacerAfterParagraph float64
	LogoWidthFraction    float64
	ImageWidthFraction   float64
	MaxImageHeight       float64

	Compress bool
	Clock    func() time.Time
}

func DefaultStyles() Styles {
	return Styles{
		Title: TextStyle{
			Font:       FontSpec{Family: "Helvetica", Style: "B", Size: 24},
			Leading:    28.8,
			SpaceAfter: 30,
			Color:      BrandBlue,
		},
		Header: TextStyle{
			Font:       FontSpec{Family: "Helvetica", Style: "B", Size: 18},
			Leading:    21.6,
			SpaceAfter: 20,
			Color:      Black,
		},
		Paragraph: TextStyle{
			Font:       FontSpec{Family: "Helvetica", Size: 12},
			Leading:    14,
			SpaceAfter: 12,
			Color:      Black,
		},
		Table: TableStyle{
			HeaderFont:    FontSpec{Family: "Helvetica", Style: "B", Size: 14},
			HeaderFill:    BrandBlue,
			HeaderText:    WhiteSmoke,
			HeaderPadding: Padding{Top: 3, Right: 6, Bottom: 12, Left: 6},
			BodyFont:      FontSpec{Family: "Helvetica", Size: 12},
			BodyFill:      White,
			BodyText:      Black,
			BodyPadding:   Padding{Top: 3, Right: 6, Bottom: 3, Left: 6},
			GridColor:     Black,
			GridWidth:     1,
			MinRowHeight:  30,
			RepeatHeader:  true,
		},
		Footer: FooterStyle{
			Font:            FontSpec{Family: "Helvetica", Size: 9},
			Offset:          30,
			TimestampLayout: "January 02, 2006 03:04 PM",
		},
	}
}

func DefaultSettings() Settings {
	return Settings{
		PageWidth:  LetterWidth,
		PageHeight: LetterHeight,
		Margins:    Margins{Left: Inch, Top: 0.5 * Inch, Right: Inch, Bottom: Inch},
		Styles:     DefaultStyles(),

		Brand:         "SPARTAN HOME SERVICES",
		DocumentTitle: "Spartan EagleEye Report",
		Author:        "Spartan Home Services",

		DefaultColumnWidths:  []float64{2.5 * Inch, 3.5 * Inch},
		SpacerAfterBlock:     0.25 * Inch,
		SpacerAfterParagraph: 0.12 * Inch,
		LogoWidthFraction:    0.25,
		ImageWidthFraction:   0.8,
		MaxImageHeight:       6 * Inch,

		Compress: true,
		Clock:    time.Now,
	}
}

// ContentWidth is the usable width between the side margins.
func (s Settings) ContentWidth() float64 {
	return s.PageWidth - s.Margins.Left - s.Margins.Right
}
