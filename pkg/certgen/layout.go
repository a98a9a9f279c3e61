package certgen

import (
	"fmt"
	"strings"
)

type OrnamentStyle int

const (
	// L-shaped brackets in each corner
	OrnamentBracket OrnamentStyle = iota
	// filled diamond in each corner
	OrnamentDiamond
)

// All lengths below are logical units (px at 96 DPI), y grows downwards.

type TextStyle struct {
	Weight FontWeight
	Size   float64
	Color  string
}

// TextLine is one centered line. For data lines Text is a fmt pattern taking the value.
type TextLine struct {
	Text  string
	Style TextStyle
	// Baseline
	Y float64
}

type Border struct {
	Inset float64
	Width float64
	Color string
}

type Ornament struct {
	Style  OrnamentStyle
	Size   float64
	Offset float64
	Width  float64
	Color  string
}

// Rule is a horizontal line from X0 to X1.
type Rule struct {
	X0, X1 float64
	Y      float64
	Width  float64
	Color  string
}

type Underline struct {
	// Distance below the text baseline
	Y       float64
	Padding float64
	Width   float64
	Color   string
}

type Layout struct {
	Name       string
	Width      float64
	Height     float64
	Background string

	OuterBorder Border
	InnerBorder Border
	Ornament    Ornament

	Title     TextLine
	TitleRule Rule

	CertifyCaption     TextLine
	Recipient          TextLine
	RecipientUnderline Underline
	CourseCaption      TextLine
	Course             TextLine
	CourseUnderline    Underline
	InstructorCaption  TextLine
	Instructor         TextLine
	IssueDate          TextLine
	Signature          Rule
	SignatureCaption   TextLine

	// Lower-case certificate type to accent color, replaces the ornament, title
	// rule and underline colors when the type matches.
	AccentByType map[string]string

	// Verification QR code, drawn in the bottom-right corner inside the inner border
	QRSize   float64
	QRMargin float64
}

const (
	LayoutClassic = "classic"
	LayoutModern  = "modern"
)

// ClassicLayout is the canonical 1122x794 template (A4 landscape at 96 DPI).
func ClassicLayout() Layout {
	const (
		ink  = "#1a1a2e"
		gold = "#d4af37"
	)

	return Layout{
		Name:       LayoutClassic,
		Width:      1122,
		Height:     794,
		Background: "#ffffff",

		OuterBorder: Border{Inset: 30, Width: 12, Color: gold},
		InnerBorder: Border{Inset: 45, Width: 2, Color: "#b8860b"},
		Ornament:    Ornament{Style: OrnamentBracket, Size: 40, Offset: 45, Width: 3, Color: gold},

		Title:     TextLine{Text: "Certificate of %s", Style: TextStyle{Weight: FontWeightBold, Size: 52, Color: ink}, Y: 140},
		TitleRule: Rule{X0: 361, X1: 761, Y: 160, Width: 3, Color: gold},

		CertifyCaption:     TextLine{Text: "This certifies that", Style: TextStyle{Weight: FontWeightItalic, Size: 24, Color: ink}, Y: 240},
		Recipient:          TextLine{Text: "%s", Style: TextStyle{Weight: FontWeightBold, Size: 48, Color: ink}, Y: 310},
		RecipientUnderline: Underline{Y: 15, Padding: 20, Width: 2, Color: gold},
		CourseCaption:      TextLine{Text: "has successfully completed the course", Style: TextStyle{Weight: FontWeightItalic, Size: 22, Color: ink}, Y: 390},
		Course:             TextLine{Text: "%s", Style: TextStyle{Weight: FontWeightBold, Size: 36, Color: ink}, Y: 450},
		CourseUnderline:    Underline{Y: 15, Padding: 20, Width: 2, Color: gold},
		InstructorCaption:  TextLine{Text: "under the instruction of", Style: TextStyle{Weight: FontWeightItalic, Size: 20, Color: ink}, Y: 525},
		Instructor:         TextLine{Text: "%s", Style: TextStyle{Weight: FontWeightBold, Size: 28, Color: ink}, Y: 570},
		IssueDate:          TextLine{Text: "Issued on: %s", Style: TextStyle{Weight: FontWeightItalic, Size: 20, Color: ink}, Y: 680},
		Signature:          Rule{X0: 411, X1: 711, Y: 720, Width: 1, Color: ink},
		SignatureCaption:   TextLine{Text: "Authorized Signature", Style: TextStyle{Weight: FontWeightRegular, Size: 16, Color: ink}, Y: 740},

		QRSize:   72,
		QRMargin: 14,
	}
}

// ModernLayout is the 930x690 variant. Its accent color follows the certificate type.
func ModernLayout() Layout {
	const (
		navy  = "#1d3557"
		slate = "#2b2d42"
	)

	return Layout{
		Name:       LayoutModern,
		Width:      930,
		Height:     690,
		Background: "#fdfcf7",

		OuterBorder: Border{Inset: 20, Width: 8, Color: navy},
		InnerBorder: Border{Inset: 34, Width: 1.5, Color: navy},
		Ornament:    Ornament{Style: OrnamentDiamond, Size: 14, Offset: 34, Width: 1, Color: navy},

		Title:     TextLine{Text: "Certificate of %s", Style: TextStyle{Weight: FontWeightBold, Size: 44, Color: slate}, Y: 122},
		TitleRule: Rule{X0: 315, X1: 615, Y: 140, Width: 2, Color: navy},

		CertifyCaption:     TextLine{Text: "This certifies that", Style: TextStyle{Weight: FontWeightItalic, Size: 20, Color: slate}, Y: 205},
		Recipient:          TextLine{Text: "%s", Style: TextStyle{Weight: FontWeightBold, Size: 42, Color: slate}, Y: 268},
		RecipientUnderline: Underline{Y: 14, Padding: 20, Width: 2, Color: navy},
		CourseCaption:      TextLine{Text: "has successfully completed the course", Style: TextStyle{Weight: FontWeightItalic, Size: 19, Color: slate}, Y: 335},
		Course:             TextLine{Text: "%s", Style: TextStyle{Weight: FontWeightBold, Size: 30, Color: slate}, Y: 388},
		CourseUnderline:    Underline{Y: 13, Padding: 20, Width: 1.5, Color: navy},
		InstructorCaption:  TextLine{Text: "under the instruction of", Style: TextStyle{Weight: FontWeightItalic, Size: 17, Color: slate}, Y: 450},
		Instructor:         TextLine{Text: "%s", Style: TextStyle{Weight: FontWeightBold, Size: 24, Color: slate}, Y: 488},
		IssueDate:          TextLine{Text: "Issued on: %s", Style: TextStyle{Weight: FontWeightItalic, Size: 17, Color: slate}, Y: 585},
		Signature:          Rule{X0: 340, X1: 590, Y: 625, Width: 1, Color: slate},
		SignatureCaption:   TextLine{Text: "Authorized Signature", Style: TextStyle{Weight: FontWeightRegular, Size: 14, Color: slate}, Y: 643},

		AccentByType: map[string]string{
			"achievement":   "#c9a227",
			"completion":    "#2a9d8f",
			"excellence":    "#7b2cbf",
			"participation": "#e76f51",
		},

		QRSize:   60,
		QRMargin: 12,
	}
}

// LayoutByName resolves a layout name, the empty name is the classic layout.
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutClassic:
		return ClassicLayout(), nil
	case LayoutModern:
		return ModernLayout(), nil
	}
	return Layout{}, fmt.Errorf("unknown layout %q", name)
}

// Accent returns the accent color for a certificate type, or "" when the layout has none.
func (l Layout) Accent(certificateType string) string {
	if l.AccentByType == nil {
		return ""
	}
	return l.AccentByType[strings.ToLower(strings.TrimSpace(certificateType))]
}

func (l Layout) CenterX() float64 {
	return l.Width / 2
}
