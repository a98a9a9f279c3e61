package certgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tdewolff/canvas"
)

// Renderer draws one certificate onto a surface it can also create.
type Renderer interface {
	NewSurface() *Surface
	Render(s *Surface, record CertificateRecord) error
}

type RenderOptions struct {
	// Collapse line breaks in record values so every value stays on one line
	RemoveLineBreaks bool
	EmbedQRCode      bool
	// Shrink data lines that would cross the inner border, see fitLine
	FitText bool
	// fmt pattern receiving the record id, see VerificationLink
	QRURLPattern string
}

// TemplateRenderer draws the fixed certificate composition described by a Layout.
type TemplateRenderer struct {
	layout  Layout
	family  *canvas.FontFamily
	options RenderOptions
}

func NewTemplateRenderer(layout Layout, family *canvas.FontFamily, options RenderOptions) *TemplateRenderer {
	return &TemplateRenderer{
		layout:  layout,
		family:  family,
		options: options,
	}
}

func (tr *TemplateRenderer) Layout() Layout {
	return tr.layout
}

func (tr *TemplateRenderer) NewSurface() *Surface {
	return NewSurface(tr.layout.Width, tr.layout.Height)
}

// Render repaints the whole surface, nothing from a previous record survives.
func (tr *TemplateRenderer) Render(s *Surface, record CertificateRecord) error {
	l := tr.layout
	if s.Width() != l.Width || s.Height() != l.Height {
		return fmt.Errorf("surface is %gx%g, layout %s needs %gx%g", s.Width(), s.Height(), l.Name, l.Width, l.Height)
	}

	issued, err := FormatIssueDate(record.IssueDate)
	if err != nil {
		return err
	}

	// the QR code carries the id of the record as given
	original := record
	if tr.options.RemoveLineBreaks {
		record = removeLineBreaks(record)
	}

	accent := l.Accent(record.CertificateType)
	pick := func(c string) string {
		if accent != "" {
			return accent
		}
		return c
	}

	s.Clear()
	s.FillRect(0, 0, l.Width, l.Height, l.Background)

	tr.drawBorder(s, l.OuterBorder)
	tr.drawBorder(s, l.InnerBorder)
	tr.drawOrnaments(s, l.Ornament, pick(l.Ornament.Color))

	tr.drawLine(s, l.Title, record.CertificateType)
	tr.drawRule(s, l.TitleRule, pick(l.TitleRule.Color))

	recipient, course, instructor := l.Recipient, l.Course, l.Instructor
	if tr.options.FitText {
		recipient = tr.fitLine(recipient, record.StudentName, l.RecipientUnderline.Padding)
		course = tr.fitLine(course, record.CourseName, l.CourseUnderline.Padding)
		instructor = tr.fitLine(instructor, record.LecturerName, 0)
	}

	tr.drawLine(s, l.CertifyCaption, "")
	nameWidth := tr.drawLine(s, recipient, record.StudentName)
	tr.drawUnderline(s, recipient.Y, nameWidth, l.RecipientUnderline, pick(l.RecipientUnderline.Color))

	tr.drawLine(s, l.CourseCaption, "")
	courseWidth := tr.drawLine(s, course, record.CourseName)
	tr.drawUnderline(s, course.Y, courseWidth, l.CourseUnderline, pick(l.CourseUnderline.Color))

	tr.drawLine(s, l.InstructorCaption, "")
	tr.drawLine(s, instructor, record.LecturerName)

	tr.drawLine(s, l.IssueDate, issued)

	tr.drawRule(s, l.Signature, l.Signature.Color)
	tr.drawLine(s, l.SignatureCaption, "")

	if tr.options.EmbedQRCode {
		if err := tr.drawQRCode(s, original); err != nil {
			return err
		}
	}

	return nil
}

func (tr *TemplateRenderer) face(style TextStyle) *canvas.FontFace {
	return tr.family.Face(pxToPt(style.Size), canvas.Hex(style.Color), style.Weight.FontStyle(), canvas.FontNormal)
}

// drawLine draws a centered line and returns its measured width.
func (tr *TemplateRenderer) drawLine(s *Surface, line TextLine, value string) float64 {
	text := line.Text
	if strings.Contains(text, "%s") {
		text = fmt.Sprintf(text, value)
	}

	face := tr.face(line.Style)
	s.Text(tr.layout.CenterX(), line.Y, text, face)
	return s.MeasureText(text, face)
}

// measureLine is drawLine without drawing.
func (tr *TemplateRenderer) measureLine(line TextLine, value string) float64 {
	return measureText(fmt.Sprintf(line.Text, value), tr.face(line.Style))
}

const minFontSize = 8

// MaxLineWidth is the widest a data line may get, padding included on both sides,
// without crossing the inner border.
func (l Layout) MaxLineWidth(padding float64) float64 {
	return l.Width - 2*(l.InnerBorder.Inset+padding)
}

// fitLine lowers the font size one unit at a time until value fits, never below minFontSize.
func (tr *TemplateRenderer) fitLine(line TextLine, value string, padding float64) TextLine {
	maxWidth := tr.layout.MaxLineWidth(padding)
	for line.Style.Size > minFontSize && tr.measureLine(line, value) > maxWidth {
		line.Style.Size--
	}
	return line
}

func (tr *TemplateRenderer) drawBorder(s *Surface, b Border) {
	l := tr.layout
	s.StrokeRect(b.Inset, b.Inset, l.Width-2*b.Inset, l.Height-2*b.Inset, b.Width, b.Color)
}

func (tr *TemplateRenderer) drawRule(s *Surface, r Rule, color string) {
	s.Polyline(r.Width, color, Point{r.X0, r.Y}, Point{r.X1, r.Y})
}

// UnderlineSpan centers a line of textWidth plus padding on each side under centerX.
func UnderlineSpan(centerX, textWidth, padding float64) (float64, float64) {
	half := textWidth/2 + padding
	return centerX - half, centerX + half
}

func (tr *TemplateRenderer) drawUnderline(s *Surface, baseline, textWidth float64, u Underline, color string) {
	x0, x1 := UnderlineSpan(tr.layout.CenterX(), textWidth, u.Padding)
	y := baseline + u.Y
	s.Polyline(u.Width, color, Point{x0, y}, Point{x1, y})
}

func (tr *TemplateRenderer) drawOrnaments(s *Surface, o Ornament, color string) {
	w, h := tr.layout.Width, tr.layout.Height
	// corner points, clockwise from top-left
	corners := []Point{
		{o.Offset, o.Offset},
		{w - o.Offset, o.Offset},
		{w - o.Offset, h - o.Offset},
		{o.Offset, h - o.Offset},
	}

	switch o.Style {
	case OrnamentDiamond:
		for _, c := range corners {
			s.FillPolygon(color,
				Point{c.X, c.Y - o.Size},
				Point{c.X + o.Size, c.Y},
				Point{c.X, c.Y + o.Size},
				Point{c.X - o.Size, c.Y},
			)
		}
	default:
		// arms point inwards from each corner
		dirs := []Point{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
		for i, c := range corners {
			d := dirs[i]
			s.Polyline(o.Width, color,
				Point{c.X + d.X*o.Size, c.Y},
				c,
				Point{c.X, c.Y + d.Y*o.Size},
			)
		}
	}
}

func (tr *TemplateRenderer) drawQRCode(s *Surface, record CertificateRecord) error {
	l := tr.layout
	img, err := GenerateQRCode(VerificationLink(tr.options.QRURLPattern, record), qrImageSize)
	if err != nil {
		return err
	}

	x := l.Width - l.InnerBorder.Inset - l.QRMargin - l.QRSize
	y := l.Height - l.InnerBorder.Inset - l.QRMargin - l.QRSize
	s.Image(x, y, l.QRSize, l.QRSize, img)
	return nil
}

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

func removeLineBreak(text string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(text, " "))
}

func removeLineBreaks(r CertificateRecord) CertificateRecord {
	return CertificateRecord{
		StudentName:     removeLineBreak(r.StudentName),
		CourseName:      removeLineBreak(r.CourseName),
		LecturerName:    removeLineBreak(r.LecturerName),
		IssueDate:       removeLineBreak(r.IssueDate),
		CertificateType: removeLineBreak(r.CertificateType),
	}
}
