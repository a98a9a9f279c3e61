package certgen

import (
	"bytes"
	"image"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement and a bottom-left origin.
 * Everything that takes a coordinate in this package takes logical units (px at 96 DPI)
 * from the top-left corner and converts when it reaches the canvas.
 */

const DPI = 96

// Converts logical units to millimeters
func pxToMM(px float64) float64 {
	return (px * 25.4) / DPI
}

// Converts millimeters to logical units
func mmToPx(mm float64) float64 {
	return (mm * DPI) / 25.4
}

// Converts a CSS pixel font size to points
func pxToPt(px float64) float64 {
	return px * 72 / DPI
}

// Surface is a fixed size drawing target. One surface can be cleared and
// redrawn any number of times; it must not be drawn from two goroutines.
type Surface struct {
	width  float64
	height float64
	c      *canvas.Canvas
	ctx    *canvas.Context
}

func NewSurface(width, height float64) *Surface {
	s := &Surface{width: width, height: height}
	s.Clear()
	return s
}

func (s *Surface) Width() float64 {
	return s.width
}

func (s *Surface) Height() float64 {
	return s.height
}

// Clear drops everything drawn so far.
func (s *Surface) Clear() {
	s.c = canvas.New(pxToMM(s.width), pxToMM(s.height))
	s.ctx = canvas.NewContext(s.c)
}

// Rasterize draws the surface at scale pixels per logical unit.
func (s *Surface) Rasterize(scale float64) *image.RGBA {
	return rasterizer.Draw(s.c, canvas.DPI(DPI*scale), canvas.DefaultColorSpace)
}

// PNG rasterizes the surface and encodes it.
func (s *Surface) PNG(scale float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Rasterize(scale)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Surface) x(px float64) float64 {
	return pxToMM(px)
}

// y flips a top-down logical coordinate into the canvas' bottom-up mm space.
func (s *Surface) y(px float64) float64 {
	return pxToMM(s.height - px)
}

func (s *Surface) FillRect(x, y, w, h float64, fill string) {
	s.ctx.Push()
	defer s.ctx.Pop()

	s.ctx.SetFillColor(canvas.Hex(fill))
	s.ctx.SetStrokeColor(canvas.Transparent)
	s.ctx.DrawPath(s.x(x), s.y(y+h), canvas.Rectangle(pxToMM(w), pxToMM(h)))
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, stroke string) {
	s.ctx.Push()
	defer s.ctx.Pop()

	s.ctx.SetFillColor(canvas.Transparent)
	s.ctx.SetStrokeColor(canvas.Hex(stroke))
	s.ctx.SetStrokeWidth(pxToMM(width))
	s.ctx.SetStrokeJoiner(canvas.MiterJoin)
	s.ctx.DrawPath(s.x(x), s.y(y+h), canvas.Rectangle(pxToMM(w), pxToMM(h)))
}

type Point struct {
	X, Y float64
}

// Polyline strokes an open path through the points.
func (s *Surface) Polyline(width float64, stroke string, points ...Point) {
	if len(points) < 2 {
		return
	}

	p := &canvas.Path{}
	p.MoveTo(s.x(points[0].X), s.y(points[0].Y))
	for _, pt := range points[1:] {
		p.LineTo(s.x(pt.X), s.y(pt.Y))
	}

	s.ctx.Push()
	defer s.ctx.Pop()

	s.ctx.SetFillColor(canvas.Transparent)
	s.ctx.SetStrokeColor(canvas.Hex(stroke))
	s.ctx.SetStrokeWidth(pxToMM(width))
	s.ctx.SetStrokeCapper(canvas.ButtCap)
	s.ctx.SetStrokeJoiner(canvas.MiterJoin)
	s.ctx.DrawPath(0, 0, p)
}

// FillPolygon fills the closed path through the points.
func (s *Surface) FillPolygon(fill string, points ...Point) {
	if len(points) < 3 {
		return
	}

	p := &canvas.Path{}
	p.MoveTo(s.x(points[0].X), s.y(points[0].Y))
	for _, pt := range points[1:] {
		p.LineTo(s.x(pt.X), s.y(pt.Y))
	}
	p.Close()

	s.ctx.Push()
	defer s.ctx.Pop()

	s.ctx.SetFillColor(canvas.Hex(fill))
	s.ctx.SetStrokeColor(canvas.Transparent)
	s.ctx.DrawPath(0, 0, p)
}

// Text draws a single line centered on x with its baseline on y.
func (s *Surface) Text(x, y float64, text string, face *canvas.FontFace) {
	s.ctx.DrawText(s.x(x), s.y(y), canvas.NewTextLine(face, text, canvas.Center))
}

// MeasureText returns the rendered width of text in logical units.
func (s *Surface) MeasureText(text string, face *canvas.FontFace) float64 {
	return measureText(text, face)
}

func measureText(text string, face *canvas.FontFace) float64 {
	if text == "" {
		return 0
	}
	textBox := canvas.NewTextBox(face, text, 0.0, 0.0, canvas.Left, canvas.Top, 0.0, 0.0)
	return mmToPx(textBox.Bounds().W())
}

// Image draws img into the w x h box whose top-left corner is (x, y).
func (s *Surface) Image(x, y, w, h float64, img image.Image) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || w <= 0 || h <= 0 {
		return
	}
	// pixels per mm so that the image spans exactly w
	resolution := canvas.DPMM(float64(bounds.Dx()) / pxToMM(w))
	s.ctx.DrawImage(s.x(x), s.y(y+h), img, resolution)
}
