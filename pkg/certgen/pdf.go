package certgen

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const (
	// A4 landscape
	PageWidthMM  = 297.0
	PageHeightMM = 210.0

	// Print-quality rasterization, 3 pixels per logical unit
	DefaultScale = 3.0
)

// DocumentInfo is written into the PDF metadata.
type DocumentInfo struct {
	Title   string
	Subject string
	Author  string
	// Also keeps the output byte-identical for identical input
	CreatedAt time.Time
}

// Exporter turns a rendered surface into a single page PDF with the raster full bleed.
type Exporter struct {
	Scale        float64
	PageWidthMM  float64
	PageHeightMM float64
}

func NewExporter(scale float64) *Exporter {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Exporter{
		Scale:        scale,
		PageWidthMM:  PageWidthMM,
		PageHeightMM: PageHeightMM,
	}
}

func (e *Exporter) Export(s *Surface, info DocumentInfo, w io.Writer) error {
	img, err := s.PNG(e.Scale)
	if err != nil {
		return fmt.Errorf("failed to encode surface: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: e.PageHeightMM, Ht: e.PageWidthMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)

	if !info.CreatedAt.IsZero() {
		pdf.SetCreationDate(info.CreatedAt)
	}
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Subject != "" {
		pdf.SetSubject(info.Subject, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
		pdf.SetCreator(info.Author, true)
	}

	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, bytes.NewReader(img))
	pdf.ImageOptions("certificate", 0, 0, e.PageWidthMM, e.PageHeightMM, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

// ExportBytes is Export into memory.
func (e *Exporter) ExportBytes(s *Surface, info DocumentInfo) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(s, info, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergePDFs concatenates the documents in order into one PDF.
func MergePDFs(docs [][]byte, w io.Writer) error {
	if len(docs) == 0 {
		return fmt.Errorf("no documents to merge")
	}

	rsc := make([]io.ReadSeeker, len(docs))
	for i, doc := range docs {
		rsc[i] = bytes.NewReader(doc)
	}

	if err := api.MergeRaw(rsc, w, false, nil); err != nil {
		return fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return nil
}

func PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}
	return n, nil
}
