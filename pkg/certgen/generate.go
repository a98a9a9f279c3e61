package certgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

type GeneratedResult struct {
	Number   int
	FileName string
	ID       string
	Size     int
}

type Settings struct {
	RemoveLineBreaksBool bool
	EmbedQRCode          bool
	QrURLPattern         string
	// Shrink names that would not fit between the borders
	FitText bool
	// Give repeated file names a numeric suffix instead of letting the later certificate replace the earlier one
	DisambiguateNames bool
	// When set, the archive also holds every certificate merged into one PDF under this name
	MergedFileName string
	// Written into the PDF metadata
	Author string
}

func NewDefaultSettings(qrUrlPattern string) *Settings {
	return &Settings{
		RemoveLineBreaksBool: true,
		EmbedQRCode:          qrUrlPattern != "",
		QrURLPattern:         qrUrlPattern,
	}
}

type CertificateGenerator struct {
	Renderer Renderer
	Exporter *Exporter
	Settings Settings
	logger   *zap.SugaredLogger
}

// NewCertificateGenerator loads the fonts and layout named by cfg.
func NewCertificateGenerator(cfg Config, settings Settings, logger *zap.SugaredLogger) (*CertificateGenerator, error) {
	layout, err := LayoutByName(cfg.Layout)
	if err != nil {
		return nil, err
	}

	if settings.EmbedQRCode {
		if err := ValidateQRURLPattern(settings.QrURLPattern); err != nil {
			return nil, err
		}
	}

	fontLoader, err := NewFontLoader(cfg.FontMetadataPath)
	if err != nil {
		return nil, err
	}

	family, err := fontLoader.LoadFamily(cfg.FontFamily)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	renderer := NewTemplateRenderer(layout, family, RenderOptions{
		RemoveLineBreaks: settings.RemoveLineBreaksBool,
		EmbedQRCode:      settings.EmbedQRCode,
		QRURLPattern:     settings.QrURLPattern,
		FitText:          settings.FitText,
	})

	return NewCertificateGeneratorWithRenderer(renderer, NewExporter(cfg.Scale), settings, logger), nil
}

func NewCertificateGeneratorWithRenderer(renderer Renderer, exporter *Exporter, settings Settings, logger *zap.SugaredLogger) *CertificateGenerator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &CertificateGenerator{
		Renderer: renderer,
		Exporter: exporter,
		Settings: settings,
		logger:   logger,
	}
}

func (cg *CertificateGenerator) documentInfo(record CertificateRecord) DocumentInfo {
	info := DocumentInfo{
		Title:   fmt.Sprintf("Certificate of %s - %s", record.CertificateType, record.StudentName),
		Subject: record.CourseName,
		Author:  cg.Settings.Author,
	}
	if issued, err := ParseIssueDate(record.IssueDate); err == nil {
		info.CreatedAt = issued
	}
	return info
}

// render draws record on surface and hands it to output, whose failures are
// reported as op. A panic in either step is returned as a *RecordError.
func (cg *CertificateGenerator) render(surface *Surface, index int, record CertificateRecord, op RecordOp, output func() error) (err error) {
	stage := OpRender
	defer func() {
		if r := recover(); r != nil {
			err = &RecordError{Index: index, FileName: record.FileName(), Op: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := record.Validate(); err != nil {
		return &RecordError{Index: index, FileName: record.FileName(), Op: OpRender, Err: err}
	}

	if err := cg.Renderer.Render(surface, record); err != nil {
		return &RecordError{Index: index, FileName: record.FileName(), Op: OpRender, Err: err}
	}

	stage = op
	if err := output(); err != nil {
		return &RecordError{Index: index, FileName: record.FileName(), Op: op, Err: err}
	}
	return nil
}

// renderAndExport draws record on the shared surface and returns the PDF bytes.
func (cg *CertificateGenerator) renderAndExport(surface *Surface, index int, record CertificateRecord) ([]byte, error) {
	var doc []byte
	err := cg.render(surface, index, record, OpExport, func() error {
		var err error
		doc, err = cg.Exporter.ExportBytes(surface, cg.documentInfo(record))
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GenerateSingle validates, renders and exports one certificate to w.
func (cg *CertificateGenerator) GenerateSingle(ctx context.Context, record CertificateRecord, w io.Writer) (*GeneratedResult, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := cg.renderAndExport(cg.Renderer.NewSurface(), 0, record)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailure, err)
	}

	cg.logger.Infof("Generated certificate %s (%d bytes)", record.FileName(), len(doc))

	return &GeneratedResult{
		Number:   1,
		FileName: record.FileName(),
		ID:       record.ID(),
		Size:     len(doc),
	}, nil
}

// Preview validates and renders one certificate and writes it to w as a PNG
// rasterized at the exporter scale.
func (cg *CertificateGenerator) Preview(ctx context.Context, record CertificateRecord, w io.Writer) (*GeneratedResult, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface := cg.Renderer.NewSurface()
	var img []byte
	err := cg.render(surface, 0, record, OpExport, func() error {
		var err error
		img, err = surface.PNG(cg.Exporter.Scale)
		return err
	})
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailure, err)
	}

	fileName := PreviewFileName(record)
	cg.logger.Infof("Generated preview %s (%d bytes)", fileName, len(img))

	return &GeneratedResult{
		Number:   1,
		FileName: fileName,
		ID:       record.ID(),
		Size:     len(img),
	}, nil
}

// PreviewFileName is the certificate file name with a .png extension.
func PreviewFileName(record CertificateRecord) string {
	return strings.TrimSuffix(record.FileName(), ".pdf") + ".png"
}

// mergedFileName sanitizes the configured merged document name, "" disables merging.
func (cg *CertificateGenerator) mergedFileName() (string, error) {
	if strings.TrimSpace(cg.Settings.MergedFileName) == "" {
		return "", nil
	}

	name := SanitizeFilename(cg.Settings.MergedFileName)
	if name == "" || name == ".pdf" {
		return "", fmt.Errorf("%w: %q is not a usable file name", ErrExportFailure, cg.Settings.MergedFileName)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name, nil
}

// GenerateBatch renders every record in order on one shared surface and
// writes a single zip archive to w. Nothing is written unless every record
// succeeds; the first failure is returned as a *RecordError.
func (cg *CertificateGenerator) GenerateBatch(ctx context.Context, records []CertificateRecord, w io.Writer) ([]GeneratedResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	mergedName, err := cg.mergedFileName()
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	cg.logger.Infof("Generating %d certificates", len(records))

	surface := cg.Renderer.NewSurface()
	entries := newEntrySet(cg.Settings.DisambiguateNames)
	results := make([]GeneratedResult, 0, len(records))

	var docs [][]byte
	if mergedName != "" {
		docs = make([][]byte, 0, len(records))
	}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := cg.renderAndExport(surface, i, record)
		if err != nil {
			cg.logger.Errorf("Batch aborted: %v", err)
			return nil, err
		}

		info := cg.documentInfo(record)
		_, duplicate := entries.index[record.FileName()]
		name := entries.add(ZipEntry{Name: record.FileName(), Data: doc, Modified: info.CreatedAt})
		switch {
		case name != record.FileName():
			cg.logger.Warnf("Certificate %d renamed to %s, %s is already in the archive", i+1, name, record.FileName())
		case duplicate:
			cg.logger.Warnf("Certificate %d replaces an earlier %s in the archive", i+1, name)
		}

		if docs != nil {
			docs = append(docs, doc)
		}

		results = append(results, GeneratedResult{
			Number:   i + 1,
			FileName: name,
			ID:       record.ID(),
			Size:     len(doc),
		})
		cg.logger.Debugf("Generated certificate %d/%d: %s", i+1, len(records), name)
	}

	if docs != nil {
		if _, exists := entries.index[mergedName]; exists {
			return nil, fmt.Errorf("%w: %s", ErrMergedNameCollision, mergedName)
		}

		var merged bytes.Buffer
		if err := MergePDFs(docs, &merged); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailure, err)
		}
		entries.add(ZipEntry{Name: mergedName, Data: merged.Bytes()})
	}

	var archive bytes.Buffer
	if err := WriteZip(&archive, entries.entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailure, err)
	}

	if _, err := archive.WriteTo(w); err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}

	cg.logger.Infof("Time taken to generate %d certificates: %v", len(results), time.Since(startTime))
	return results, nil
}
