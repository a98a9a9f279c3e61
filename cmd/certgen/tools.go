package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/certgen"
	"github.com/spf13/cobra"
)

func (c *cli) sampleCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write an example input table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.outputPath(out, certgen.SampleFileName)
			err := util.WriteFileAtomic(path, func(f *os.File) error {
				return certgen.WriteSampleCSV(f)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sample written to %s\n", path)
			return c.deliver(cmd.Context(), path)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output CSV path (default certificate_template.csv in the output directory)")
	return cmd
}

func (c *cli) mergeCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "merge <file.pdf|archive.zip>...",
		Short: "Merge certificates into one PDF, in argument order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var docs [][]byte
			for _, arg := range args {
				found, err := readDocuments(arg)
				if err != nil {
					return err
				}
				docs = append(docs, found...)
			}

			path := c.outputPath(out, "certificates.pdf")
			var merged bytes.Buffer
			if err := certgen.MergePDFs(docs, &merged); err != nil {
				return err
			}

			pages, err := certgen.PageCount(merged.Bytes())
			if err != nil {
				return err
			}

			err = util.WriteFileAtomic(path, func(f *os.File) error {
				_, err := merged.WriteTo(f)
				return err
			})
			if err != nil {
				return err
			}

			c.app.Logger.Infow("Merged document written", "path", path, "documents", len(docs), "pages", pages)
			if err := c.deliver(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d documents (%d pages) into %s\n", len(docs), pages, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (default certificates.pdf in the output directory)")
	return cmd
}

// readDocuments returns the PDF at path, or every PDF inside a zip archive in archive order.
func readDocuments(path string) ([][]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		doc, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return [][]byte{doc}, nil
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer archive.Close()

	var docs [][]byte
	for _, f := range archive.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".pdf") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in %s: %w", f.Name, path, err)
		}
		doc, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s in %s: %w", f.Name, path, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (c *cli) scanFontCmd() *cobra.Command {
	var (
		dir string
		out string
	)

	cmd := &cobra.Command{
		Use:   "scan-font",
		Short: "Index a font directory for CERTGEN_FONT_METADATA_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fonts, err := certgen.ScanFontDir(dir)
			if err != nil {
				return fmt.Errorf("failed to scan font directory: %w", err)
			}

			data, err := json.MarshalIndent(fonts, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}

			// The file can be read by the owner (you), read by users in the file's group, and read by anyone else on the system
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write JSON file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved metadata for %d fonts to %q\n", len(fonts), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "fonts", "directory holding .ttf and .otf files")
	cmd.Flags().StringVarP(&out, "out", "o", "font_metadata.json", "metadata output path")
	return cmd
}
