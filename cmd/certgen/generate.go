package main

import (
	"fmt"
	"os"

	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/certgen"
	"github.com/spf13/cobra"
)

func (c *cli) singleCmd() *cobra.Command {
	var (
		input certgen.CertificateRecord
		out   string
	)

	cmd := &cobra.Command{
		Use:   "single",
		Short: "Render one certificate from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.app.Logger

			// reject before anything touches the disk
			record, err := c.validateRecord(input)
			if err != nil {
				return err
			}

			cg, err := c.generator()
			if err != nil {
				return err
			}

			path := c.outputPath(out, record.FileName())
			var result *certgen.GeneratedResult
			err = util.WriteFileAtomic(path, func(f *os.File) error {
				var err error
				result, err = cg.GenerateSingle(cmd.Context(), record, f)
				return err
			})
			if err != nil {
				return err
			}

			logger.Infow("Certificate written", "path", path, "id", result.ID, "size", result.Size)
			if err := c.deliver(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", certgen.StatusMessage(nil), path)
			return nil
		},
	}

	recordFlags(cmd, &input)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (default <course>_<student>.pdf in the output directory)")

	return cmd
}

func (c *cli) previewCmd() *cobra.Command {
	var (
		input certgen.CertificateRecord
		out   string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render one certificate from flags as a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.app.Logger

			record, err := c.validateRecord(input)
			if err != nil {
				return err
			}

			cg, err := c.generator()
			if err != nil {
				return err
			}

			path := c.outputPath(out, certgen.PreviewFileName(record))
			var result *certgen.GeneratedResult
			err = util.WriteFileAtomic(path, func(f *os.File) error {
				var err error
				result, err = cg.Preview(cmd.Context(), record, f)
				return err
			})
			if err != nil {
				return err
			}

			logger.Infow("Preview written", "path", path, "id", result.ID, "size", result.Size)
			if err := c.deliver(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Preview generated successfully: %s\n", path)
			return nil
		},
	}

	recordFlags(cmd, &input)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default <course>_<student>.png in the output directory)")

	return cmd
}

func recordFlags(cmd *cobra.Command, input *certgen.CertificateRecord) {
	flags := cmd.Flags()
	flags.StringVar(&input.StudentName, "student", "", "student name")
	flags.StringVar(&input.CourseName, "course", "", "course name")
	flags.StringVar(&input.LecturerName, "lecturer", "", "lecturer name")
	flags.StringVar(&input.IssueDate, "date", "", "issue date, YYYY-MM-DD")
	flags.StringVar(&input.CertificateType, "type", "", "certificate type, e.g. Achievement")
}

var singleFlagNames = map[string]string{
	certgen.ColumnStudentName:     "--student",
	certgen.ColumnCourseName:      "--course",
	certgen.ColumnLecturerName:    "--lecturer",
	certgen.ColumnIssueDate:       "--date",
	certgen.ColumnCertificateType: "--type",
}

// validateRecord trims the flag values and validates them once, logging one
// warning per rejected flag.
func (c *cli) validateRecord(input certgen.CertificateRecord) (certgen.CertificateRecord, error) {
	record := certgen.RecordFromRow(map[string]string{
		certgen.ColumnStudentName:     input.StudentName,
		certgen.ColumnCourseName:      input.CourseName,
		certgen.ColumnLecturerName:    input.LecturerName,
		certgen.ColumnIssueDate:       input.IssueDate,
		certgen.ColumnCertificateType: input.CertificateType,
	})

	v, err := util.NewValidator()
	if err != nil {
		return record, err
	}

	err = v.Struct(record)
	if err != nil {
		for _, e := range util.GenerateErrorMessages(err, singleFlagNames) {
			c.app.Logger.Warnf("%s: %s", e.Field, e.Message)
		}
	}
	return record, certgen.ValidationError(err)
}

func (c *cli) bulkCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "bulk <input.csv|input.xlsx>",
		Short: "Render every row of a table into a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.app.Logger
			input := args[0]

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("%w: %w", certgen.ErrParseFailure, err)
			}
			defer f.Close()

			ds, err := certgen.LoadRecordsFrom(input, f)
			if err != nil {
				return err
			}
			if len(ds.Skipped) > 0 {
				logger.Warnf("Skipped %d incomplete rows: %v", len(ds.Skipped), ds.Skipped)
			}

			cg, err := c.generator()
			if err != nil {
				return err
			}

			path := c.outputPath(out, certgen.ArchiveName)
			var results []certgen.GeneratedResult
			err = util.WriteFileAtomic(path, func(f *os.File) error {
				var err error
				results, err = cg.GenerateBatch(cmd.Context(), ds.Records, f)
				return err
			})
			if err != nil {
				return err
			}

			logger.Infow("Archive written", "path", path, "certificates", len(results))
			if err := c.deliver(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d certificates in %s\n", certgen.StatusMessage(nil), len(results), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output zip path (default certificates.zip in the output directory)")
	cmd.Flags().BoolVar(&c.disambiguate, "disambiguate", false, "suffix repeated file names with _2, _3 instead of keeping the last (CERTGEN_DISAMBIGUATE_NAMES)")
	cmd.Flags().StringVar(&c.merged, "merged", "", "also add every certificate merged into one PDF under this name (CERTGEN_MERGED_FILE_NAME)")

	return cmd
}
