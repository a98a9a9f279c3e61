package main

import (
	"context"
	"fmt"
	"path/filepath"

	appcontext "github.com/SeakMengs/certgen/internal/app_context"
	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/env"
	filestorage "github.com/SeakMengs/certgen/internal/file_storage"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/certgen"
	"github.com/spf13/cobra"
)

type cli struct {
	envFile string
	layout  string
	scale   float64
	qrURL   string
	fitText bool
	upload  bool

	// bulk only
	disambiguate bool
	merged       string

	app   *appcontext.Application
	jobID string
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           util.GetAppName(),
		Short:         "Render course completion certificates to PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env", ".env", "dotenv file to load before reading CERTGEN_* variables")
	flags.StringVar(&c.layout, "layout", "", "certificate layout, classic or modern (CERTGEN_LAYOUT)")
	flags.Float64Var(&c.scale, "scale", 0, "rasterization scale, pixels per layout unit (CERTGEN_SCALE)")
	flags.StringVar(&c.qrURL, "qr-url", "", "embed a verification QR code, pattern with one %s for the certificate id")
	flags.BoolVar(&c.fitText, "fit-text", false, "shrink names that would cross the inner border (CERTGEN_FIT_TEXT)")
	flags.BoolVar(&c.upload, "upload", false, "upload the output to the configured MinIO bucket")

	root.AddCommand(
		c.singleCmd(),
		c.previewCmd(),
		c.bulkCmd(),
		c.sampleCmd(),
		c.mergeCmd(),
		c.scanFontCmd(),
	)

	return root
}

// setup reads the configuration, applies flag overrides and builds the logger.
func (c *cli) setup(cmd *cobra.Command) error {
	env.LoadEnv(c.envFile)
	cfg := config.GetConfig()

	flags := cmd.Flags()
	if flags.Changed("layout") {
		cfg.Render.Layout = c.layout
	}
	if flags.Changed("scale") {
		cfg.Render.Scale = c.scale
	}
	if flags.Changed("qr-url") {
		cfg.QR.Enabled = c.qrURL != ""
		cfg.QR.URLPattern = c.qrURL
	}

	if flags.Changed("fit-text") {
		cfg.Render.FitText = c.fitText
	}
	if flags.Changed("disambiguate") {
		cfg.Output.DisambiguateNames = c.disambiguate
	}
	if flags.Changed("merged") {
		cfg.Output.MergedFileName = c.merged
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	jobID, err := util.NewJobID()
	if err != nil {
		return fmt.Errorf("failed to generate job id: %w", err)
	}
	c.jobID = jobID

	logger := util.NewLogger(cfg.ENV).With("job", jobID, "command", cmd.Name())
	logger.Debugf("Configuration: %+v", cfg)

	c.app = &appcontext.Application{
		Config: &cfg,
		Logger: logger,
	}

	if c.upload {
		if !cfg.MinioEnabled() {
			return fmt.Errorf("--upload needs CERTGEN_MINIO_ENDPOINT to be set")
		}

		s3, err := filestorage.NewMinioClient(&cfg.Minio)
		if err != nil {
			return fmt.Errorf("failed to create minio client: %w", err)
		}
		c.app.S3 = s3
	}

	return nil
}

// generator builds the certificate generator on first use, loading fonts is not free.
func (c *cli) generator() (*certgen.CertificateGenerator, error) {
	if c.app.Generator != nil {
		return c.app.Generator, nil
	}

	cfg := c.app.Config
	cg, err := certgen.NewCertificateGenerator(cfg.CertgenConfig(), cfg.Settings(), c.app.Logger)
	if err != nil {
		return nil, err
	}

	c.app.Generator = cg
	return cg, nil
}

// outputPath resolves a relative default file name against the configured output directory.
func (c *cli) outputPath(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(c.app.Config.Output.Dir, fallback)
}

// deliver uploads path when --upload was given.
func (c *cli) deliver(ctx context.Context, path string) error {
	if c.app.S3 == nil {
		return nil
	}

	info, err := util.UploadFileToS3ByPath(ctx, path, &util.FileUploadOptions{
		DirectoryPath: util.GetJobDirectoryPath(c.jobID),
		Bucket:        c.app.Config.Minio.BUCKET,
		S3:            c.app.S3,
	})
	if err != nil {
		return err
	}

	c.app.Logger.Infof("Uploaded %s to %s/%s (%d bytes)", filepath.Base(path), info.Bucket, info.Key, info.Size)
	return nil
}
