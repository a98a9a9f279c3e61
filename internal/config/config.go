package config

import (
	"fmt"
	"strings"

	"github.com/SeakMengs/certgen/internal/env"
	"github.com/SeakMengs/certgen/pkg/certgen"
)

type Config struct {
	ENV    string
	Render RenderConfig
	Output OutputConfig
	QR     QRConfig
	Minio  MinioConfig
}

type RenderConfig struct {
	// classic or modern
	Layout           string
	Scale            float64
	FontMetadataPath string
	FontFamily       string
	RemoveLineBreaks bool
	FitText          bool
}

type OutputConfig struct {
	Dir               string
	DisambiguateNames bool
	// Empty disables the merged document in the archive
	MergedFileName string
	Author         string
}

type QRConfig struct {
	Enabled bool
	// fmt pattern with one %s for the certificate id
	URLPattern string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	USE_SSL    bool
	BUCKET     string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func (c Config) MinioEnabled() bool {
	return c.Minio.ENDPOINT != ""
}

// Validate rejects settings that would otherwise only fail, or silently
// misbehave, once rendering starts.
func (c Config) Validate() error {
	if _, err := certgen.LayoutByName(c.Render.Layout); err != nil {
		return fmt.Errorf("invalid CERTGEN_LAYOUT: %w", err)
	}

	if c.QR.Enabled {
		if err := certgen.ValidateQRURLPattern(c.QR.URLPattern); err != nil {
			return err
		}
	}

	return nil
}

// CertgenConfig is the library config the generator is built from.
func (c Config) CertgenConfig() certgen.Config {
	return certgen.Config{
		FontMetadataPath: c.Render.FontMetadataPath,
		FontFamily:       c.Render.FontFamily,
		Layout:           c.Render.Layout,
		Scale:            c.Render.Scale,
	}
}

func (c Config) Settings() certgen.Settings {
	return certgen.Settings{
		RemoveLineBreaksBool: c.Render.RemoveLineBreaks,
		EmbedQRCode:          c.QR.Enabled && c.QR.URLPattern != "",
		QrURLPattern:         c.QR.URLPattern,
		FitText:              c.Render.FitText,
		DisambiguateNames:    c.Output.DisambiguateNames,
		MergedFileName:       c.Output.MergedFileName,
		Author:               c.Output.Author,
	}
}

func GetConfig() Config {
	defaults := certgen.NewDefaultConfig()

	return Config{
		ENV: env.GetString("CERTGEN_ENV", "development"),
		Render: RenderConfig{
			Layout:           env.GetString("CERTGEN_LAYOUT", defaults.Layout),
			Scale:            env.GetFloat("CERTGEN_SCALE", defaults.Scale),
			FontMetadataPath: env.GetString("CERTGEN_FONT_METADATA_PATH", ""),
			FontFamily:       env.GetString("CERTGEN_FONT_FAMILY", defaults.FontFamily),
			RemoveLineBreaks: env.GetBool("CERTGEN_REMOVE_LINE_BREAKS", true),
			FitText:          env.GetBool("CERTGEN_FIT_TEXT", false),
		},
		Output: OutputConfig{
			Dir:               env.GetString("CERTGEN_OUTPUT_DIR", "."),
			DisambiguateNames: env.GetBool("CERTGEN_DISAMBIGUATE_NAMES", false),
			MergedFileName:    env.GetString("CERTGEN_MERGED_FILE_NAME", ""),
			Author:            env.GetString("CERTGEN_AUTHOR", ""),
		},
		QR: QRConfig{
			Enabled:    env.GetBool("CERTGEN_QR_ENABLED", false),
			URLPattern: env.GetString("CERTGEN_QR_URL_PATTERN", ""),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("CERTGEN_MINIO_ENDPOINT", ""),
			ACCESS_KEY: env.GetString("CERTGEN_MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("CERTGEN_MINIO_SECRET_KEY", ""),
			USE_SSL:    env.GetBool("CERTGEN_MINIO_USE_SSL", false),
			BUCKET:     env.GetString("CERTGEN_MINIO_BUCKET", "certificates"),
		},
	}
}
