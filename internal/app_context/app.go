package appcontext

import (
	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/pkg/certgen"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Application contains core dependencies of a command run.
type Application struct {
	// Config holds settings provided from the environment and .env file, overridden by flags.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Generator renders and exports certificates with the configured layout and fonts.
	Generator *certgen.CertificateGenerator

	// S3 is nil unless an upload was requested.
	S3 *minio.Client
}
