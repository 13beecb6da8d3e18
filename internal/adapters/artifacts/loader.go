package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
	"github.com/zatekoja/chefmate/backend/pkg/config"
)

// FileLoader reads the clustering model and encoder from local files
type FileLoader struct {
	clusterModelPath string
	encoderPath      string
}

var _ providers.ArtifactLoader = (*FileLoader)(nil)

// NewFileLoader creates a loader for the configured artifact paths
func NewFileLoader(cfg *config.ArtifactsConfig) *FileLoader {
	return &FileLoader{
		clusterModelPath: cfg.ClusterModelPath,
		encoderPath:      cfg.EncoderPath,
	}
}

// Load reads both artifacts. A missing or unreadable file is an error.
func (l *FileLoader) Load(ctx context.Context) (*entities.ModelArtifacts, error) {
	model, err := readArtifact(ctx, l.clusterModelPath)
	if err != nil {
		return nil, fmt.Errorf("load clustering model: %w", err)
	}
	encoder, err := readArtifact(ctx, l.encoderPath)
	if err != nil {
		return nil, fmt.Errorf("load encoder: %w", err)
	}

	log.Info().
		Str("cluster_model", model.Name).
		Int64("cluster_model_bytes", model.Size).
		Str("encoder", encoder.Name).
		Int64("encoder_bytes", encoder.Size).
		Msg("Model artifacts loaded")

	return &entities.ModelArtifacts{ClusterModel: *model, Encoder: *encoder}, nil
}

func readArtifact(ctx context.Context, path string) (*entities.ModelArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return &entities.ModelArtifact{
		Name:   filepath.Base(path),
		Path:   path,
		Size:   int64(len(data)),
		SHA256: hex.EncodeToString(sum[:]),
		Data:   data,
	}, nil
}
