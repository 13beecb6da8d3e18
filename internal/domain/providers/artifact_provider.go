package providers

import (
	"context"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

// ArtifactLoader reads the pre-trained model artifacts
type ArtifactLoader interface {
	Load(ctx context.Context) (*entities.ModelArtifacts, error)
}
