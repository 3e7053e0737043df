package out

import (
	"context"

	"runsheet/internal/modules/importer/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ImportItems(ctx context.Context, manifest domain.Manifest, request domain.ImportRequest) ([]domain.ImportedItem, error)
}
