package storage

import (
	"context"
	"io"

	"github.com/fluffylabs/cdn-img/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

// ObjectStorage is the durable store keyed by the generated content path.
// Put is atomic from the caller's perspective; Get returns
// domain.ErrObjectNotFound for unknown keys.
type ObjectStorage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	Get(ctx context.Context, key string) (*entity.StoredObject, error)
}

// TransformOptions carry the per-request conversion knobs. Format is the
// negotiated target content type; the engine may produce a different type
// when it cannot encode the requested one, and reports what it actually
// produced.
type TransformOptions struct {
	Width   int
	Height  int
	Quality int
	Format  string
}

type TransformedImage struct {
	Data        []byte
	ContentType string
}

// ImageTransformer converts an image's format, dimensions and quality at
// retrieval time.
type ImageTransformer interface {
	Transform(ctx context.Context, reader io.Reader, opts TransformOptions) (*TransformedImage, error)
}
