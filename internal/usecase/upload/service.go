package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fluffylabs/cdn-img/internal/adapter/storage"
	"github.com/fluffylabs/cdn-img/internal/pkg/keygen"
)

type Service struct {
	storage storage.ObjectStorage
	keys    *keygen.Generator
}

func NewService(objectStorage storage.ObjectStorage, keys *keygen.Generator) *Service {
	return &Service{
		storage: objectStorage,
		keys:    keys,
	}
}

// UploadInput carries the uploaded file and its declared metadata. Width and
// Height are the optional raw form values; they end up in the key suffix
// verbatim when both are set.
type UploadInput struct {
	File        io.Reader
	ContentType string
	Size        int64
	Width       string
	Height      string
}

// Upload derives a key for the current instant, writes the bytes and the
// declared content type to the store under it, and returns the key. Exactly
// one object is written per successful call.
func (s *Service) Upload(ctx context.Context, input UploadInput) (string, error) {
	key := s.keys.Generate(time.Now(), input.ContentType, input.Width, input.Height)

	if err := s.storage.Put(ctx, key, input.File, input.ContentType, input.Size); err != nil {
		return "", fmt.Errorf("writing object: %w", err)
	}

	return key, nil
}
