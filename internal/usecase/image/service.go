package image

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/fluffylabs/cdn-img/internal/adapter/storage"
	"github.com/fluffylabs/cdn-img/internal/domain"
	"github.com/fluffylabs/cdn-img/internal/pkg/negotiate"
	"github.com/fluffylabs/cdn-img/internal/pkg/transform"
)

type Service struct {
	storage     storage.ObjectStorage
	transformer storage.ImageTransformer
}

// NewService wires the retrieval core. transformer may be nil, meaning the
// transform capability is not configured; every request then takes the raw
// passthrough path.
func NewService(objectStorage storage.ObjectStorage, transformer storage.ImageTransformer) *Service {
	return &Service{
		storage:     objectStorage,
		transformer: transformer,
	}
}

type GetInput struct {
	Key    string
	Query  url.Values
	Accept string
}

type GetResult struct {
	Data        []byte
	ContentType string
	Transformed bool
}

// Get resolves a retrieval request. Unknown keys surface
// domain.ErrObjectNotFound. A non-empty query triggers transformation only
// when the capability is configured and the parameters validate; malformed
// parameters silently fall back to the stored bytes rather than erroring.
func (s *Service) Get(ctx context.Context, input GetInput) (*GetResult, error) {
	obj, err := s.storage.Get(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	defer obj.Body.Close()

	if len(input.Query) > 0 && s.transformer != nil {
		if params, ok := transform.ParseQuery(input.Query); ok {
			return s.transform(ctx, obj.Body, obj.ContentType, params, input.Accept)
		}
	}

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
	}

	return &GetResult{
		Data:        data,
		ContentType: obj.ContentType,
	}, nil
}

func (s *Service) transform(ctx context.Context, body io.Reader, storedType string, params transform.Params, accept string) (*GetResult, error) {
	format := negotiate.PickFormat(accept, storedType)

	img, err := s.transformer.Transform(ctx, body, storage.TransformOptions{
		Width:   params.Width,
		Height:  params.Height,
		Quality: params.Quality,
		Format:  format,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransformFailed, err)
	}

	return &GetResult{
		Data:        img.Data,
		ContentType: img.ContentType,
		Transformed: true,
	}, nil
}
