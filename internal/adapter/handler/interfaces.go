package handler

import (
	"context"

	"github.com/fluffylabs/cdn-img/internal/usecase/image"
	"github.com/fluffylabs/cdn-img/internal/usecase/upload"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UploadService interface {
	Upload(ctx context.Context, input upload.UploadInput) (string, error)
}

type ImageService interface {
	Get(ctx context.Context, input image.GetInput) (*image.GetResult, error)
}
