package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/fluffylabs/cdn-img/internal/adapter/storage"
)

const defaultJPEGQuality = 85

// ImagingTransformer is the in-process transform engine. It resizes with
// Lanczos resampling and encodes toward the requested format. The engine has
// no avif or webp encoder; those requests collapse to the nearest format it
// can produce, and the returned ContentType reports what actually got
// encoded.
type ImagingTransformer struct{}

func NewImagingTransformer() *ImagingTransformer {
	return &ImagingTransformer{}
}

func (t *ImagingTransformer) Transform(ctx context.Context, reader io.Reader, opts storage.TransformOptions) (*storage.TransformedImage, error) {
	img, sourceFormat, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	switch {
	case opts.Width > 0 && opts.Height > 0:
		img = imaging.Fit(img, opts.Width, opts.Height, imaging.Lanczos)
	case opts.Width > 0:
		img = imaging.Resize(img, opts.Width, 0, imaging.Lanczos)
	case opts.Height > 0:
		img = imaging.Resize(img, 0, opts.Height, imaging.Lanczos)
	}

	format, contentType := encodeTarget(opts.Format, sourceFormat)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		quality := opts.Quality
		if quality <= 0 {
			quality = defaultJPEGQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}

	return &storage.TransformedImage{
		Data:        buf.Bytes(),
		ContentType: contentType,
	}, nil
}

// encodeTarget maps the negotiated content type onto an encoder this engine
// has. Unencodable targets (avif, webp, anything exotic) keep the source
// format when that is encodable, else jpeg.
func encodeTarget(requested, sourceFormat string) (format, contentType string) {
	switch requested {
	case "image/png":
		return "png", "image/png"
	case "image/jpeg":
		return "jpeg", "image/jpeg"
	case "image/gif":
		return "gif", "image/gif"
	}

	switch sourceFormat {
	case "png":
		return "png", "image/png"
	case "gif":
		return "gif", "image/gif"
	}
	return "jpeg", "image/jpeg"
}
