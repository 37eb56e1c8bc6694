package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fluffylabs/cdn-img/internal/domain"
	"github.com/fluffylabs/cdn-img/internal/pkg/httputil"
	"github.com/fluffylabs/cdn-img/internal/usecase/image"
)

// cacheMaxAge is the Cache-Control lifetime of every served image, 30 days.
const cacheMaxAge = 30 * 24 * 60 * 60

type ImageHandler struct {
	imageSvc ImageService
}

func NewImageHandler(imageSvc ImageService) *ImageHandler {
	return &ImageHandler{imageSvc: imageSvc}
}

// Get serves GET /<key>. Keys are path-like and contain slashes, so the
// handler takes the whole request path minus the leading slash.
func (h *ImageHandler) Get(c *gin.Context) {
	key := strings.TrimPrefix(c.Request.URL.Path, "/")
	if key == "" {
		httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "object not found")
		return
	}

	result, err := h.imageSvc.Get(c.Request.Context(), image.GetInput{
		Key:    key,
		Query:  c.Request.URL.Query(),
		Accept: c.GetHeader("Accept"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrObjectNotFound):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "object not found")
		case errors.Is(err, domain.ErrTransformFailed):
			httputil.ErrorWithCode(c, http.StatusBadGateway, "TRANSFORM_FAILED", "image transform failed")
		default:
			httputil.InternalError(c)
		}
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheMaxAge))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
