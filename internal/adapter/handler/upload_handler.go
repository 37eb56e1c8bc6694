package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluffylabs/cdn-img/internal/pkg/httputil"
	"github.com/fluffylabs/cdn-img/internal/usecase/upload"
)

const maxUploadSize = 10 << 20 // 10MB

type UploadHandler struct {
	uploadSvc UploadService
}

func NewUploadHandler(uploadSvc UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload handles PUT /upload. The multipart body must carry the file in an
// "image" field; "width" and "height" are optional string fields recorded in
// the key. Responds with the generated key as plain text.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "MISSING_IMAGE", "image field is required")
		return
	}
	defer file.Close()

	key, err := h.uploadSvc.Upload(c.Request.Context(), upload.UploadInput{
		File:        file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Width:       c.PostForm("width"),
		Height:      c.PostForm("height"),
	})
	if err != nil {
		httputil.InternalError(c)
		return
	}

	c.String(http.StatusOK, key)
}
