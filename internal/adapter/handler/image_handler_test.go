package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fluffylabs/cdn-img/internal/adapter/handler"
	"github.com/fluffylabs/cdn-img/internal/domain"
	"github.com/fluffylabs/cdn-img/internal/mocks"
	"github.com/fluffylabs/cdn-img/internal/usecase/image"
)

func newImageRouter(h *handler.ImageHandler) *gin.Engine {
	router := setupRouter()
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			h.Get(c)
			return
		}
		c.Status(http.StatusNotFound)
	})
	return router
}

func TestImageHandler_Get(t *testing.T) {
	t.Run("serves bytes with cache and content type headers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		imageSvc := mocks.NewMockImageService(ctrl)
		router := newImageRouter(handler.NewImageHandler(imageSvc))

		data := []byte("png bytes")
		var captured image.GetInput
		imageSvc.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input image.GetInput) (*image.GetResult, error) {
				captured = input
				return &image.GetResult{Data: data, ContentType: "image/png"}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/2026/08/28/abc123.png", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, data, w.Body.Bytes())
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=2592000", w.Header().Get("Cache-Control"))
		assert.Equal(t, "2026/08/28/abc123.png", captured.Key)
	})

	t.Run("forwards query parameters and accept header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		imageSvc := mocks.NewMockImageService(ctrl)
		router := newImageRouter(handler.NewImageHandler(imageSvc))

		var captured image.GetInput
		imageSvc.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input image.GetInput) (*image.GetResult, error) {
				captured = input
				return &image.GetResult{Data: []byte("x"), ContentType: "image/avif", Transformed: true}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/2026/08/28/abc123.png?width=100&quality=80", nil)
		req.Header.Set("Accept", "image/avif,image/webp")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/avif", w.Header().Get("Content-Type"))
		assert.Equal(t, "100", captured.Query.Get("width"))
		assert.Equal(t, "80", captured.Query.Get("quality"))
		assert.Equal(t, "image/avif,image/webp", captured.Accept)
	})

	t.Run("returns 404 for an unknown key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		imageSvc := mocks.NewMockImageService(ctrl)
		router := newImageRouter(handler.NewImageHandler(imageSvc))

		imageSvc.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, domain.ErrObjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/2026/08/28/missing.png", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp["code"])
	})

	t.Run("returns 502 when the transform engine fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		imageSvc := mocks.NewMockImageService(ctrl)
		router := newImageRouter(handler.NewImageHandler(imageSvc))

		imageSvc.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: boom", domain.ErrTransformFailed))

		req := httptest.NewRequest(http.MethodGet, "/2026/08/28/abc123.png?width=100", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		imageSvc := mocks.NewMockImageService(ctrl)
		router := newImageRouter(handler.NewImageHandler(imageSvc))

		imageSvc.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		req := httptest.NewRequest(http.MethodGet, "/2026/08/28/abc123.png", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
