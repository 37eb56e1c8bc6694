package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ResponseCache is the edge-style get-or-compute cache wrapping image
// retrievals, keyed by the full request URL. Retrieval handlers never see
// it; a hit short-circuits before they run and a 200 miss is stored after
// they finish. Redis trouble degrades to uncached serving.
type ResponseCache struct {
	client *redis.Client
	name   string
	ttl    time.Duration
	logger *zap.Logger
}

func NewResponseCache(client *redis.Client, name string, ttl time.Duration, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{
		client: client,
		name:   name,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedResponse struct {
	Status       int    `json:"status"`
	ContentType  string `json:"content_type"`
	CacheControl string `json:"cache_control"`
	Body         []byte `json:"body"`
}

func (rc *ResponseCache) key(url string) string {
	return fmt.Sprintf("%s:%s", rc.name, url)
}

// Wrap returns the caching middleware. Only GET requests outside the
// operational endpoints participate.
func (rc *ResponseCache) Wrap() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || skipPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rc.key(c.Request.URL.String())

		if data, err := rc.client.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				if cached.CacheControl != "" {
					c.Header("Cache-Control", cached.CacheControl)
				}
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		c.Header("X-Cache", "MISS")

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		if rec.Status() != http.StatusOK {
			return
		}

		entry := cachedResponse{
			Status:       rec.Status(),
			ContentType:  rec.Header().Get("Content-Type"),
			CacheControl: rec.Header().Get("Cache-Control"),
			Body:         rec.body.Bytes(),
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return
		}

		if err := rc.client.Set(ctx, key, data, rc.ttl).Err(); err != nil {
			rc.logger.Warn("storing cached response", zap.Error(err), zap.String("key", key))
		}
	}
}

func skipPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/swagger/")
}

// bodyRecorder tees the response body so a served miss can be stored.
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
