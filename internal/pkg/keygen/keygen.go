// Package keygen produces the date-partitioned storage keys under which
// uploaded images live: YYYY/MM/DD/<id>[_WxH].<ext>.
package keygen

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	shortIDLength   = 6
	shortIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// extensionByType maps declared upload content types to key extensions.
// Anything not listed falls back to png.
var extensionByType = map[string]string{
	"image/jpeg":    "jpeg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/avif":    "avif",
	"image/svg+xml": "svg",
	"image/bmp":     "bmp",
	"image/tiff":    "tiff",
	"image/x-icon":  "ico",
}

// Generator builds storage keys. Short ids are not reserved or checked for
// collisions: two uploads on the same day drawing the same id (and the same
// dimension suffix) overwrite each other. At 36^6 ids per day that window is
// accepted as negligible.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator backed by the shared math/rand source.
func New() *Generator {
	return &Generator{}
}

// NewWithSource returns a Generator drawing from src. Intended for tests
// that want deterministic ids.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// ShortID returns a 6-character id drawn uniformly from [a-z0-9].
func (g *Generator) ShortID() string {
	b := make([]byte, shortIDLength)
	for i := range b {
		b[i] = shortIDAlphabet[g.intN(len(shortIDAlphabet))]
	}
	return string(b)
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	// rand.Rand is not safe for concurrent use, the shared source is.
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// DatedPath formats t's calendar date, in the server's local timezone, as the
// zero-padded partition path YYYY/MM/DD.
func DatedPath(t time.Time) string {
	return t.Format("2006/01/02")
}

// ExtensionByType resolves a declared content type to a key extension,
// falling back to png for unknown or empty types.
func ExtensionByType(contentType string) string {
	if ext, ok := extensionByType[contentType]; ok {
		return ext
	}
	return "png"
}

// Generate derives the full storage key for an upload at instant t. Width and
// height are the raw form values supplied alongside the upload; when both are
// non-empty they are recorded verbatim as a _WxH suffix. The suffix is
// decorative metadata and is never validated or used for resizing.
func (g *Generator) Generate(t time.Time, contentType, width, height string) string {
	ext := ExtensionByType(contentType)
	if width != "" && height != "" {
		return fmt.Sprintf("%s/%s_%sx%s.%s", DatedPath(t), g.ShortID(), width, height, ext)
	}
	return fmt.Sprintf("%s/%s.%s", DatedPath(t), g.ShortID(), ext)
}
