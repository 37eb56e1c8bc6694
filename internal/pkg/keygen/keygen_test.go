package keygen_test

import (
	"math"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffylabs/cdn-img/internal/pkg/keygen"
)

var keyPattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}/[a-z0-9]{6}(_\d+x\d+)?\.\w+$`)

func TestGenerator_Generate(t *testing.T) {
	g := keygen.NewWithSource(rand.NewPCG(1, 2))
	now := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.Local)

	t.Run("matches the key pattern", func(t *testing.T) {
		key := g.Generate(now, "image/png", "", "")
		assert.Regexp(t, keyPattern, key)
		assert.True(t, strings.HasPrefix(key, "2026/03/07/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
	})

	t.Run("zero-pads month and day", func(t *testing.T) {
		key := g.Generate(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.Local), "image/png", "", "")
		assert.True(t, strings.HasPrefix(key, "2026/01/02/"))
	})

	t.Run("appends dimension suffix when both width and height are set", func(t *testing.T) {
		key := g.Generate(now, "image/jpeg", "800", "600")
		assert.Regexp(t, keyPattern, key)
		assert.Contains(t, key, "_800x600.jpeg")
	})

	t.Run("omits dimension suffix when either dimension is missing", func(t *testing.T) {
		assert.NotRegexp(t, `_\d+x\d+`, g.Generate(now, "image/jpeg", "800", ""))
		assert.NotRegexp(t, `_\d+x\d+`, g.Generate(now, "image/jpeg", "", "600"))
	})

	t.Run("maps content types to distinct extensions", func(t *testing.T) {
		tests := []struct {
			contentType string
			ext         string
		}{
			{"image/jpeg", ".jpeg"},
			{"image/png", ".png"},
			{"image/gif", ".gif"},
			{"image/webp", ".webp"},
			{"image/avif", ".avif"},
			{"image/svg+xml", ".svg"},
			{"application/octet-stream", ".png"},
			{"", ".png"},
		}
		for _, tt := range tests {
			key := g.Generate(now, tt.contentType, "", "")
			assert.True(t, strings.HasSuffix(key, tt.ext), "content type %q produced %q", tt.contentType, key)
		}
	})
}

func TestGenerator_ShortID(t *testing.T) {
	const samples = 10000

	g := keygen.NewWithSource(rand.NewPCG(42, 7))
	counts := make(map[rune]int)

	for range samples {
		id := g.ShortID()
		require.Len(t, id, 6)
		for _, r := range id {
			require.Contains(t, "abcdefghijklmnopqrstuvwxyz0123456789", string(r))
			counts[r]++
		}
	}

	// Chi-square sanity check against a uniform draw over 36 symbols.
	// 35 degrees of freedom; 80 is far beyond the 0.001 critical value, so
	// only a badly skewed generator trips this.
	total := samples * 6
	expected := float64(total) / 36
	var chi2 float64
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	assert.Len(t, counts, 36, "every symbol should appear across 10k ids")
	assert.Less(t, chi2, 80.0, "per-character distribution is not roughly uniform (chi2=%f)", chi2)
	assert.False(t, math.IsNaN(chi2))
}

func TestGenerator_SharedSource(t *testing.T) {
	// The default generator draws from the shared source and must still
	// produce well-formed ids.
	g := keygen.New()
	id := g.ShortID()
	assert.Regexp(t, `^[a-z0-9]{6}$`, id)
}

func TestExtensionByType(t *testing.T) {
	assert.Equal(t, "jpeg", keygen.ExtensionByType("image/jpeg"))
	assert.Equal(t, "png", keygen.ExtensionByType("image/png"))
	assert.Equal(t, "png", keygen.ExtensionByType("video/mp4"))
	assert.Equal(t, "png", keygen.ExtensionByType(""))
}

func TestDatedPath(t *testing.T) {
	assert.Equal(t, "2026/08/28", keygen.DatedPath(time.Date(2026, time.August, 28, 10, 0, 0, 0, time.Local)))
	assert.Equal(t, "2025/01/05", keygen.DatedPath(time.Date(2025, time.January, 5, 23, 59, 59, 0, time.Local)))
}
