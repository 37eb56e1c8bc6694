package transform_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluffylabs/cdn-img/internal/pkg/transform"
)

func TestParseQuery(t *testing.T) {
	t.Run("parses all fields", func(t *testing.T) {
		p, ok := transform.ParseQuery(url.Values{
			"width":   {"800"},
			"height":  {"600"},
			"quality": {"75"},
		})
		assert.True(t, ok)
		assert.Equal(t, transform.Params{Width: 800, Height: 600, Quality: 75}, p)
	})

	t.Run("all fields are optional", func(t *testing.T) {
		p, ok := transform.ParseQuery(url.Values{"width": {"320"}})
		assert.True(t, ok)
		assert.Equal(t, transform.Params{Width: 320}, p)
	})

	t.Run("ignores unrecognized keys", func(t *testing.T) {
		p, ok := transform.ParseQuery(url.Values{"rotate": {"90"}})
		assert.True(t, ok)
		assert.Equal(t, transform.Params{}, p)
	})

	t.Run("fails on non-numeric width", func(t *testing.T) {
		_, ok := transform.ParseQuery(url.Values{"width": {"abc"}})
		assert.False(t, ok)
	})

	t.Run("fails on non-numeric quality", func(t *testing.T) {
		_, ok := transform.ParseQuery(url.Values{"width": {"800"}, "quality": {"high"}})
		assert.False(t, ok)
	})

	t.Run("fails on negative values", func(t *testing.T) {
		_, ok := transform.ParseQuery(url.Values{"height": {"-1"}})
		assert.False(t, ok)
	})

	t.Run("fails on empty value for a present key", func(t *testing.T) {
		_, ok := transform.ParseQuery(url.Values{"width": {""}})
		assert.False(t, ok)
	})

	t.Run("accepts empty query", func(t *testing.T) {
		p, ok := transform.ParseQuery(url.Values{})
		assert.True(t, ok)
		assert.Equal(t, transform.Params{}, p)
	})
}
