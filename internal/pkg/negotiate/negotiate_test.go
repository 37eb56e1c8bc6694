package negotiate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluffylabs/cdn-img/internal/pkg/negotiate"
)

func TestPickFormat(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		stored string
		want   string
	}{
		{
			name:   "prefers avif when accepted",
			accept: "image/avif,image/webp,image/apng,*/*;q=0.8",
			stored: "image/png",
			want:   "image/avif",
		},
		{
			name:   "falls back to webp when avif is absent",
			accept: "image/webp,image/apng,*/*;q=0.8",
			stored: "image/png",
			want:   "image/webp",
		},
		{
			name:   "avif wins even when webp is listed first",
			accept: "image/webp,image/avif",
			stored: "image/png",
			want:   "image/avif",
		},
		{
			name:   "returns stored type when nothing modern is accepted",
			accept: "image/png,image/jpeg",
			stored: "image/jpeg",
			want:   "image/jpeg",
		},
		{
			name:   "returns stored type for empty header",
			accept: "",
			stored: "image/png",
			want:   "image/png",
		},
		{
			name:   "substring match ignores quality weights",
			accept: "image/avif;q=0.1",
			stored: "image/png",
			want:   "image/avif",
		},
		{
			// Known imprecision of the containment rule, kept on purpose.
			name:   "substring match accepts superstrings",
			accept: "image/avifoo",
			stored: "image/png",
			want:   "image/avif",
		},
		{
			name:   "preserves empty stored type",
			accept: "text/html",
			stored: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, negotiate.PickFormat(tt.accept, tt.stored))
		})
	}
}
