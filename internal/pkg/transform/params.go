// Package transform holds the typed shape of per-request transform
// parameters parsed from a retrieval query string.
package transform

import (
	"net/url"
	"strconv"
)

// Params are the transform knobs a retrieval request may carry. Zero means
// the knob was absent.
type Params struct {
	Width   int
	Height  int
	Quality int
}

// ParseQuery validates query against the transform parameter shape. Each of
// width, height and quality is optional but must be a non-negative integer
// when present; any violation fails the whole parse. Unrecognized keys are
// ignored. Callers route a failed parse to the untransformed passthrough —
// bad parameters silently disable transformation, they never error the
// request.
func ParseQuery(query url.Values) (Params, bool) {
	var p Params
	var ok bool

	if p.Width, ok = parseField(query, "width"); !ok {
		return Params{}, false
	}
	if p.Height, ok = parseField(query, "height"); !ok {
		return Params{}, false
	}
	if p.Quality, ok = parseField(query, "quality"); !ok {
		return Params{}, false
	}
	return p, true
}

func parseField(query url.Values, key string) (int, bool) {
	if !query.Has(key) {
		return 0, true
	}
	n, err := strconv.Atoi(query.Get(key))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
