// Package negotiate picks the output format for a retrieval response from
// the client's Accept header.
package negotiate

import "strings"

// preferred lists the modern formats we would rather serve, most preferred
// first.
var preferred = []string{"image/avif", "image/webp"}

// PickFormat returns the first preferred format whose MIME string occurs in
// accept, else stored unchanged. Matching is plain substring containment,
// not media-type parsing: quality weights are ignored and "image/avifoo"
// matches image/avif. Existing clients depend on this exact rule.
func PickFormat(accept, stored string) string {
	if accept != "" {
		for _, t := range preferred {
			if strings.Contains(accept, t) {
				return t
			}
		}
	}
	return stored
}
