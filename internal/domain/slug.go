package domain

import "strings"

// slugOverrides rewrites stripped identifiers whose canonical slug on
// the analytics service differs from the mechanical normalization.
// Every value must be a fixed point of NormalizeSlug.
var slugOverrides = map[string]string{
	"therabbitproject":  "the_rabbitproject",
	"therabbit_project": "the_rabbitproject",
	"rabbitproject":     "the_rabbitproject",
	"unfrgtn":           "theunfrgtn",
	"colony":            "thecolony",
	"council":           "thecouncil",
}

// NormalizeSlug maps an arbitrary collection identifier to the
// canonical key used for caching and cross-source joins: lowercase,
// every character outside [a-z_] dropped, then the override table.
// Pure and total; unknown input may normalize to an empty string, so
// callers must not assume non-emptiness.
func NormalizeSlug(raw string) string {
	lowered := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || r == '_' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if canonical, ok := slugOverrides[s]; ok {
		return canonical
	}
	return s
}
