package advisor

import (
	"strings"

	"floorboard/internal/domain"
)

// ExtractCollections scans the user message for mentions of tracked
// collections, by slug or display name. Returns deduplicated
// normalized slugs in order of first mention.
func ExtractCollections(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var result []string
	add := func(slug string) {
		if !seen[slug] {
			seen[slug] = true
			result = append(result, slug)
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_')
	})
	for _, w := range words {
		slug := domain.NormalizeSlug(w)
		if domain.IsTracked(slug) {
			add(slug)
		}
	}

	// Display names can span several words, so match them by substring.
	for _, slug := range domain.CollectionSlugs {
		if strings.Contains(lower, strings.ToLower(domain.DisplayName(slug))) {
			add(slug)
		}
	}

	return result
}
