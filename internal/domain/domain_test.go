package domain

import "testing"

func TestFloorChangePct(t *testing.T) {
	t.Parallel()

	r := LeaderboardRecord{FloorPrice: 110, PreviousFloorPrice: 100}
	if got := r.FloorChangePct(); got != 10 {
		t.Errorf("FloorChangePct() = %v, want 10", got)
	}

	r = LeaderboardRecord{FloorPrice: 90, PreviousFloorPrice: 100}
	if got := r.FloorChangePct(); got != -10 {
		t.Errorf("FloorChangePct() = %v, want -10", got)
	}

	r = LeaderboardRecord{FloorPrice: 50, PreviousFloorPrice: 0}
	if got := r.FloorChangePct(); got != 0 {
		t.Errorf("FloorChangePct() with zero previous = %v, want 0", got)
	}
}

func TestCollectionTable(t *testing.T) {
	t.Parallel()

	if len(CollectionSlugs) != len(CollectionName) {
		t.Fatalf("CollectionSlugs has %d entries, CollectionName has %d", len(CollectionSlugs), len(CollectionName))
	}
	for _, slug := range CollectionSlugs {
		if !IsTracked(slug) {
			t.Errorf("slug %q listed but not in CollectionName", slug)
		}
		if NormalizeSlug(slug) != slug {
			t.Errorf("canonical slug %q is not normalization-stable", slug)
		}
	}

	if got := DisplayName("webump"); got != "WeBump" {
		t.Errorf("DisplayName(webump) = %q", got)
	}
	if got := DisplayName("unknowncollection"); got != "unknowncollection" {
		t.Errorf("DisplayName fallback = %q", got)
	}

	slug, ok := SlugForName("The Rabbit Project")
	if !ok || slug != "the_rabbitproject" {
		t.Errorf("SlugForName(The Rabbit Project) = %q, %v", slug, ok)
	}
}
