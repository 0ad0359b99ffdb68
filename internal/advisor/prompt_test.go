package advisor

import (
	"strings"
	"testing"

	"floorboard/internal/domain"
)

func TestBuildSystemPromptContainsPhilosophy(t *testing.T) {
	prompt := BuildSystemPrompt("some context")
	if !strings.Contains(prompt, "NFT market commentary") {
		t.Fatal("expected commentary philosophy in prompt")
	}
	if !strings.Contains(prompt, "LIVE MARKET DATA") {
		t.Fatal("expected market data header in prompt")
	}
	if !strings.Contains(prompt, "some context") {
		t.Fatal("expected market context in prompt")
	}
}

func TestFormatCollectionContext(t *testing.T) {
	stats := []*domain.CollectionStats{
		{Name: "WeBump", FloorPrice: 42.5, FloorChangePct: 3.1, Listed: 120, DaySales: 9, DayVolume: 800},
	}
	ctx := FormatCollectionContext(stats)
	if !strings.Contains(ctx, "WeBump: floor 42.50 SEI") {
		t.Fatalf("expected floor line, got: %s", ctx)
	}
	if !strings.Contains(ctx, "+3.10%") {
		t.Fatalf("expected signed change, got: %s", ctx)
	}
}

func TestFormatLeaderboardContext(t *testing.T) {
	records := []domain.EnrichedRecord{
		{LeaderboardRecord: domain.LeaderboardRecord{
			Slug: "webump", Rank: 1, FloorPrice: 42, PreviousFloorPrice: 40, Listed: 100, DaySales: 5, DayVolume: 500,
		}},
	}
	ctx := FormatLeaderboardContext(records)
	if !strings.Contains(ctx, "1. WeBump") {
		t.Fatalf("expected ranked entry, got: %s", ctx)
	}

	if got := FormatLeaderboardContext(nil); got != "No market data currently available." {
		t.Fatalf("expected fallback text, got: %s", got)
	}
}
