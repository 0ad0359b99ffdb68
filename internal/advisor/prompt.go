package advisor

import (
	"fmt"
	"strings"
	"time"

	"floorboard/internal/domain"
)

const marketPhilosophy = `You are an NFT market commentary bot for Sei collections. Your role is to interpret floor prices, listing depth, and volume data, NOT to invent numbers.

Rules:
- Always reference specific collections and figures when making observations.
- Never fabricate data. If data is unavailable, say so.
- Floor moves on thin volume mean little; say so when sales counts are low.
- Keep responses concise. You are talking via chat.
- Do not provide financial advice disclaimers on every message. The user understands this is informational.
- When asked about a collection, summarize: floor price, floor change, listed supply, and 24h activity.
- If a collection is not on the leaderboard, say so honestly rather than speculating.`

func BuildSystemPrompt(marketContext string) string {
	var sb strings.Builder
	sb.WriteString(marketPhilosophy)
	sb.WriteString("\n\n--- LIVE MARKET DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(marketContext)
	return sb.String()
}

func FormatCollectionContext(stats []*domain.CollectionStats) string {
	var sb strings.Builder
	sb.WriteString("\nCollection Stats:\n")
	for _, st := range stats {
		sb.WriteString(fmt.Sprintf("  %s: floor %.2f SEI (%+.2f%%), listed %d, 24h sales %d, 24h vol %.0f SEI\n",
			st.Name, st.FloorPrice, st.FloorChangePct, st.Listed, st.DaySales, st.DayVolume))
	}
	return sb.String()
}

func FormatLeaderboardContext(records []domain.EnrichedRecord) string {
	if len(records) == 0 {
		return "No market data currently available."
	}

	var sb strings.Builder
	sb.WriteString("\nLeaderboard:\n")
	for i, r := range records {
		if i >= 15 {
			break
		}
		sb.WriteString(fmt.Sprintf("  %d. %s: floor %.2f SEI (%+.2f%%), listed %d, 24h sales %d, 24h vol %.0f SEI\n",
			r.Rank, domain.DisplayName(domain.NormalizeSlug(r.Slug)),
			r.FloorPrice, r.FloorChangePct(), r.Listed, r.DaySales, r.DayVolume))
	}
	return sb.String()
}
