package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"floorboard/internal/domain"
	"floorboard/internal/service"

	tele "gopkg.in/telebot.v3"
)

// AdvisorQuerier is wired when the advisor is configured; nil disables
// the /ask command.
type AdvisorQuerier interface {
	Ask(ctx context.Context, chatID int64, question string) (string, error)
}

func StartTelegramBot(dashboard *service.DashboardService, advisor AdvisorQuerier) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/floor", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /floor webump\nTracked: %s", strings.Join(domain.CollectionSlugs, ", ")))
		}
		slug := domain.NormalizeSlug(args[0])
		if !domain.IsTracked(slug) {
			return c.Send(fmt.Sprintf("Unknown collection: %s\nTracked: %s", args[0], strings.Join(domain.CollectionSlugs, ", ")))
		}
		stats, err := dashboard.GetCollectionStats(context.Background(), slug)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching stats for %s: %v", slug, err))
		}
		msg := fmt.Sprintf(
			"%s\nFloor: %.2f SEI (%+.2f%%)\nListed: %d\n24h Sales: %d\n24h Volume: %.0f SEI",
			stats.Name, stats.FloorPrice, stats.FloorChangePct, stats.Listed, stats.DaySales, stats.DayVolume,
		)
		return c.Send(msg)
	})

	b.Handle("/leaderboard", func(c tele.Context) error {
		records, err := dashboard.GetLeaderboard(context.Background(), false)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching leaderboard: %v", err))
		}
		var sb strings.Builder
		sb.WriteString("Collection leaderboard\n")
		for i, r := range records {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&sb, "%d. %s: floor %.2f SEI, 24h vol %.0f\n",
				r.Rank, domain.DisplayName(domain.NormalizeSlug(r.Slug)), r.FloorPrice, r.DayVolume)
		}
		if len(records) == 0 {
			sb.WriteString("(empty)")
		}
		return c.Send(sb.String())
	})

	b.Handle("/ask", func(c tele.Context) error {
		if advisor == nil {
			return c.Send("The advisor is not configured.")
		}
		question := strings.TrimSpace(strings.Join(c.Args(), " "))
		if question == "" {
			return c.Send("Usage: /ask which collection had the strongest day?")
		}
		answer, err := advisor.Ask(context.Background(), c.Chat().ID, question)
		if err != nil {
			return c.Send(fmt.Sprintf("Advisor error: %v", err))
		}
		return c.Send(answer)
	})

	log.Println("Telegram bot started")
	go b.Start()
}
