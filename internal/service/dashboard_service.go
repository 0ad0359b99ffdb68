package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"floorboard/internal/cache"
	"floorboard/internal/domain"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Default freshness windows. Leaderboard data moves slower than a
// single collection's chart, so it tolerates a longer window.
const (
	DefaultLeaderboardTTL = 240 * time.Second
	DefaultCollectionTTL  = 120 * time.Second
)

// AnalyticsProvider is the remote analytics API surface the service
// consumes.
type AnalyticsProvider interface {
	FetchLeaderboard(ctx context.Context) ([]domain.LeaderboardRecord, error)
	FetchListed(ctx context.Context, slug string) ([]domain.ListedNFT, error)
	FetchChartSeries(ctx context.Context, slug string) ([]domain.ChartPoint, error)
}

// DashboardService owns the freshness policy: every consumer (HTTP,
// SSH, bot) reads through it, and the TTL decision is made here and
// nowhere else.
type DashboardService struct {
	tracer         trace.Tracer
	provider       AnalyticsProvider
	store          cache.Store
	leaderboardTTL time.Duration
	collectionTTL  time.Duration
	now            func() time.Time
}

func NewDashboardService(tracer trace.Tracer, provider AnalyticsProvider, store cache.Store) *DashboardService {
	return &DashboardService{
		tracer:         tracer,
		provider:       provider,
		store:          store,
		leaderboardTTL: DefaultLeaderboardTTL,
		collectionTTL:  DefaultCollectionTTL,
		now:            time.Now,
	}
}

// SetTTLs overrides the default freshness windows. Zero values keep
// the current setting.
func (s *DashboardService) SetTTLs(leaderboard, collection time.Duration) {
	if leaderboard > 0 {
		s.leaderboardTTL = leaderboard
	}
	if collection > 0 {
		s.collectionTTL = collection
	}
}

// GetLeaderboard returns the enriched leaderboard, serving from cache
// while the entry is fresh. On miss or staleness it fetches the
// leaderboard and, when includeListings is set, the listings feed
// concurrently; both must succeed before anything is cached. A failed
// refresh leaves the previous entry untouched and surfaces the error,
// so callers holding stale data keep showing it.
func (s *DashboardService) GetLeaderboard(ctx context.Context, includeListings bool) ([]domain.EnrichedRecord, error) {
	_, span := s.tracer.Start(ctx, "dashboard.get-leaderboard")
	defer span.End()

	if entry, ok := s.store.Read(ctx, cache.LeaderboardKey); ok && cache.IsValid(entry, s.leaderboardTTL, s.now()) {
		var records []domain.EnrichedRecord
		if err := json.Unmarshal(entry.Data, &records); err == nil {
			return records, nil
		}
		log.Printf("leaderboard cache entry unreadable, refetching: key=%s", cache.LeaderboardKey)
	}

	var (
		leaderboard []domain.LeaderboardRecord
		listed      []domain.ListedNFT
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leaderboard, err = s.provider.FetchLeaderboard(gctx)
		return err
	})
	if includeListings {
		g.Go(func() error {
			var err error
			listed, err = s.provider.FetchListed(gctx, "")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("refresh leaderboard: %w", err)
	}

	records := mergeListings(leaderboard, listed)

	fetchedAt := s.now().UnixMilli()
	if err := s.store.Write(ctx, cache.LeaderboardKey, records, fetchedAt); err != nil {
		log.Printf("leaderboard cache write failed: %v", err)
	}
	return records, nil
}

// GetCollectionSeries returns the chart series for one collection,
// cache-aside on the per-collection key. The slug is normalized here
// so every caller converges on the same cache entry.
func (s *DashboardService) GetCollectionSeries(ctx context.Context, slug string) ([]domain.ChartPoint, error) {
	_, span := s.tracer.Start(ctx, "dashboard.get-collection-series")
	defer span.End()

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return nil, fmt.Errorf("invalid collection slug %q", slug)
	}
	key := cache.CollectionKey(normalized)

	if entry, ok := s.store.Read(ctx, key); ok && cache.IsValid(entry, s.collectionTTL, s.now()) {
		var points []domain.ChartPoint
		if err := json.Unmarshal(entry.Data, &points); err == nil {
			return points, nil
		}
		log.Printf("collection cache entry unreadable, refetching: key=%s", key)
	}

	points, err := s.provider.FetchChartSeries(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("refresh series for %s: %w", normalized, err)
	}

	if err := s.store.Write(ctx, key, points, s.now().UnixMilli()); err != nil {
		log.Printf("collection cache write failed for %s: %v", normalized, err)
	}
	return points, nil
}

// GetCollectionStats derives the summary snapshot for one collection
// from the current leaderboard.
func (s *DashboardService) GetCollectionStats(ctx context.Context, slug string) (*domain.CollectionStats, error) {
	_, span := s.tracer.Start(ctx, "dashboard.get-collection-stats")
	defer span.End()

	normalized := domain.NormalizeSlug(slug)
	records, err := s.GetLeaderboard(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if domain.NormalizeSlug(r.Slug) != normalized {
			continue
		}
		return &domain.CollectionStats{
			Slug:           normalized,
			Name:           domain.DisplayName(normalized),
			Listed:         r.Listed,
			DaySales:       r.DaySales,
			DayVolume:      r.DayVolume,
			FloorPrice:     r.FloorPrice,
			FloorChangePct: r.FloorChangePct(),
			LastUpdated:    r.LastUpdated,
		}, nil
	}
	return nil, fmt.Errorf("collection %s not on leaderboard", normalized)
}

// GetListed returns the active listings for one collection, fetched
// directly; listings churn too fast to be worth a cache namespace of
// their own.
func (s *DashboardService) GetListed(ctx context.Context, slug string) ([]domain.ListedNFT, error) {
	_, span := s.tracer.Start(ctx, "dashboard.get-listed")
	defer span.End()

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return nil, fmt.Errorf("invalid collection slug %q", slug)
	}
	listed, err := s.provider.FetchListed(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if listed == nil {
		listed = []domain.ListedNFT{}
	}
	return listed, nil
}

// mergeListings groups listed items by normalized slug and joins them
// onto the leaderboard, left-outer: every leaderboard record survives
// exactly once, records without listings get an empty slice, and
// listed items matching no record are dropped.
func mergeListings(leaderboard []domain.LeaderboardRecord, listed []domain.ListedNFT) []domain.EnrichedRecord {
	bySlug := make(map[string][]domain.ListedNFT, len(listed))
	for _, n := range listed {
		key := domain.NormalizeSlug(n.Slug)
		bySlug[key] = append(bySlug[key], n)
	}

	records := make([]domain.EnrichedRecord, 0, len(leaderboard))
	for _, r := range leaderboard {
		group := bySlug[domain.NormalizeSlug(r.Slug)]
		if group == nil {
			group = []domain.ListedNFT{}
		}
		records = append(records, domain.EnrichedRecord{
			LeaderboardRecord: r,
			ListedNFTs:        group,
		})
	}
	return records
}
