package job

import (
	"context"
	"log"
	"time"

	"floorboard/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// DashboardReader is the slice of the dashboard service the refresher
// drives. Reading through it keeps the cache warm as a side effect.
type DashboardReader interface {
	GetLeaderboard(ctx context.Context, includeListings bool) ([]domain.EnrichedRecord, error)
	GetCollectionSeries(ctx context.Context, slug string) ([]domain.ChartPoint, error)
}

// SeriesArchiver persists fetched chart points.
type SeriesArchiver interface {
	UpsertPoints(ctx context.Context, slug string, points []domain.ChartPoint) error
}

// Refresher runs background goroutines that keep the leaderboard and
// per-collection caches warm and archive series points to Postgres.
type Refresher struct {
	tracer          trace.Tracer
	dashboard       DashboardReader
	archive         SeriesArchiver
	pollInterval    time.Duration
	includeListings bool
}

func NewRefresher(tracer trace.Tracer, dashboard DashboardReader, archive SeriesArchiver, pollIntervalSecs int, includeListings bool) *Refresher {
	return &Refresher{
		tracer:          tracer,
		dashboard:       dashboard,
		archive:         archive,
		pollInterval:    time.Duration(pollIntervalSecs) * time.Second,
		includeListings: includeListings,
	}
}

// Start launches the background loops. Blocks until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	log.Println("Refresher starting...")

	go r.pollLoop(ctx, "leaderboard", r.pollInterval, func(ctx context.Context) error {
		_, err := r.dashboard.GetLeaderboard(ctx, r.includeListings)
		return err
	})

	// Collections cycle round-robin so a tick touches a few upstream
	// endpoints instead of all twenty at once.
	go r.pollCollections(ctx)

	<-ctx.Done()
	log.Println("Refresher stopped")
}

func (r *Refresher) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	// Run immediately on start
	if err := fn(ctx); err != nil {
		log.Printf("refresher %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("refresher %s error: %v", name, err)
			}
		}
	}
}

func (r *Refresher) pollCollections(ctx context.Context) {
	// Stagger behind the leaderboard loop's first run.
	select {
	case <-ctx.Done():
		return
	case <-time.After(10 * time.Second):
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	slugIndex := 0
	slugsPerTick := 3

	r.archiveBatch(ctx, &slugIndex, slugsPerTick)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.archiveBatch(ctx, &slugIndex, slugsPerTick)
		}
	}
}

func (r *Refresher) archiveBatch(ctx context.Context, slugIndex *int, count int) {
	slugs := domain.CollectionSlugs
	for i := 0; i < count; i++ {
		slug := slugs[*slugIndex%len(slugs)]
		*slugIndex++

		points, err := r.dashboard.GetCollectionSeries(ctx, slug)
		if err != nil {
			log.Printf("series refresh error for %s: %v", slug, err)
			continue
		}
		if r.archive == nil {
			continue
		}
		if err := r.archive.UpsertPoints(ctx, slug, points); err != nil {
			log.Printf("series archive error for %s: %v", slug, err)
		}
	}
}
