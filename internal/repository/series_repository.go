package repository

import (
	"context"
	"time"

	"floorboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createSeriesTables = `
CREATE TABLE IF NOT EXISTS collection_points (
    slug               TEXT        NOT NULL,
    observed_at        TIMESTAMPTZ NOT NULL,
    floor              NUMERIC     NOT NULL,
    volume             NUMERIC     NOT NULL,
    average_price_24h  NUMERIC     NOT NULL,
    volume_24h         NUMERIC     NOT NULL,
    PRIMARY KEY (slug, observed_at)
);

CREATE INDEX IF NOT EXISTS idx_collection_points_slug_time
    ON collection_points (slug, observed_at DESC);

CREATE TABLE IF NOT EXISTS conversation_messages (
    id         BIGSERIAL   PRIMARY KEY,
    chat_id    BIGINT      NOT NULL,
    role       TEXT        NOT NULL,
    content    TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_conversation_messages_chat_time
    ON conversation_messages (chat_id, created_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SeriesRepository archives fetched chart points so history survives
// upstream data retention and outages.
type SeriesRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSeriesRepository(pool PgxPool, tracer trace.Tracer) *SeriesRepository {
	return &SeriesRepository{pool: pool, tracer: tracer}
}

func (r *SeriesRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "series-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createSeriesTables)
	return err
}

func (r *SeriesRepository) UpsertPoints(ctx context.Context, slug string, points []domain.ChartPoint) error {
	if len(points) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "series-repo.upsert-points")
	defer span.End()

	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(
			`INSERT INTO collection_points (slug, observed_at, floor, volume, average_price_24h, volume_24h)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (slug, observed_at) DO UPDATE SET
			     floor = EXCLUDED.floor,
			     volume = EXCLUDED.volume,
			     average_price_24h = EXCLUDED.average_price_24h,
			     volume_24h = EXCLUDED.volume_24h`,
			slug, p.Timestamp, p.Floor, p.Volume, p.AveragePrice24h, p.Volume24h,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SeriesRepository) GetPoints(ctx context.Context, slug string, limit int) ([]domain.ChartPoint, error) {
	_, span := r.tracer.Start(ctx, "series-repo.get-points")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT observed_at, floor, volume, average_price_24h, volume_24h
		 FROM collection_points
		 WHERE slug = $1
		 ORDER BY observed_at DESC
		 LIMIT $2`,
		slug, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, err
	}

	// Oldest-first for chart consumers.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

func (r *SeriesRepository) GetPointsInRange(ctx context.Context, slug string, from, to time.Time) ([]domain.ChartPoint, error) {
	_, span := r.tracer.Start(ctx, "series-repo.get-points-in-range")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT observed_at, floor, volume, average_price_24h, volume_24h
		 FROM collection_points
		 WHERE slug = $1 AND observed_at >= $2 AND observed_at <= $3
		 ORDER BY observed_at ASC`,
		slug, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPoints(rows)
}

func scanPoints(rows pgx.Rows) ([]domain.ChartPoint, error) {
	var points []domain.ChartPoint
	for rows.Next() {
		var p domain.ChartPoint
		if err := rows.Scan(&p.Timestamp, &p.Floor, &p.Volume, &p.AveragePrice24h, &p.Volume24h); err != nil {
			return nil, err
		}
		p.Timestamp = p.Timestamp.UTC()
		points = append(points, p)
	}
	return points, rows.Err()
}
