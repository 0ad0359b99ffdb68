package handler

import (
	"context"

	"floorboard/internal/domain"
	"floorboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SeriesHistory serves archived chart points from Postgres.
type SeriesHistory interface {
	GetPoints(ctx context.Context, slug string, limit int) ([]domain.ChartPoint, error)
}

type Handler struct {
	tracer          trace.Tracer
	dashboard       *service.DashboardService
	history         SeriesHistory
	includeListings bool
}

func New(tracer trace.Tracer, dashboard *service.DashboardService, history SeriesHistory, includeListings bool) *Handler {
	return &Handler{
		tracer:          tracer,
		dashboard:       dashboard,
		history:         history,
		includeListings: includeListings,
	}
}

// RegisterRoutes wires the API. The middleware chain guards everything
// under /api; /health stays open for probes. Nil entries are skipped.
func (h *Handler) RegisterRoutes(r *gin.Engine, middleware ...gin.HandlerFunc) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	for _, mw := range middleware {
		if mw != nil {
			api.Use(mw)
		}
	}
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/collections/:slug/chart", h.GetCollectionChart)
	api.GET("/collections/:slug/stats", h.GetCollectionStats)
	api.GET("/collections/:slug/listed", h.GetCollectionListed)
	api.GET("/collections/:slug/history", h.GetCollectionHistory)
}
