package handler

import (
	"net/http"
	"strconv"
	"time"

	"floorboard/internal/domain"
	"floorboard/internal/series"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetCollectionChart godoc
// @Summary      Get chart data for a collection
// @Description  Returns the floor/volume series shaped for display. mode=stride thins the raw series, mode=daily keeps the last point of each UTC day.
// @Tags         collections
// @Produce      json
// @Param        slug    path   string  true   "Collection slug"
// @Param        mode    query  string  false  "Shaping mode (stride, daily, raw)"  default(stride)
// @Param        window  query  string  false  "Time window (day, week, month, all)"  default(all)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/collections/{slug}/chart [get]
func (h *Handler) GetCollectionChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-collection-chart")
	defer span.End()

	slug := domain.NormalizeSlug(c.Param("slug"))
	span.SetAttributes(attribute.String("slug", slug))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection slug"})
		return
	}

	mode := c.DefaultQuery("mode", "stride")
	if mode != "stride" && mode != "daily" && mode != "raw" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "unsupported mode: " + mode,
			"supported_modes": []string{"stride", "daily", "raw"},
		})
		return
	}

	window, err := series.ParseWindow(c.Query("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             err.Error(),
			"supported_windows": []string{"day", "week", "month", "all"},
		})
		return
	}

	points, err := h.dashboard.GetCollectionSeries(ctx, slug)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	points = series.FilterWindow(points, window, time.Now())
	switch mode {
	case "stride":
		points = series.Downsample(points)
	case "daily":
		points = series.LastPerDay(points)
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":   slug,
		"mode":   mode,
		"window": window,
		"points": points,
	})
}

// GetCollectionStats godoc
// @Summary      Get summary stats for a collection
// @Description  Returns floor price, floor change, sales, and volume derived from the latest leaderboard
// @Tags         collections
// @Produce      json
// @Param        slug  path  string  true  "Collection slug"
// @Success      200  {object}  domain.CollectionStats
// @Failure      404  {object}  map[string]string
// @Router       /api/collections/{slug}/stats [get]
func (h *Handler) GetCollectionStats(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-collection-stats")
	defer span.End()

	slug := domain.NormalizeSlug(c.Param("slug"))
	span.SetAttributes(attribute.String("slug", slug))

	stats, err := h.dashboard.GetCollectionStats(ctx, slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCollectionListed godoc
// @Summary      Get active listings for a collection
// @Tags         collections
// @Produce      json
// @Param        slug  path  string  true  "Collection slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/collections/{slug}/listed [get]
func (h *Handler) GetCollectionListed(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-collection-listed")
	defer span.End()

	slug := domain.NormalizeSlug(c.Param("slug"))
	span.SetAttributes(attribute.String("slug", slug))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection slug"})
		return
	}

	listed, err := h.dashboard.GetListed(ctx, slug)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": slug, "listed": listed})
}

// GetCollectionHistory godoc
// @Summary      Get archived history for a collection
// @Description  Returns chart points archived in Postgres, independent of upstream retention
// @Tags         collections
// @Produce      json
// @Param        slug   path   string  true   "Collection slug"
// @Param        limit  query  int     false  "Number of points (default 500, max 5000)"  default(500)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/collections/{slug}/history [get]
func (h *Handler) GetCollectionHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-collection-history")
	defer span.End()

	slug := domain.NormalizeSlug(c.Param("slug"))
	span.SetAttributes(attribute.String("slug", slug))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection slug"})
		return
	}
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history archive not configured"})
		return
	}

	limit := 500
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 5000 {
			limit = n
		}
	}

	points, err := h.history.GetPoints(ctx, slug, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": slug, "points": points})
}
