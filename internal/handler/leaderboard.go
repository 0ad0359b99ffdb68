package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard godoc
// @Summary      Get the collection leaderboard
// @Description  Returns ranked collections with 24h market stats and, optionally, their active listings
// @Tags         leaderboard
// @Produce      json
// @Param        listings  query  bool  false  "Attach active listings to each record"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/leaderboard [get]
func (h *Handler) GetLeaderboard(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-leaderboard")
	defer span.End()

	includeListings := h.includeListings
	if v := c.Query("listings"); v != "" {
		includeListings = strings.EqualFold(v, "true")
	}

	records, err := h.dashboard.GetLeaderboard(ctx, includeListings)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": records})
}
