package handler

import (
	"github.com/gin-gonic/gin"

	"clindex/internal/service"
)

// StatsHandler handles aggregate statistics endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetOverview handles GET /api/v1/stats
func (h *StatsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statsService.GetOverview(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, overview)
}
