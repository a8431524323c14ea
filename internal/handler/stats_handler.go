package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartschedule/timetable-api/internal/service"
	"github.com/smartschedule/timetable-api/pkg/response"
)

// StatsHandler serves the dashboard overview snapshot.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Overview godoc
// @Summary Aggregated schedule statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
