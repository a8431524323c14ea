package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartschedule/timetable-api/internal/service"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
	"github.com/smartschedule/timetable-api/pkg/response"
)

// ConflictHandler exposes the current conflict list and its lifecycle.
type ConflictHandler struct {
	service *service.ConflictService
}

// NewConflictHandler constructs handler.
func NewConflictHandler(svc *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{service: svc}
}

// List godoc
// @Summary List current conflicts
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(), nil)
}

// Report godoc
// @Summary Report an externally-sourced conflict
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body service.ReportConflictRequest true "Conflict payload"
// @Success 201 {object} response.Envelope
// @Router /conflicts [post]
func (h *ConflictHandler) Report(c *gin.Context) {
	var req service.ReportConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	conflict, err := h.service.Report(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, conflict)
}

// Resolve godoc
// @Summary Dismiss a conflict
// @Tags Conflicts
// @Produce json
// @Param id path string true "Conflict ID"
// @Success 204
// @Router /conflicts/{id} [delete]
func (h *ConflictHandler) Resolve(c *gin.Context) {
	if err := h.service.Resolve(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
