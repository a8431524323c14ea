package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/service"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
	"github.com/smartschedule/timetable-api/pkg/response"
)

// ScheduleHandler manages schedule endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedule items
// @Tags Schedule
// @Produce json
// @Param day query string false "Filter by day"
// @Param grade query string false "Filter by grade"
// @Param teacher query string false "Filter by teacher"
// @Param room query string false "Filter by room"
// @Param status query string false "Filter by status"
// @Param search query string false "Search subject/teacher/room"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	filter := models.PlacementFilter{
		Day:     c.Query("day"),
		Grade:   c.Query("grade"),
		Teacher: c.Query("teacher"),
		Room:    c.Query("room"),
		Status:  c.Query("status"),
		Search:  c.Query("search"),
	}

	placements, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, placements, nil)
}

// Get godoc
// @Summary Get one schedule item
// @Tags Schedule
// @Produce json
// @Param id path string true "Placement ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	placement, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, placement, nil)
}

// Create godoc
// @Summary Schedule a new class
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.CreatePlacementRequest true "Placement payload"
// @Success 201 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	placement, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, placement)
}

// Update godoc
// @Summary Edit a schedule item
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Placement ID"
// @Param payload body service.UpdatePlacementRequest true "Partial placement payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req service.UpdatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	placement, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, placement, nil)
}

// Delete godoc
// @Summary Remove a schedule item
// @Tags Schedule
// @Produce json
// @Param id path string true "Placement ID"
// @Success 204
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Move godoc
// @Summary Move a schedule item to another grid cell
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Placement ID"
// @Param payload body service.MovePlacementRequest true "Target cell"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/move [post]
func (h *ScheduleHandler) Move(c *gin.Context) {
	var req service.MovePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	placement, err := h.service.Move(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, placement, nil)
}

// Duplicate godoc
// @Summary Duplicate a schedule item into the default slot
// @Tags Schedule
// @Produce json
// @Param id path string true "Placement ID"
// @Success 201 {object} response.Envelope
// @Router /schedule/{id}/duplicate [post]
func (h *ScheduleHandler) Duplicate(c *gin.Context) {
	placement, err := h.service.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, placement)
}

type bulkStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetAllStatus godoc
// @Summary Bulk-set status on every schedule item
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body bulkStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /schedule/status [post]
func (h *ScheduleHandler) SetAllStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	count, err := h.service.SetAllStatus(c.Request.Context(), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": count}, nil)
}
