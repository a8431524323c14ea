package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartschedule/timetable-api/internal/service"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
	"github.com/smartschedule/timetable-api/pkg/response"
)

// GridHandler binds the drag-and-drop session to HTTP. The admin UI is
// single-user, so one server-side session suffices.
type GridHandler struct {
	service *service.GridService
}

// NewGridHandler constructs handler.
func NewGridHandler(svc *service.GridService) *GridHandler {
	return &GridHandler{service: svc}
}

type pickupRequest struct {
	ID string `json:"id" binding:"required"`
}

type cellRequest struct {
	Day  string `json:"day" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// Pickup godoc
// @Summary Start dragging a schedule item
// @Tags Grid
// @Accept json
// @Produce json
// @Param payload body pickupRequest true "Placement to pick up"
// @Success 200 {object} response.Envelope
// @Router /grid/pickup [post]
func (h *GridHandler) Pickup(c *gin.Context) {
	var req pickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Pickup(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"held": req.ID}, nil)
}

// Hover godoc
// @Summary Check whether a cell is a valid drop target
// @Tags Grid
// @Produce json
// @Param day query string true "Target day"
// @Param time query string true "Target time"
// @Success 200 {object} response.Envelope
// @Router /grid/hover [get]
func (h *GridHandler) Hover(c *gin.Context) {
	valid := h.service.Hover(c.Query("day"), c.Query("time"))
	response.JSON(c, http.StatusOK, gin.H{"valid": valid}, nil)
}

// Drop godoc
// @Summary Drop the held item onto a cell
// @Tags Grid
// @Accept json
// @Produce json
// @Param payload body cellRequest true "Target cell"
// @Success 200 {object} response.Envelope
// @Router /grid/drop [post]
func (h *GridHandler) Drop(c *gin.Context) {
	var req cellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	placement, err := h.service.Drop(c.Request.Context(), req.Day, req.Time)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, placement, nil)
}

// Cancel godoc
// @Summary Abandon the current drag
// @Tags Grid
// @Produce json
// @Success 204
// @Router /grid/cancel [post]
func (h *GridHandler) Cancel(c *gin.Context) {
	h.service.Cancel()
	response.NoContent(c)
}
