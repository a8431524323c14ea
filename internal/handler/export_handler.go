package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/service"
	"github.com/smartschedule/timetable-api/pkg/response"
)

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Download the schedule as json, csv or pdf
// @Tags Export
// @Produce octet-stream
// @Param format query string false "json | csv | pdf" default(json)
// @Param day query string false "Filter by day"
// @Param teacher query string false "Filter by teacher"
// @Param room query string false "Filter by room"
// @Success 200 {file} binary
// @Router /schedule/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatJSON)
	filter := models.PlacementFilter{
		Day:     c.Query("day"),
		Teacher: c.Query("teacher"),
		Room:    c.Query("room"),
	}

	result, err := h.service.Export(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.FileName)
	c.Data(200, result.ContentType, result.Data)
}
