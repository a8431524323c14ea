package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/pkg/export"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// ExportResult is a rendered schedule document ready to be served.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders the placement list into downloadable documents.
type ExportService struct {
	schedules *ScheduleService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService instantiates ExportService.
func NewExportService(schedules *ScheduleService, csvExporter *export.CSVExporter, pdfExporter *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules: schedules,
		csv:       csvExporter,
		pdf:       pdfExporter,
		logger:    logger,
		now:       time.Now,
	}
}

// Export renders the filtered placement list in the requested format.
func (s *ExportService) Export(ctx context.Context, format string, filter models.PlacementFilter) (*ExportResult, error) {
	placements, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stamp := s.now().UTC().Format("2006-01-02")
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(placements, "", "  ")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("schedule-%s.json", stamp),
			ContentType: "application/json",
			Data:        data,
		}, nil
	case FormatCSV:
		data, err := s.csv.Render(scheduleDataset(placements))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("schedule-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(scheduleDataset(placements), "Weekly Schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("schedule-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func scheduleDataset(placements []models.Placement) export.Dataset {
	headers := []string{"Subject", "Teacher", "Room", "Grade", "Day", "Time", "Duration", "Status", "Students"}
	rows := make([]map[string]string, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, map[string]string{
			"Subject":  p.Subject,
			"Teacher":  p.Teacher,
			"Room":     p.Room,
			"Grade":    p.Grade,
			"Day":      p.Day,
			"Time":     p.Time,
			"Duration": strconv.Itoa(p.Duration),
			"Status":   p.Status,
			"Students": strconv.Itoa(p.StudentCount),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
