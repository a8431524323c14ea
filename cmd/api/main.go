package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/smartschedule/timetable-api/internal/fixtures"
	"github.com/smartschedule/timetable-api/internal/handler"
	"github.com/smartschedule/timetable-api/internal/middleware"
	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/repository"
	"github.com/smartschedule/timetable-api/internal/service"
	"github.com/smartschedule/timetable-api/pkg/config"
	"github.com/smartschedule/timetable-api/pkg/export"
	"github.com/smartschedule/timetable-api/pkg/logger"
	corsmiddleware "github.com/smartschedule/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/smartschedule/timetable-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var seedPlacements []models.Placement
	var seedConflicts []models.Conflict
	if cfg.Seed.Enabled {
		seedPlacements = fixtures.Placements()
		seedConflicts = fixtures.Conflicts()
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	placementRepo := repository.NewPlacementRepository(seedPlacements)
	templateRepo := repository.NewTemplateRepository()

	conflictSvc := service.NewConflictService(seedConflicts, validate, metricsSvc, logr)
	scheduleSvc := service.NewScheduleService(placementRepo, conflictSvc, metricsSvc, service.ScheduleServiceConfig{
		Days:        cfg.Grid.Days,
		TimeSlots:   cfg.Grid.TimeSlots,
		DefaultSlot: cfg.Grid.DefaultSlot,
	}, validate, logr)
	gridSvc := service.NewGridService(scheduleSvc, logr)
	templateSvc := service.NewTemplateService(templateRepo, scheduleSvc, validate, logr)
	statsSvc := service.NewStatsService(scheduleSvc, conflictSvc, len(cfg.Grid.Days)*len(cfg.Grid.TimeSlots), logr)
	exportSvc := service.NewExportService(scheduleSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	// Derive the initial conflict list from the seeded schedule before the
	// first request arrives.
	if items, err := placementRepo.List(context.Background()); err == nil {
		conflictSvc.Refresh(items)
	}

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	conflictHandler := handler.NewConflictHandler(conflictSvc)
	gridHandler := handler.NewGridHandler(gridSvc)
	templateHandler := handler.NewTemplateHandler(templateSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/schedule", scheduleHandler.List)
		api.POST("/schedule", scheduleHandler.Create)
		api.POST("/schedule/status", scheduleHandler.SetAllStatus)
		if cfg.Export.Enabled {
			api.GET("/schedule/export", exportHandler.Export)
		}
		api.GET("/schedule/:id", scheduleHandler.Get)
		api.PATCH("/schedule/:id", scheduleHandler.Update)
		api.DELETE("/schedule/:id", scheduleHandler.Delete)
		api.POST("/schedule/:id/move", scheduleHandler.Move)
		api.POST("/schedule/:id/duplicate", scheduleHandler.Duplicate)

		api.GET("/conflicts", conflictHandler.List)
		api.POST("/conflicts", conflictHandler.Report)
		api.DELETE("/conflicts/:id", conflictHandler.Resolve)

		api.POST("/grid/pickup", gridHandler.Pickup)
		api.GET("/grid/hover", gridHandler.Hover)
		api.POST("/grid/drop", gridHandler.Drop)
		api.POST("/grid/cancel", gridHandler.Cancel)

		api.GET("/templates", templateHandler.List)
		api.POST("/templates", templateHandler.Save)
		api.POST("/templates/:id/load", templateHandler.Load)
		api.DELETE("/templates/:id", templateHandler.Delete)

		api.GET("/stats", statsHandler.Overview)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
