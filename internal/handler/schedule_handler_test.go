package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/repository"
	"github.com/smartschedule/timetable-api/internal/service"
	"github.com/smartschedule/timetable-api/pkg/response"
)

type testAPI struct {
	router    *gin.Engine
	conflicts *service.ConflictService
	schedules *service.ScheduleService
}

func newTestAPI(t *testing.T, seed []models.Placement) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewPlacementRepository(seed)
	conflicts := service.NewConflictService(nil, nil, nil, nil)
	schedules := service.NewScheduleService(repo, conflicts, nil, service.ScheduleServiceConfig{
		Days:        []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		TimeSlots:   []string{"08:00", "09:00", "10:00", "11:00"},
		DefaultSlot: "09:00",
	}, nil, nil)
	grid := service.NewGridService(schedules, nil)

	scheduleHandler := NewScheduleHandler(schedules)
	conflictHandler := NewConflictHandler(conflicts)
	gridHandler := NewGridHandler(grid)

	r := gin.New()
	r.GET("/schedule", scheduleHandler.List)
	r.POST("/schedule", scheduleHandler.Create)
	r.POST("/schedule/status", scheduleHandler.SetAllStatus)
	r.GET("/schedule/:id", scheduleHandler.Get)
	r.PATCH("/schedule/:id", scheduleHandler.Update)
	r.DELETE("/schedule/:id", scheduleHandler.Delete)
	r.POST("/schedule/:id/move", scheduleHandler.Move)
	r.POST("/schedule/:id/duplicate", scheduleHandler.Duplicate)
	r.GET("/conflicts", conflictHandler.List)
	r.POST("/grid/pickup", gridHandler.Pickup)
	r.POST("/grid/drop", gridHandler.Drop)

	return &testAPI{router: r, conflicts: conflicts, schedules: schedules}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) {
	t.Helper()
	var envelope response.Envelope
	envelope.Data = data
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
}

func TestScheduleCreateAndGet(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, http.MethodPost, "/schedule", service.CreatePlacementRequest{
		Subject:  "Mathematics",
		Teacher:  "Ms. Johnson",
		Room:     "Room 101",
		Day:      "Monday",
		Time:     "09:00",
		Duration: 60,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Placement
	decodeEnvelope(t, w, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)

	w = api.do(t, http.MethodGet, "/schedule/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Placement
	decodeEnvelope(t, w, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestScheduleCreateRejectsMalformedJSON(t *testing.T) {
	api := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/schedule", bytes.NewBufferString(`{"subject":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleCreateRejectsUnknownDay(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, http.MethodPost, "/schedule", service.CreatePlacementRequest{
		Subject:  "Mathematics",
		Teacher:  "Ms. Johnson",
		Room:     "Room 101",
		Day:      "Saturday",
		Time:     "09:00",
		Duration: 60,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGetUnknownID(t *testing.T) {
	api := newTestAPI(t, nil)
	w := api.do(t, http.MethodGet, "/schedule/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
}

func TestScheduleMoveSurfacesConflict(t *testing.T) {
	seed := []models.Placement{
		{Subject: "Mathematics", Teacher: "Ms. Johnson", Room: "Room 101", Day: "Monday", Time: "09:00", Duration: 60},
		{Subject: "English", Teacher: "Mr. Smith", Room: "Room 101", Day: "Tuesday", Time: "09:00", Duration: 60},
	}
	api := newTestAPI(t, seed)

	w := api.do(t, http.MethodGet, "/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var placements []models.Placement
	decodeEnvelope(t, w, &placements)
	require.Len(t, placements, 2)

	w = api.do(t, http.MethodPost, "/schedule/"+placements[1].ID+"/move", service.MovePlacementRequest{
		Day:  "Monday",
		Time: "09:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/conflicts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var conflicts []models.Conflict
	decodeEnvelope(t, w, &conflicts)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRoomOverlap, conflicts[0].Kind)
}

func TestScheduleDeleteThenRepeatIs404(t *testing.T) {
	seed := []models.Placement{
		{Subject: "Art", Teacher: "Ms. Davis", Room: "Art Studio", Day: "Friday", Time: "11:00", Duration: 60},
	}
	api := newTestAPI(t, seed)

	w := api.do(t, http.MethodGet, "/schedule", nil)
	var placements []models.Placement
	decodeEnvelope(t, w, &placements)
	require.Len(t, placements, 1)

	w = api.do(t, http.MethodDelete, "/schedule/"+placements[0].ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodDelete, "/schedule/"+placements[0].ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleDuplicateEndpoint(t *testing.T) {
	seed := []models.Placement{
		{Subject: "Chemistry", Teacher: "Dr. Brown", Room: "Lab A", Day: "Wednesday", Time: "11:00", Duration: 90},
	}
	api := newTestAPI(t, seed)

	w := api.do(t, http.MethodGet, "/schedule", nil)
	var placements []models.Placement
	decodeEnvelope(t, w, &placements)

	w = api.do(t, http.MethodPost, "/schedule/"+placements[0].ID+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var clone models.Placement
	decodeEnvelope(t, w, &clone)
	assert.NotEqual(t, placements[0].ID, clone.ID)
	assert.Equal(t, "09:00", clone.Time)
}

func TestScheduleBulkStatus(t *testing.T) {
	seed := []models.Placement{
		{Subject: "Math", Teacher: "Ms. Johnson", Room: "Room 101", Day: "Monday", Time: "09:00", Duration: 60},
		{Subject: "Art", Teacher: "Ms. Davis", Room: "Art Studio", Day: "Friday", Time: "11:00", Duration: 60},
	}
	api := newTestAPI(t, seed)

	w := api.do(t, http.MethodPost, "/schedule/status", gin.H{"status": models.StatusCancelled})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Updated int `json:"updated"`
	}
	decodeEnvelope(t, w, &result)
	assert.Equal(t, 2, result.Updated)

	w = api.do(t, http.MethodPost, "/schedule/status", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGridDragEndpoints(t *testing.T) {
	seed := []models.Placement{
		{Subject: "History", Teacher: "Mr. Wilson", Room: "Room 103", Day: "Thursday", Time: "10:00", Duration: 60},
	}
	api := newTestAPI(t, seed)

	w := api.do(t, http.MethodGet, "/schedule", nil)
	var placements []models.Placement
	decodeEnvelope(t, w, &placements)

	w = api.do(t, http.MethodPost, "/grid/pickup", gin.H{"id": placements[0].ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPost, "/grid/drop", gin.H{"day": "Monday", "time": "08:00"})
	require.Equal(t, http.StatusOK, w.Code)

	var moved models.Placement
	decodeEnvelope(t, w, &moved)
	assert.Equal(t, "Monday", moved.Day)
	assert.Equal(t, models.StatusModified, moved.Status)

	// Nothing held any more; a second drop fails.
	w = api.do(t, http.MethodPost, "/grid/drop", gin.H{"day": "Monday", "time": "09:00"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
