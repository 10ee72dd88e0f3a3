package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/workoutstats/internal/database"
	"github.com/sstent/workoutstats/internal/ingest"
	"github.com/sstent/workoutstats/internal/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ingest.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := ingest.NewService(db, models.AthleteProfile{WeightKG: 75, HeightCM: 180},
		ingest.WithLogger(log.New(io.Discard, "", 0)))

	router := gin.New()
	NewWebHandler(db, svc).RegisterRoutes(router)
	return router, svc
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestCreateWorkout(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodPost, "/api/workouts", `{"workout_type": "RUN", "data": [15000, 1, 75]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Workout database.Workout `json:"workout"`
		Message string           `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Running", resp.Workout.TrainingType)
	assert.Equal(t, "api", resp.Workout.Source)
	assert.Equal(t,
		"Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 797.805.",
		resp.Message)

	rr = do(router, http.MethodGet, "/api/workouts/"+resp.Workout.ID+"/message", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, resp.Message, rr.Body.String())

	rr = do(router, http.MethodGet, "/api/workouts/"+resp.Workout.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail database.Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, []float64{15000, 1, 75}, detail.Readings)
}

func TestCreateWorkoutRejectsBadPackages(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := map[string]string{
		"unknown type":  `{"workout_type": "XYZ", "data": [1, 2, 3]}`,
		"wrong arity":   `{"workout_type": "SWM", "data": [720, 1, 80]}`,
		"bad json":      `{"workout_type": `,
		"zero duration": `{"workout_type": "RUN", "data": [15000, 0, 75]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := do(router, http.MethodPost, "/api/workouts", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}

func TestCreateWorkoutArityReportsExpectedReadings(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodPost, "/api/workouts", `{"workout_type": "WLK", "data": [9000, 1, 75]}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		ExpectedReadings int `json:"expected_readings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.ExpectedReadings)
}

func upload(t *testing.T, router http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := upload(t, router, "batch", "packages:\n  - type: RUN\n    data: [15000, 1, 75]\n  - type: SWM\n    data: [720, 1, 80, 25, 40]\n")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Workouts []database.Workout `json:"workouts"`
		Messages []string           `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Workouts, 2)
	assert.Equal(t, "batch", resp.Workouts[0].Source)
	assert.Contains(t, resp.Messages[1], "Потрачено ккал: 336.000.")
}

func TestUploadRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, upload(t, router, "notes.txt", "hello").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/uploads", "").Code)
}

func TestWorkoutListAndStats(t *testing.T) {
	router, svc := newTestRouter(t)

	for _, pkg := range []models.SensorPackage{
		{WorkoutType: "SWM", Data: []float64{720, 1, 80, 25, 40}},
		{WorkoutType: "RUN", Data: []float64{15000, 1, 75}},
		{WorkoutType: "WLK", Data: []float64{9000, 1, 75, 180}},
	} {
		_, err := svc.Record(pkg)
		require.NoError(t, err)
	}

	rr := do(router, http.MethodGet, "/api/workouts?type=WLK", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var walks []database.Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &walks))
	require.Len(t, walks, 1)
	assert.Equal(t, "SportsWalking", walks[0].TrainingType)

	rr = do(router, http.MethodGet, "/api/workouts?sort=calories&order=desc&limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var top []database.Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &top))
	require.Len(t, top, 2)
	assert.Equal(t, "RUN", top[0].WorkoutType)
	assert.Equal(t, "WLK", top[1].WorkoutType)

	rr = do(router, http.MethodGet, "/api/workouts?min_distance=abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(router, http.MethodGet, "/api/workouts?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stats database.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.ByType["SWM"])
}

func TestWorkoutNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/workouts/missing", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/workouts/missing/message", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/workouts/missing", "").Code)
}

func TestDeleteWorkout(t *testing.T) {
	router, svc := newTestRouter(t)
	w, err := svc.Record(models.SensorPackage{WorkoutType: "RUN", Data: []float64{15000, 1, 75}})
	require.NoError(t, err)

	rr := do(router, http.MethodDelete, "/api/workouts/"+w.ID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/workouts/"+w.ID, "").Code)
}

func TestSyncWithoutSources(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodPost, "/api/sync", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result ingest.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, ingest.Result{}, result)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	do(router, http.MethodPost, "/api/workouts", `{"workout_type": "SWM", "data": [720, 1, 80, 25, 40]}`)

	rr := do(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "workoutstats_workouts_recorded_total")
}
