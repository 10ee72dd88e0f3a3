package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sstent/workoutstats/internal/database"
	"github.com/sstent/workoutstats/internal/ingest"
	"github.com/sstent/workoutstats/internal/models"
	"github.com/sstent/workoutstats/internal/training"
)

type WebHandler struct {
	db     database.Database
	ingest *ingest.Service
}

func NewWebHandler(db database.Database, ingest *ingest.Service) *WebHandler {
	return &WebHandler{
		db:     db,
		ingest: ingest,
	}
}

// NewRouter builds a gin engine with all routes registered.
func NewRouter(h *WebHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

func (h *WebHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/workouts", h.WorkoutList)
	api.POST("/workouts", h.CreateWorkout)
	api.POST("/uploads", h.Upload)
	api.GET("/workouts/:id", h.WorkoutDetail)
	api.GET("/workouts/:id/message", h.WorkoutMessage)
	api.DELETE("/workouts/:id", h.DeleteWorkout)
	api.GET("/stats", h.Stats)
	api.POST("/sync", h.Sync)
}

func (h *WebHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *WebHandler) WorkoutList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	if limit <= 0 {
		limit = 50
	}

	filters := database.WorkoutFilters{
		WorkoutType: c.Query("type"),
		SortBy:      c.Query("sort"),
		SortOrder:   c.Query("order"),
		Limit:       limit,
		Offset:      offset,
	}
	if v := c.Query("min_distance"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_distance"})
			return
		}
		filters.MinDistance = d
	}
	var err error
	if filters.DateFrom, err = timeParam(c, "from"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	if filters.DateTo, err = timeParam(c, "to"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	workouts, err := h.db.FilterWorkouts(filters)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, workouts)
}

func (h *WebHandler) CreateWorkout(c *gin.Context) {
	var pkg models.SensorPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if pkg.Source == "" {
		pkg.Source = "api"
	}

	workout, err := h.ingest.Record(pkg)
	if err != nil {
		switch {
		case errors.Is(err, training.ErrReadingsArity):
			n, _ := training.Readings(pkg.WorkoutType)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "expected_readings": n})
		case errors.Is(err, training.ErrUnknownWorkoutType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "workout_types": training.WorkoutTypes()})
		case errors.Is(err, ingest.ErrNotStorable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"workout": workout,
		"message": workout.Info().GetMessage(),
	})
}

// Upload ingests a FIT or YAML file sent as the multipart field "file".
func (h *WebHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	workouts, err := h.ingest.IngestData(header.Filename, data)
	if len(workouts) == 0 {
		msg := "no packages found"
		if err != nil {
			msg = err.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	messages := make([]string, 0, len(workouts))
	for i := range workouts {
		messages = append(messages, workouts[i].Info().GetMessage())
	}
	resp := gin.H{"workouts": workouts, "messages": messages}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WebHandler) WorkoutDetail(c *gin.Context) {
	workout, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WebHandler) WorkoutMessage(c *gin.Context) {
	workout, ok := h.lookup(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, workout.Info().GetMessage())
}

func (h *WebHandler) DeleteWorkout(c *gin.Context) {
	if err := h.db.DeleteWorkout(c.Param("id")); err != nil {
		if errors.Is(err, database.ErrWorkoutNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WebHandler) Stats(c *gin.Context) {
	stats, err := h.db.GetStats()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WebHandler) Sync(c *gin.Context) {
	result, err := h.ingest.Sync(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "result": result})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *WebHandler) lookup(c *gin.Context) (*database.Workout, bool) {
	workout, err := h.db.GetWorkout(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrWorkoutNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return nil, false
	}
	return workout, true
}

func timeParam(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
