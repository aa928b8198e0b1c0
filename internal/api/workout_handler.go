package api

import (
	"net/http"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/metrics"
	"github.com/escartian/FitByte/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves workout templates and the session/history endpoints.
type WorkoutHandler struct {
	workoutService    service.WorkoutService
	completionService service.CompletionService
	metrics           *metrics.Manager
}

func NewWorkoutHandler(workoutService service.WorkoutService, completionService service.CompletionService, metricsManager *metrics.Manager) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:    workoutService,
		completionService: completionService,
		metrics:           metricsManager,
	}
}

// --- Request Structs ---

type WorkoutRequest struct {
	Name      string                 `json:"name"`
	Exercises []domain.ExerciseEntry `json:"exercises"`
}

type FinishWorkoutRequest struct {
	WorkoutRequest
	SaveAsTemplate bool `json:"saveAsTemplate"`
}

type CompletedWorkoutRequest struct {
	UserID      string `json:"userId" binding:"required"`
	WorkoutName string `json:"workoutName"`
	WorkoutID   string `json:"workoutId" binding:"required"`
}

func (r WorkoutRequest) input() service.WorkoutInput {
	return service.WorkoutInput{Name: r.Name, Exercises: r.Exercises}
}

// sessionUserID is nil for anonymous callers.
func sessionUserID(c *gin.Context) *primitive.ObjectID {
	session, ok := getSession(c)
	if !ok {
		return nil
	}
	id := session.ID
	return &id
}

// --- Handler Methods ---

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), sessionUserID(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) FinishWorkout(c *gin.Context) {
	var req FinishWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.workoutService.FinishWorkout(c.Request.Context(), sessionUserID(c), req.input(), req.SaveAsTemplate)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.CounterCompletedWorkouts.Inc()
	c.JSON(http.StatusCreated, res)
}

// ListWorkouts handles GET /workouts?sort=name|date&sortOrder=asc|desc
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListVisible(c.Request.Context(), sessionUserID(c), c.Query("sort"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts, "count": len(workouts)})
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workout, err := h.workoutService.GetByID(c.Request.Context(), sessionUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// RecordCompletion adds a workout reference to the session user's history.
func (h *WorkoutHandler) RecordCompletion(c *gin.Context) {
	var req CompletedWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "userId and workoutId are required")
		return
	}

	session, _ := getSession(c)
	if req.UserID != session.ID.Hex() {
		respondError(c, service.ErrUnauthorized)
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "workoutId is not a valid identifier")
		return
	}

	user, err := h.completionService.RecordCompletion(c.Request.Context(), session.ID, req.WorkoutName, workoutID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.CounterCompletedWorkouts.Inc()
	c.JSON(http.StatusOK, UserResponse{User: user})
}

func (h *WorkoutHandler) History(c *gin.Context) {
	session, _ := getSession(c)
	history, err := h.completionService.History(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customWorkouts": history})
}

func (h *WorkoutHandler) RemoveHistoryEntry(c *gin.Context) {
	session, _ := getSession(c)
	user, err := h.completionService.RemoveCompletion(c.Request.Context(), session.ID, c.Param("entryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{User: user})
}
