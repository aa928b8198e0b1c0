package api

import (
	"net/http"
	"strconv"

	"github.com/escartian/FitByte/internal/catalog"
	"github.com/escartian/FitByte/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the read-only exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest is the catalog entry form. Enum values are validated by the service.
type CreateExerciseRequest struct {
	Name             string   `json:"name" binding:"required"`
	Force            string   `json:"force"`
	Level            string   `json:"level"`
	Mechanic         string   `json:"mechanic"`
	Equipment        string   `json:"equipment"`
	Category         string   `json:"category"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Description      string   `json:"description"`
}

// ListExercises handles GET /exercises?search=&sort=&sortOrder=&level=&force=&mechanic=&equipment=&category=&muscle=
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	query := service.ExerciseQuery{
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
		SortOrder: c.Query("sortOrder"),
		Filter: catalog.NewExerciseFilter(
			c.Query("level"),
			c.Query("force"),
			c.Query("mechanic"),
			c.Query("equipment"),
			c.Query("category"),
			c.Query("muscle"),
		),
	}

	exercises, err := h.exerciseService.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises, "count": len(exercises)})
}

// CreateExercise adds an entry to the catalog. Names are unique regardless of case.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), service.ExerciseInput{
		Name:             req.Name,
		Force:            req.Force,
		Level:            req.Level,
		Mechanic:         req.Mechanic,
		Equipment:        req.Equipment,
		Category:         req.Category,
		PrimaryMuscles:   req.PrimaryMuscles,
		SecondaryMuscles: req.SecondaryMuscles,
		Instructions:     req.Instructions,
		Description:      req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// ExerciseImage redirects to a temporary object-store URL for the image.
func (h *ExerciseHandler) ExerciseImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "image index must be a number")
		return
	}

	url, err := h.exerciseService.ImageURL(c.Request.Context(), c.Param("name"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *ExerciseHandler) Enums(c *gin.Context) {
	c.JSON(http.StatusOK, h.exerciseService.Enums())
}
