package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/service"
)

// ExerciseHandler handles the public exercise library and the admin
// exercise mutations.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new exercise handler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseRequest represents an exercise create/update payload.
type ExerciseRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	MuscleGroup     string   `json:"muscle_group" validate:"required"`
	DifficultyLevel string   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	Equipment       string   `json:"equipment"`
	RecommendedSets int      `json:"recommended_sets"`
	RecommendedReps string   `json:"recommended_reps"`
	Instructions    []string `json:"instructions"`
	ImageURL        string   `json:"image_url"`
	VideoURL        string   `json:"video_url"`
}

func (r *ExerciseRequest) toModel() *model.Exercise {
	return &model.Exercise{
		Name:            r.Name,
		Description:     r.Description,
		MuscleGroup:     r.MuscleGroup,
		DifficultyLevel: r.DifficultyLevel,
		Equipment:       r.Equipment,
		RecommendedSets: r.RecommendedSets,
		RecommendedReps: r.RecommendedReps,
		Instructions:    model.StringList(r.Instructions),
		ImageURL:        r.ImageURL,
		VideoURL:        r.VideoURL,
	}
}

// List godoc
// @Summary List exercises with optional filters
// @Tags exercises
// @Produce json
// @Param search query string false "Name or description search"
// @Param muscle_group query string false "Muscle group"
// @Param difficulty query string false "Difficulty level"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Exercise
// @Router /exercises [get]
func (h *ExerciseHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	exercises, err := h.exerciseService.List(c.Request().Context(), model.ExerciseFilter{
		Search:      c.QueryParam("search"),
		MuscleGroup: c.QueryParam("muscle_group"),
		Difficulty:  c.QueryParam("difficulty"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, exercises)
}

// Get godoc
// @Summary Get a single exercise
// @Tags exercises
// @Produce json
// @Param id path int true "Exercise id"
// @Success 200 {object} model.Exercise
// @Failure 404 {object} errors.ErrorResponse
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	exercise, err := h.exerciseService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, exercise)
}

// Create godoc
// @Summary Create an exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Exercise
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /exercises [post]
func (h *ExerciseHandler) Create(c echo.Context) error {
	var req ExerciseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	exercise := req.toModel()
	if err := h.exerciseService.Create(c.Request().Context(), exercise); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, exercise)
}

// Update godoc
// @Summary Update an exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Success 200 {object} model.Exercise
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ExerciseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	exercise := req.toModel()
	exercise.ID = id
	if err := h.exerciseService.Update(c.Request().Context(), exercise); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, exercise)
}

// Delete godoc
// @Summary Delete an exercise
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.exerciseService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "exercise deleted successfully",
	})
}

// parseID reads the numeric :id path parameter.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewHTTPError(http.StatusBadRequest, "invalid id", "BAD_REQUEST")
	}
	return uint(id), nil
}
