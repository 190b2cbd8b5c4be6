package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"ajurnie/internal/auth"
	"ajurnie/internal/model"
	"ajurnie/internal/service"
)

// GoalHandler handles goal-intake submissions and the admin review flow.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest is the multi-step intake form payload.
type GoalRequest struct {
	UserID             *uint    `json:"user_id"`
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Gender             string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Age                int      `json:"age" validate:"required,gt=0"`
	Height             float64  `json:"height" validate:"required,gt=0"`
	CurrentWeight      float64  `json:"current_weight" validate:"required,gt=0"`
	FitnessGoal        string   `json:"fitness_goal" validate:"required"`
	TargetWeight       *float64 `json:"target_weight"`
	Deadline           string   `json:"deadline"`
	ActivityLevel      string   `json:"activity_level"`
	WorkoutStyle       string   `json:"workout_style"`
	MedicalConditions  string   `json:"medical_conditions"`
	DietaryPreferences []string `json:"dietary_preferences"`
	FoodAllergies      string   `json:"food_allergies"`
}

// PlanStatusRequest toggles the plan-generated marker on a goal.
type PlanStatusRequest struct {
	PlanGenerated bool `json:"plan_generated"`
}

// Create godoc
// @Summary Submit a goal intake form
// @Tags goals
// @Accept json
// @Produce json
// @Param request body GoalRequest true "Goal intake data"
// @Success 201 {object} model.Goal
// @Failure 422 {object} errors.ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	var req GoalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	goal := &model.Goal{
		UserID:             req.UserID,
		Name:               req.Name,
		Email:              req.Email,
		Gender:             req.Gender,
		Age:                req.Age,
		Height:             req.Height,
		CurrentWeight:      req.CurrentWeight,
		FitnessGoal:        req.FitnessGoal,
		TargetWeight:       req.TargetWeight,
		ActivityLevel:      req.ActivityLevel,
		WorkoutStyle:       req.WorkoutStyle,
		MedicalConditions:  req.MedicalConditions,
		DietaryPreferences: model.StringList(req.DietaryPreferences),
		FoodAllergies:      req.FoodAllergies,
	}
	if req.Deadline != "" {
		if deadline, err := time.Parse("2006-01-02", req.Deadline); err == nil {
			goal.Deadline = &deadline
		}
	}

	if err := h.goalService.Create(c.Request().Context(), goal); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, goal)
}

// List godoc
// @Summary List goals visible to the caller
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Filter by user id (admin only)"
// @Success 200 {array} model.Goal
// @Failure 401 {object} errors.ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	var filterUserID *uint
	if raw := c.QueryParam("user_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(parsed)
			filterUserID = &id
		}
	}

	goals, err := h.goalService.List(c.Request().Context(), claims.UserID, filterUserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, goals)
}

// UpdatePlanStatus godoc
// @Summary Mark whether a plan has been generated for a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id}/plan-status [put]
func (h *GoalHandler) UpdatePlanStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req PlanStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.goalService.SetPlanStatus(c.Request().Context(), id, req.PlanGenerated); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "plan status updated successfully",
	})
}
