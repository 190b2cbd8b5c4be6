package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ajurnie/internal/auth"
	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/service"
)

// AccountHandler handles the signed-in account area: profile, coupons,
// calendar, progress and subscription management.
type AccountHandler struct {
	accountService      service.AccountService
	subscriptionService service.SubscriptionService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService, subscriptionService service.SubscriptionService) *AccountHandler {
	return &AccountHandler{
		accountService:      accountService,
		subscriptionService: subscriptionService,
	}
}

// ProfileRequest represents a profile update payload. Absent fields are
// left untouched.
type ProfileRequest struct {
	FullName        *string  `json:"full_name"`
	Role            *string  `json:"role" validate:"omitempty,oneof=novice trainer"`
	Bio             *string  `json:"bio"`
	Specializations []string `json:"specializations"`
	ProfileImageURL *string  `json:"profile_image_url"`
}

// CalendarEventRequest represents a new calendar event.
type CalendarEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	EventType   string `json:"event_type"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time"`
}

// ProgressEntryRequest represents a new progress measurement.
type ProgressEntryRequest struct {
	EntryDate string   `json:"entry_date"`
	Weight    *float64 `json:"weight"`
	BodyFat   *float64 `json:"body_fat"`
	Notes     string   `json:"notes"`
}

// ChangePlanRequest switches the subscription plan.
type ChangePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=basic premium"`
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserProfile
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/profile [put]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := h.accountService.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfileUpdate{
		FullName:        req.FullName,
		Role:            req.Role,
		Bio:             req.Bio,
		Specializations: model.StringList(req.Specializations),
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// Coupons godoc
// @Summary List the current user's unused coupons
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserCoupon
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/coupons [get]
func (h *AccountHandler) Coupons(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	coupons, err := h.accountService.Coupons(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, coupons)
}

// Calendar godoc
// @Summary List the current user's calendar events
// @Tags account
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end_date query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {array} model.CalendarEvent
// @Failure 403 {object} errors.ErrorResponse
// @Router /account/calendar [get]
func (h *AccountHandler) Calendar(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	start := parseTimeParam(c.QueryParam("start_date"))
	end := parseTimeParam(c.QueryParam("end_date"))

	events, err := h.accountService.CalendarEvents(c.Request().Context(), claims.UserID, start, end)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, events)
}

// AddCalendarEvent godoc
// @Summary Add a calendar event
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.CalendarEvent
// @Failure 403 {object} errors.ErrorResponse
// @Router /account/calendar [post]
func (h *AccountHandler) AddCalendarEvent(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	var req CalendarEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	start := parseTimeParam(req.StartTime)
	if start == nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "start_time must be a valid timestamp", "BAD_REQUEST"))
	}

	event := &model.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		StartTime:   *start,
		EndTime:     parseTimeParam(req.EndTime),
	}
	if err := h.accountService.AddCalendarEvent(c.Request().Context(), claims.UserID, event); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, event)
}

// Progress godoc
// @Summary List the current user's progress entries
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProgressEntry
// @Failure 403 {object} errors.ErrorResponse
// @Router /account/progress [get]
func (h *AccountHandler) Progress(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	entries, err := h.accountService.ProgressEntries(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, entries)
}

// AddProgressEntry godoc
// @Summary Log a progress entry
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.ProgressEntry
// @Failure 403 {object} errors.ErrorResponse
// @Router /account/progress [post]
func (h *AccountHandler) AddProgressEntry(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	var req ProgressEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	entry := &model.ProgressEntry{
		Weight:  req.Weight,
		BodyFat: req.BodyFat,
		Notes:   req.Notes,
	}
	if date := parseTimeParam(req.EntryDate); date != nil {
		entry.EntryDate = *date
	}

	if err := h.accountService.AddProgressEntry(c.Request().Context(), claims.UserID, entry); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// Subscription godoc
// @Summary Get the current user's subscription
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Subscription
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/subscription [get]
func (h *AccountHandler) Subscription(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptionService.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, sub)
}

// ChangePlan godoc
// @Summary Switch the subscription plan
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Subscription
// @Failure 400 {object} errors.ErrorResponse
// @Router /account/subscription/change-plan [post]
func (h *AccountHandler) ChangePlan(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	var req ChangePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	sub, err := h.subscriptionService.ChangePlan(c.Request().Context(), claims.UserID, req.Plan)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, sub)
}

// CancelSubscription godoc
// @Summary Cancel the subscription
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Subscription
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/subscription/cancel [post]
func (h *AccountHandler) CancelSubscription(c echo.Context) error {
	claims, err := auth.CurrentClaims(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptionService.Cancel(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, sub)
}

// parseTimeParam accepts RFC 3339 timestamps or bare dates; returns nil
// when the value is empty or unparseable.
func parseTimeParam(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	return nil
}
