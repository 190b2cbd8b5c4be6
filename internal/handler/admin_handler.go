package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/service"
)

// AdminHandler handles the admin panel endpoints. Routes using it are
// wrapped by the admin middleware, which re-checks the admin table on
// every request.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AdminUserRequest represents an admin edit of a user profile.
type AdminUserRequest struct {
	Role               *string `json:"role" validate:"omitempty,oneof=novice trainer admin"`
	SubscriptionStatus *string `json:"subscription_status" validate:"omitempty,oneof=trial active canceled none"`
	SubscriptionPlan   *string `json:"subscription_plan"`
	IsFoundingMember   *bool   `json:"is_founding_member"`
}

// CouponRequest represents a new coupon definition.
type CouponRequest struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue float64 `json:"discount_value" validate:"required,gt=0"`
	ExpiresAt     string  `json:"expires_at"`
}

// AssignCouponRequest assigns a coupon to a user.
type AssignCouponRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// Stats godoc
// @Summary Admin dashboard stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Users godoc
// @Summary List all user profiles
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserProfile
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update a user profile
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} model.UserProfile
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AdminUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := h.adminService.UpdateUser(c.Request().Context(), id, service.UserUpdate{
		Role:               req.Role,
		SubscriptionStatus: req.SubscriptionStatus,
		SubscriptionPlan:   req.SubscriptionPlan,
		IsFoundingMember:   req.IsFoundingMember,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// CreateCoupon godoc
// @Summary Create a coupon
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Coupon
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/coupons [post]
func (h *AdminHandler) CreateCoupon(c echo.Context) error {
	var req CouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	in := service.CouponInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
	}
	if req.ExpiresAt != "" {
		expires, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "expires_at must be a date", "BAD_REQUEST"))
		}
		in.ExpiresAt = &expires
	}

	coupon, err := h.adminService.CreateCoupon(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, coupon)
}

// AssignCoupon godoc
// @Summary Assign a coupon to a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coupon id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/coupons/{id}/assign [post]
func (h *AdminHandler) AssignCoupon(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AssignCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.adminService.AssignCoupon(c.Request().Context(), id, req.UserID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "coupon assigned successfully",
	})
}
