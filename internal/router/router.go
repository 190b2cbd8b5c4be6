package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"ajurnie/internal/auth"
	"ajurnie/internal/handler"
	"ajurnie/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	adminRepo repository.AdminRepository,
	authHandler *handler.AuthHandler,
	exerciseHandler *handler.ExerciseHandler,
	goalHandler *handler.GoalHandler,
	accountHandler *handler.AccountHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Credential endpoints get a modest per-IP rate limit.
	authLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5),
			Burst:     10,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register, authLimiter)
	api.POST("/auth/login", authHandler.Login, authLimiter)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword, authLimiter)
	api.POST("/auth/reset-password", authHandler.ResetPassword, authLimiter)

	api.GET("/exercises", exerciseHandler.List)
	api.GET("/exercises/:id", exerciseHandler.Get)

	// The intake form is open to visitors without an account.
	api.POST("/goals", goalHandler.Create)

	// Secured routes (require a live, non-revoked session token)
	secured := api.Group("", JWTMiddleware(jwtService, tokenStore))

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/auth/change-password", authHandler.ChangePassword)
	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/goals", goalHandler.List)

	secured.PUT("/account/profile", accountHandler.UpdateProfile)
	secured.GET("/account/coupons", accountHandler.Coupons)
	secured.GET("/account/calendar", accountHandler.Calendar)
	secured.POST("/account/calendar", accountHandler.AddCalendarEvent)
	secured.GET("/account/progress", accountHandler.Progress)
	secured.POST("/account/progress", accountHandler.AddProgressEntry)
	secured.GET("/account/subscription", accountHandler.Subscription)
	secured.POST("/account/subscription/change-plan", accountHandler.ChangePlan)
	secured.POST("/account/subscription/cancel", accountHandler.CancelSubscription)

	// Admin routes re-check the admin table per request.
	admin := secured.Group("", RequireAdmin(adminRepo))

	admin.POST("/exercises", exerciseHandler.Create)
	admin.PUT("/exercises/:id", exerciseHandler.Update)
	admin.DELETE("/exercises/:id", exerciseHandler.Delete)

	admin.PUT("/goals/:id/plan-status", goalHandler.UpdatePlanStatus)

	admin.GET("/admin/stats", adminHandler.Stats)
	admin.GET("/admin/users", adminHandler.Users)
	admin.PUT("/admin/users/:id", adminHandler.UpdateUser)
	admin.POST("/admin/coupons", adminHandler.CreateCoupon)
	admin.POST("/admin/coupons/:id/assign", adminHandler.AssignCoupon)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
