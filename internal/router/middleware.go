package router

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"ajurnie/internal/auth"
	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/repository"
)

// JWTMiddleware authenticates bearer tokens. A token must carry a valid
// signature, be unexpired and not sit on the logout denylist.
func JWTMiddleware(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  auth.ContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}

			revoked, err := tokenStore.IsTokenRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, err
			}
			if revoked {
				return nil, errors.New("token revoked")
			}

			return &jwt.Token{Claims: claims, Valid: true}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.NewHTTPError(http.StatusUnauthorized, "invalid or expired token", "UNAUTHORIZED")
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// RequireAdmin gates a route group on membership in the admin table.
// The check runs per request; the is_admin token claim is never trusted
// for authorization.
func RequireAdmin(adminRepo repository.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := auth.CurrentClaims(c)
			if err != nil {
				return err
			}

			isAdmin, err := adminRepo.IsAdmin(c.Request().Context(), claims.UserID)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if !isAdmin {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrAdminRequired)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			return next(c)
		}
	}
}
