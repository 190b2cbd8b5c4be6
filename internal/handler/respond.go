package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "ajurnie/internal/errors"
)

// bindAndValidate decodes the JSON body and runs struct validation,
// shaping validator failures into the field-level error map clients
// render inline.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make(map[string][]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				name := strings.ToLower(fe.Field())
				fields[name] = append(fields[name], validationMessage(fe))
			}
			return apperrors.NewValidationError(fields)
		}
		return apperrors.NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_FAILED")
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required"
	case "email":
		return "The " + field + " field must be a valid email address"
	case "min":
		return "The " + field + " field must be at least " + fe.Param() + " characters"
	case "oneof":
		return "The " + field + " field must be one of: " + fe.Param()
	default:
		return "The " + field + " field is invalid"
	}
}

// respondError maps a domain error onto the standardized error body.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
