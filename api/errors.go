package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, Code: code})
}

// writeError maps domain and binding errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		code := "invalid_field"
		if errors.Is(verr.Kind, domain.ErrRangeViolation) {
			code = "range_violation"
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error(), Code: code, Fields: verr.Fields})
		return
	}

	var bindErrs validator.ValidationErrors
	if errors.As(err, &bindErrs) {
		fields := make(map[string]string, len(bindErrs))
		for _, fe := range bindErrs {
			fields[fe.Field()] = bindingMessage(fe)
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request", Code: "invalid_field", Fields: fields})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_field"})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found", Code: "not_found"})
	case errors.Is(err, domain.ErrDuplicateSeat):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "seat is already taken on this flight", Code: "duplicate_seat"})
	case errors.Is(err, domain.ErrSeatBusy):
		c.JSON(http.StatusConflict, errorResponse{Error: "seat is being booked right now, try again", Code: "seat_busy"})
	case errors.Is(err, domain.ErrReferenceNotFound):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "referenced object does not exist", Code: "reference_not_found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "object with this value already exists", Code: "already_exists"})
	case errors.Is(err, domain.ErrInvalidField):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_field"})
	case errors.Is(err, media.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_image"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "no active account found with the given credentials", Code: "invalid_credentials"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal_error"})
	}
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "airportcode":
		return "ensure this field has exactly 3 letters"
	case "min", "gte":
		return "ensure this value is at least " + fe.Param()
	case "max", "lte":
		return "ensure this value is at most " + fe.Param()
	case "email":
		return "enter a valid email address"
	}
	return "invalid value"
}
