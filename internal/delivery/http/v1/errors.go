package v1

import (
	"errors"
	"net/http"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
	"github.com/dmehra2102/TaskList/internal/domain"
	"github.com/gin-gonic/gin"
)

type apiError struct {
	Code int
	Body tasksv1.ErrorResponse
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code: code,
		Body: tasksv1.ErrorResponse{Error: message},
	}
}

func (e apiError) Error() string {
	return e.Body.Error
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err.Body)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// mapError classifies an error into its HTTP response. Only validation
// failures expose detail; everything else is opaque.
func mapError(err error) apiError {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return apiError{
			Code: http.StatusBadRequest,
			Body: tasksv1.NewValidationErrorResponse(verr),
		}
	case errors.Is(err, domain.ErrStoreUnavailable):
		return newAPIError(http.StatusServiceUnavailable, "service unavailable")
	default:
		return newAPIError(http.StatusInternalServerError, "internal server error")
	}
}
