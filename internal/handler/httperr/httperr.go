package httperr

import (
	"net/http"

	"bodyshop/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

const internalMessage = "Internal server error"

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Respond aborts with the status matching err's place in the error taxonomy.
func Respond(c *gin.Context, err error) {
	status, msg := Classify(err)
	AbortWithError(c, status, err, msg, nil)
}

// Classify returns the HTTP status and client message for err. Messages of
// expected failures are passed through; anything unclassified is a 500 whose
// details stay in the logs.
func Classify(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errs.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errs.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, err.Error()
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, internalMessage
	}
}
