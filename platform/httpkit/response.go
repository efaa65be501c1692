// Package httpkit holds the gin helpers shared by every module: responses,
// error mapping, middleware and auth. It contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"course_portal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// CodeInvalidRequest is returned when a body, query or path cannot be parsed.
const CodeInvalidRequest = "INVALID_REQUEST"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// BadRequest aborts with 400 for input that never reached validation.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidRequest})
}

// HandleError writes err and reports whether there was one. *apperr.Error
// values keep their kind, code and details; anything else becomes a 500 and
// is attached to the gin context for the request logger.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		if domainErr.Kind == apperr.KindInternal {
			_ = c.Error(err)
		}
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Code:    domainErr.Code,
			Details: domainErr.Details,
		})
		return true
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	return true
}
