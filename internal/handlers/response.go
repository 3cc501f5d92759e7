package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hagwonlab/academy-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError maps the service error taxonomy onto HTTP statuses.
func RespondAppError(c *gin.Context, err error) {
	code := apperr.Code(err)
	status := http.StatusInternalServerError
	switch code {
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeUnauthorized:
		status = http.StatusForbidden
	case apperr.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperr.CodeExpired:
		status = http.StatusGone
	case apperr.CodeAlreadySubmitted, apperr.CodeStateConflict:
		status = http.StatusConflict
	}
	RespondError(c, status, code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
