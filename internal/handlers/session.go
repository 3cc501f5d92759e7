package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/grading"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/requestdata"
	"github.com/hagwonlab/academy-backend/internal/services"
)

type SessionHandler struct {
	log        *logger.Logger
	sessionSvc services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessionSvc services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:        log.With("handler", "SessionHandler"),
		sessionSvc: sessionSvc,
	}
}

// POST /api/exams/:id/start
func (h *SessionHandler) Start(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, apperr.CodeUnauthorized, apperr.ErrUnauthorized)
		return
	}
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	assignment, err := h.sessionSvc.Start(c.Request.Context(), examID, rd.UserID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, assignment)
}

// POST /api/exams/:id/submit
func (h *SessionHandler) Submit(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, apperr.CodeUnauthorized, apperr.ErrUnauthorized)
		return
	}
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	var req struct {
		Answers          []grading.Answer `json:"answers"`
		TimeSpentSeconds int              `json:"time_spent_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	submission, err := h.sessionSvc.Submit(c.Request.Context(), examID, rd.UserID, req.Answers, req.TimeSpentSeconds)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, submission)
}

// POST /api/assignments/:id/cancel
func (h *SessionHandler) Cancel(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.sessionSvc.Cancel(c.Request.Context(), assignmentID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"cancelled": true})
}
