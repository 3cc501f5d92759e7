package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/requestdata"
	"github.com/hagwonlab/academy-backend/internal/services"
)

type AssignmentHandler struct {
	log           *logger.Logger
	assignmentSvc services.AssignmentService
}

func NewAssignmentHandler(log *logger.Logger, assignmentSvc services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		log:           log.With("handler", "AssignmentHandler"),
		assignmentSvc: assignmentSvc,
	}
}

// POST /api/exams/:id/assign
// Body may carry a class_id to target one roster; omitted means every
// active student.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	var req struct {
		ClassID *uuid.UUID `json:"class_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	created, err := h.assignmentSvc.Assign(c.Request.Context(), examID, req.ClassID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"assigned": created})
}

// GET /api/assignments
// Lists the calling student's assignments.
func (h *AssignmentHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, apperr.CodeUnauthorized, apperr.ErrUnauthorized)
		return
	}
	assignments, err := h.assignmentSvc.ListByStudent(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"assignments": assignments})
}
