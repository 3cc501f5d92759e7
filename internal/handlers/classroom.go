package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/requestdata"
	"github.com/hagwonlab/academy-backend/internal/services"
)

type ClassroomHandler struct {
	log          *logger.Logger
	classroomSvc services.ClassroomService
	deletionSvc  services.DeletionService
}

func NewClassroomHandler(log *logger.Logger, classroomSvc services.ClassroomService, deletionSvc services.DeletionService) *ClassroomHandler {
	return &ClassroomHandler{
		log:          log.With("handler", "ClassroomHandler"),
		classroomSvc: classroomSvc,
		deletionSvc:  deletionSvc,
	}
}

// POST /api/classes
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Grade string `json:"grade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	var teacherID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		id := rd.UserID
		teacherID = &id
	}
	class, err := h.classroomSvc.CreateClass(c.Request.Context(), req.Name, req.Grade, teacherID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, class)
}

// POST /api/classes/:id/students
func (h *ClassroomHandler) Enroll(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	var req struct {
		StudentID uuid.UUID `json:"student_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.classroomSvc.Enroll(c.Request.Context(), classID, req.StudentID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"enrolled": true})
}

// DELETE /api/classes/:id/students/:studentId
func (h *ClassroomHandler) Unenroll(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.classroomSvc.Unenroll(c.Request.Context(), classID, studentID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"unenrolled": true})
}

// GET /api/classes/:id/students
func (h *ClassroomHandler) ListStudents(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	students, err := h.classroomSvc.ListStudents(c.Request.Context(), classID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"students": students})
}

// DELETE /api/classes/:id
// Unlinks the roster but keeps student assessment history.
func (h *ClassroomHandler) Delete(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.deletionSvc.DeleteClass(c.Request.Context(), classID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
