package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/requestdata"
	"github.com/hagwonlab/academy-backend/internal/services"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type ExamHandler struct {
	log         *logger.Logger
	examSvc     services.ExamService
	deletionSvc services.DeletionService
}

func NewExamHandler(log *logger.Logger, examSvc services.ExamService, deletionSvc services.DeletionService) *ExamHandler {
	return &ExamHandler{
		log:         log.With("handler", "ExamHandler"),
		examSvc:     examSvc,
		deletionSvc: deletionSvc,
	}
}

// POST /api/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var input services.CreateExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		creator := rd.UserID
		input.CreatedBy = &creator
	}
	exam, err := h.examSvc.CreateExam(c.Request.Context(), input)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, exam)
}

// GET /api/exams/:id
// Answer keys are only included for staff callers.
func (h *ExamHandler) Get(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	includeAnswers := false
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		includeAnswers = rd.Role == types.RoleTeacher || rd.Role == types.RoleAdmin
	}
	detail, err := h.examSvc.GetExam(c.Request.Context(), examID, includeAnswers)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, detail)
}

// GET /api/exams?limit=50&offset=0
func (h *ExamHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	exams, err := h.examSvc.ListExams(c.Request.Context(), limit, offset)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"exams": exams})
}

// DELETE /api/exams/:id
// Removes the exam and its whole dependent history.
func (h *ExamHandler) Delete(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	result, err := h.deletionSvc.DeleteExam(c.Request.Context(), examID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}
