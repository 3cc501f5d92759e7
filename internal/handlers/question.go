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
)

type QuestionHandler struct {
	log        *logger.Logger
	catalogSvc services.CatalogService
}

func NewQuestionHandler(log *logger.Logger, catalogSvc services.CatalogService) *QuestionHandler {
	return &QuestionHandler{
		log:        log.With("handler", "QuestionHandler"),
		catalogSvc: catalogSvc,
	}
}

// POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var input services.CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		creator := rd.UserID
		input.CreatedBy = &creator
	}
	question, err := h.catalogSvc.CreateQuestion(c.Request.Context(), input)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, question)
}

// GET /api/questions?type=mcq&limit=50&offset=0
func (h *QuestionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	questions, err := h.catalogSvc.ListQuestions(c.Request.Context(), c.Query("type"), limit, offset)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

// DELETE /api/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.catalogSvc.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
