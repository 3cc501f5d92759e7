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

type ReviewHandler struct {
	log       *logger.Logger
	reviewSvc services.ReviewService
	dailyCap  int
}

func NewReviewHandler(log *logger.Logger, reviewSvc services.ReviewService, dailyCap int) *ReviewHandler {
	return &ReviewHandler{
		log:       log.With("handler", "ReviewHandler"),
		reviewSvc: reviewSvc,
		dailyCap:  dailyCap,
	}
}

// GET /api/review/queue
func (h *ReviewHandler) GetQueue(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, apperr.CodeUnauthorized, apperr.ErrUnauthorized)
		return
	}
	queue, err := h.reviewSvc.GetQueue(c.Request.Context(), rd.UserID, h.dailyCap)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, queue)
}

// POST /api/review/questions/:questionId/reviewed
func (h *ReviewHandler) MarkReviewed(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, apperr.CodeUnauthorized, apperr.ErrUnauthorized)
		return
	}
	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.reviewSvc.MarkReviewed(c.Request.Context(), rd.UserID, questionID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"reviewed": true})
}

// POST /api/review/questions/:questionId/mastered
func (h *ReviewHandler) MarkMastered(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, apperr.CodeUnauthorized, apperr.ErrUnauthorized)
		return
	}
	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apperr.CodeInvalidArgument, err)
		return
	}
	if err := h.reviewSvc.MarkMastered(c.Request.Context(), rd.UserID, questionID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"mastered": true})
}
