package app

import (
	"github.com/hagwonlab/academy-backend/internal/handlers"
	"github.com/hagwonlab/academy-backend/internal/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Question   *handlers.QuestionHandler
	Exam       *handlers.ExamHandler
	Classroom  *handlers.ClassroomHandler
	Assignment *handlers.AssignmentHandler
	Session    *handlers.SessionHandler
	Review     *handlers.ReviewHandler
}

func wireHandlers(log *logger.Logger, cfg Config, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(s.Auth),
		Question:   handlers.NewQuestionHandler(log, s.Catalog),
		Exam:       handlers.NewExamHandler(log, s.Exam, s.Deletion),
		Classroom:  handlers.NewClassroomHandler(log, s.Classroom, s.Deletion),
		Assignment: handlers.NewAssignmentHandler(log, s.Assignment),
		Session:    handlers.NewSessionHandler(log, s.Session),
		Review:     handlers.NewReviewHandler(log, s.Review, cfg.ReviewDailyCap),
	}
}
