package app

import (
	"github.com/gin-gonic/gin"

	"github.com/hagwonlab/academy-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       h.Auth,
		AuthMiddleware:    m.Auth,
		QuestionHandler:   h.Question,
		ExamHandler:       h.Exam,
		ClassroomHandler:  h.Classroom,
		AssignmentHandler: h.Assignment,
		SessionHandler:    h.Session,
		ReviewHandler:     h.Review,
	})
}
