package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/hagwonlab/academy-backend/internal/handlers"
	"github.com/hagwonlab/academy-backend/internal/middleware"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	QuestionHandler   *handlers.QuestionHandler
	ExamHandler       *handlers.ExamHandler
	ClassroomHandler  *handlers.ClassroomHandler
	AssignmentHandler *handlers.AssignmentHandler
	SessionHandler    *handlers.SessionHandler
	ReviewHandler     *handlers.ReviewHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("academy-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	staff := cfg.AuthMiddleware.RequireRole(types.RoleTeacher, types.RoleAdmin)

	// Question catalog
	api.POST("/questions", staff, cfg.QuestionHandler.Create)
	api.GET("/questions", staff, cfg.QuestionHandler.List)
	api.DELETE("/questions/:id", staff, cfg.QuestionHandler.Delete)

	// Exams
	api.POST("/exams", staff, cfg.ExamHandler.Create)
	api.GET("/exams", cfg.ExamHandler.List)
	api.GET("/exams/:id", cfg.ExamHandler.Get)
	api.DELETE("/exams/:id", staff, cfg.ExamHandler.Delete)

	// Classes
	api.POST("/classes", staff, cfg.ClassroomHandler.Create)
	api.DELETE("/classes/:id", staff, cfg.ClassroomHandler.Delete)
	api.POST("/classes/:id/students", staff, cfg.ClassroomHandler.Enroll)
	api.GET("/classes/:id/students", staff, cfg.ClassroomHandler.ListStudents)
	api.DELETE("/classes/:id/students/:studentId", staff, cfg.ClassroomHandler.Unenroll)

	// Assignments
	api.POST("/exams/:id/assign", staff, cfg.AssignmentHandler.Assign)
	api.GET("/assignments", cfg.AssignmentHandler.ListMine)
	api.POST("/assignments/:id/cancel", staff, cfg.SessionHandler.Cancel)

	// Exam sessions
	api.POST("/exams/:id/start", cfg.SessionHandler.Start)
	api.POST("/exams/:id/submit", cfg.SessionHandler.Submit)

	// Wrong-note review
	api.GET("/review/queue", cfg.ReviewHandler.GetQueue)
	api.POST("/review/questions/:questionId/reviewed", cfg.ReviewHandler.MarkReviewed)
	api.POST("/review/questions/:questionId/mastered", cfg.ReviewHandler.MarkMastered)

	return router
}
