package app

import (
	"gorm.io/gorm"

	redisclient "github.com/hagwonlab/academy-backend/internal/clients/redis"
	"github.com/hagwonlab/academy-backend/internal/grading"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Catalog    services.CatalogService
	Exam       services.ExamService
	Classroom  services.ClassroomService
	Assignment services.AssignmentService
	Session    services.SessionService
	Review     services.ReviewService
	Deletion   services.DeletionService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	clock := services.SystemClock()
	engine := grading.NewEngine()
	engine.PunctuationInsensitive = cfg.PunctuationInsensitive

	counter, err := redisclient.NewReviewCounter(log)
	if err != nil {
		log.Warn("Redis review counter unavailable, counts disabled", "error", err)
		counter = redisclient.NewNoopReviewCounter()
	}

	authService := services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	catalogService := services.NewCatalogService(db, log, r.Question)
	examService := services.NewExamService(db, log, r.Exam, r.ExamQuestion, r.Question)
	classroomService := services.NewClassroomService(db, log, r.Class, r.Enrollment, r.User)
	assignmentService := services.NewAssignmentService(db, log, clock, r.Exam, r.Assignment, r.Enrollment, r.User, cfg.AssignWindowDays)
	sessionService := services.NewSessionService(db, log, clock, engine, r.Assignment, r.ExamQuestion, r.Question, r.Submission, r.SubmissionAnswer, r.WrongNote)
	reviewService := services.NewReviewService(db, log, clock, r.WrongNote, r.Question, counter, cfg.ReviewDailyCap)
	deletionService := services.NewDeletionService(db, log, r.Exam, r.ExamQuestion, r.Assignment, r.Submission, r.SubmissionAnswer, r.WrongNote, r.Class, r.Enrollment)

	return Services{
		Auth:       authService,
		Catalog:    catalogService,
		Exam:       examService,
		Classroom:  classroomService,
		Assignment: assignmentService,
		Session:    sessionService,
		Review:     reviewService,
		Deletion:   deletionService,
	}, nil
}
