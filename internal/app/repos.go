package app

import (
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
)

type Repos struct {
	User             repos.UserRepo
	UserToken        repos.UserTokenRepo
	Class            repos.ClassRepo
	Enrollment       repos.EnrollmentRepo
	Question         repos.QuestionRepo
	Exam             repos.ExamRepo
	ExamQuestion     repos.ExamQuestionRepo
	Assignment       repos.AssignmentRepo
	Submission       repos.SubmissionRepo
	SubmissionAnswer repos.SubmissionAnswerRepo
	WrongNote        repos.WrongNoteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		UserToken:        repos.NewUserTokenRepo(db, log),
		Class:            repos.NewClassRepo(db, log),
		Enrollment:       repos.NewEnrollmentRepo(db, log),
		Question:         repos.NewQuestionRepo(db, log),
		Exam:             repos.NewExamRepo(db, log),
		ExamQuestion:     repos.NewExamQuestionRepo(db, log),
		Assignment:       repos.NewAssignmentRepo(db, log),
		Submission:       repos.NewSubmissionRepo(db, log),
		SubmissionAnswer: repos.NewSubmissionAnswerRepo(db, log),
		WrongNote:        repos.NewWrongNoteRepo(db, log),
	}
}
