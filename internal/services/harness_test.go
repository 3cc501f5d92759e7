package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/grading"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
	"github.com/hagwonlab/academy-backend/internal/repos/testutil"
)

// harness bundles a live database connection with every repo, so each
// test builds only the service under test. Services manage their own
// transactions, so tests run against the shared connection with
// uuid-fresh fixtures instead of a rolled-back tx.
type harness struct {
	db  *gorm.DB
	log *logger.Logger

	users             repos.UserRepo
	userTokens        repos.UserTokenRepo
	classes           repos.ClassRepo
	enrollments       repos.EnrollmentRepo
	questions         repos.QuestionRepo
	exams             repos.ExamRepo
	examQuestions     repos.ExamQuestionRepo
	assignments       repos.AssignmentRepo
	submissions       repos.SubmissionRepo
	submissionAnswers repos.SubmissionAnswerRepo
	wrongNotes        repos.WrongNoteRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Log(t)
	return &harness{
		db:                gdb,
		log:               log,
		users:             repos.NewUserRepo(gdb, log),
		userTokens:        repos.NewUserTokenRepo(gdb, log),
		classes:           repos.NewClassRepo(gdb, log),
		enrollments:       repos.NewEnrollmentRepo(gdb, log),
		questions:         repos.NewQuestionRepo(gdb, log),
		exams:             repos.NewExamRepo(gdb, log),
		examQuestions:     repos.NewExamQuestionRepo(gdb, log),
		assignments:       repos.NewAssignmentRepo(gdb, log),
		submissions:       repos.NewSubmissionRepo(gdb, log),
		submissionAnswers: repos.NewSubmissionAnswerRepo(gdb, log),
		wrongNotes:        repos.NewWrongNoteRepo(gdb, log),
	}
}

func (h *harness) sessionService(clock Clock) SessionService {
	return NewSessionService(h.db, h.log, clock, grading.NewEngine(),
		h.assignments, h.examQuestions, h.questions, h.submissions, h.submissionAnswers, h.wrongNotes)
}

func (h *harness) assignmentService(clock Clock, windowDays int) AssignmentService {
	return NewAssignmentService(h.db, h.log, clock, h.exams, h.assignments, h.enrollments, h.users, windowDays)
}

func (h *harness) reviewService(clock Clock, cap int) ReviewService {
	return NewReviewService(h.db, h.log, clock, h.wrongNotes, h.questions, nil, cap)
}

func (h *harness) deletionService() DeletionService {
	return NewDeletionService(h.db, h.log, h.exams, h.examQuestions, h.assignments,
		h.submissions, h.submissionAnswers, h.wrongNotes, h.classes, h.enrollments)
}

func fixedClock(t time.Time) Clock { return FixedClock{T: t} }
