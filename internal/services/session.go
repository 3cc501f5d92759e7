package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/grading"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
	"github.com/hagwonlab/academy-backend/internal/types"
)

// SessionService drives the assignment lifecycle:
// scheduled -> ongoing -> completed, with cancelled reachable only
// through the administrative Cancel. Start is idempotent; Submit is
// once-only.
type SessionService interface {
	Start(ctx context.Context, examID, studentID uuid.UUID) (*types.Assignment, error)
	Submit(ctx context.Context, examID, studentID uuid.UUID, answers []grading.Answer, timeSpentSeconds int) (*types.Submission, error)
	Cancel(ctx context.Context, assignmentID uuid.UUID) error
}

type sessionService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	clock                Clock
	engine               *grading.Engine
	assignmentRepo       repos.AssignmentRepo
	examQuestionRepo     repos.ExamQuestionRepo
	questionRepo         repos.QuestionRepo
	submissionRepo       repos.SubmissionRepo
	submissionAnswerRepo repos.SubmissionAnswerRepo
	wrongNoteRepo        repos.WrongNoteRepo
}

func NewSessionService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	engine *grading.Engine,
	assignmentRepo repos.AssignmentRepo,
	examQuestionRepo repos.ExamQuestionRepo,
	questionRepo repos.QuestionRepo,
	submissionRepo repos.SubmissionRepo,
	submissionAnswerRepo repos.SubmissionAnswerRepo,
	wrongNoteRepo repos.WrongNoteRepo,
) SessionService {
	serviceLog := log.With("service", "SessionService")
	return &sessionService{
		db:                   db,
		log:                  serviceLog,
		clock:                clock,
		engine:               engine,
		assignmentRepo:       assignmentRepo,
		examQuestionRepo:     examQuestionRepo,
		questionRepo:         questionRepo,
		submissionRepo:       submissionRepo,
		submissionAnswerRepo: submissionAnswerRepo,
		wrongNoteRepo:        wrongNoteRepo,
	}
}

func (s *sessionService) Start(ctx context.Context, examID, studentID uuid.UUID) (*types.Assignment, error) {
	if examID == uuid.Nil || studentID == uuid.Nil {
		return nil, fmt.Errorf("exam id and student id required: %w", apperr.ErrInvalidArgument)
	}

	assignment, err := s.assignmentRepo.GetActiveByExamAndStudent(ctx, nil, examID, studentID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("no assignment for student %s on exam %s: %w", studentID, examID, apperr.ErrUnauthorized)
	}

	switch assignment.Status {
	case types.AssignmentOngoing:
		// Double-start is a success, not an error.
		return assignment, nil
	case types.AssignmentCompleted:
		return nil, fmt.Errorf("assignment %s already completed: %w", assignment.ID, apperr.ErrStateConflict)
	case types.AssignmentCancelled:
		return nil, fmt.Errorf("assignment %s cancelled: %w", assignment.ID, apperr.ErrStateConflict)
	}

	now := s.clock.Now()
	if !now.Before(assignment.EndTime) {
		return nil, fmt.Errorf("assignment %s window closed at %s: %w", assignment.ID, assignment.EndTime, apperr.ErrExpired)
	}

	changed, err := s.assignmentRepo.TransitionStatus(ctx, nil, assignment.ID,
		[]string{types.AssignmentScheduled}, types.AssignmentOngoing, &now)
	if err != nil {
		return nil, fmt.Errorf("Failed to start session: %w", err)
	}
	if !changed {
		// Lost a race with a concurrent start; re-read and accept the
		// ongoing state if that is what won.
		current, rErr := s.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignment.ID})
		if rErr != nil {
			return nil, fmt.Errorf("Failed to reload assignment: %w", rErr)
		}
		if len(current) == 1 && current[0].Status == types.AssignmentOngoing {
			return current[0], nil
		}
		return nil, fmt.Errorf("assignment %s not startable: %w", assignment.ID, apperr.ErrStateConflict)
	}

	assignment.Status = types.AssignmentOngoing
	assignment.StartedAt = &now
	s.log.Info("Session started", "assignment_id", assignment.ID, "exam_id", examID, "student_id", studentID)
	return assignment, nil
}

func (s *sessionService) Submit(ctx context.Context, examID, studentID uuid.UUID, answers []grading.Answer, timeSpentSeconds int) (*types.Submission, error) {
	if examID == uuid.Nil || studentID == uuid.Nil {
		return nil, fmt.Errorf("exam id and student id required: %w", apperr.ErrInvalidArgument)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answer set is empty: %w", apperr.ErrInvalidArgument)
	}

	assignment, err := s.assignmentRepo.GetActiveByExamAndStudent(ctx, nil, examID, studentID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("no assignment for student %s on exam %s: %w", studentID, examID, apperr.ErrUnauthorized)
	}

	switch assignment.Status {
	case types.AssignmentCompleted:
		return nil, fmt.Errorf("assignment %s: %w", assignment.ID, apperr.ErrAlreadySubmitted)
	case types.AssignmentCancelled:
		return nil, fmt.Errorf("assignment %s cancelled: %w", assignment.ID, apperr.ErrStateConflict)
	}

	now := s.clock.Now()
	if !now.Before(assignment.EndTime) {
		return nil, fmt.Errorf("assignment %s window closed at %s: %w", assignment.ID, assignment.EndTime, apperr.ErrExpired)
	}

	key, err := s.loadAnswerKey(ctx, examID)
	if err != nil {
		return nil, err
	}

	summary := s.engine.Grade(key, answers)

	submission := &types.Submission{
		ID:               uuid.New(),
		AssignmentID:     assignment.ID,
		ExamID:           examID,
		StudentID:        studentID,
		Score:            summary.Score,
		MaxScore:         summary.MaxScore,
		Percentage:       summary.Percentage,
		CorrectCount:     summary.CorrectCount,
		WrongCount:       summary.WrongCount,
		TotalCount:       summary.TotalCount,
		TimeSpentSeconds: timeSpentSeconds,
		CompletedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changed, tErr := s.assignmentRepo.TransitionStatus(ctx, tx, assignment.ID,
			[]string{types.AssignmentScheduled, types.AssignmentOngoing}, types.AssignmentCompleted, nil)
		if tErr != nil {
			return fmt.Errorf("Failed to complete assignment: %w", tErr)
		}
		if !changed {
			return fmt.Errorf("assignment %s: %w", assignment.ID, apperr.ErrAlreadySubmitted)
		}

		if _, cErr := s.submissionRepo.Create(ctx, tx, []*types.Submission{submission}); cErr != nil {
			return fmt.Errorf("Failed to create submission: %w", cErr)
		}

		answerRows := make([]*types.SubmissionAnswer, 0, len(summary.Results))
		for _, res := range summary.Results {
			answerRows = append(answerRows, &types.SubmissionAnswer{
				ID:            uuid.New(),
				SubmissionID:  submission.ID,
				QuestionID:    res.QuestionID,
				OrderIndex:    res.OrderIndex,
				StudentAnswer: res.StudentAnswer,
				CorrectAnswer: res.CorrectAnswer,
				IsCorrect:     res.IsCorrect,
				NeedsManual:   res.NeedsManual,
				EarnedPoints:  res.EarnedPoints,
				MaxPoints:     res.MaxPoints,
			})
		}
		if _, cErr := s.submissionAnswerRepo.Create(ctx, tx, answerRows); cErr != nil {
			return fmt.Errorf("Failed to create submission answers: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The score is committed; wrong-note bookkeeping must never undo
	// or mask it. Failures here are logged and swallowed.
	s.deriveWrongNotes(ctx, assignment, summary)

	s.log.Info("Session submitted",
		"assignment_id", assignment.ID,
		"exam_id", examID,
		"student_id", studentID,
		"score", summary.Score,
		"max_score", summary.MaxScore)
	return submission, nil
}

func (s *sessionService) Cancel(ctx context.Context, assignmentID uuid.UUID) error {
	if assignmentID == uuid.Nil {
		return fmt.Errorf("assignment id required: %w", apperr.ErrInvalidArgument)
	}
	assignments, err := s.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return fmt.Errorf("Failed to load assignment: %w", err)
	}
	if len(assignments) == 0 {
		return fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrNotFound)
	}
	if err := s.assignmentRepo.UpdateStatusByIDs(ctx, nil, []uuid.UUID{assignmentID}, types.AssignmentCancelled); err != nil {
		return fmt.Errorf("Failed to cancel assignment: %w", err)
	}
	return nil
}

// loadAnswerKey joins exam_question rows with their questions; the
// per-exam points override is authoritative, the question record
// supplies type and correct answer.
func (s *sessionService) loadAnswerKey(ctx context.Context, examID uuid.UUID) ([]grading.KeyItem, error) {
	examQuestions, err := s.examQuestionRepo.GetByExamIDs(ctx, nil, []uuid.UUID{examID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load exam questions: %w", err)
	}
	if len(examQuestions) == 0 {
		return nil, fmt.Errorf("exam %s has no questions: %w", examID, apperr.ErrNotFound)
	}

	questionIDs := make([]uuid.UUID, 0, len(examQuestions))
	for _, eq := range examQuestions {
		questionIDs = append(questionIDs, eq.QuestionID)
	}
	questions, err := s.questionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load questions: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	key := make([]grading.KeyItem, 0, len(examQuestions))
	for _, eq := range examQuestions {
		q, ok := byID[eq.QuestionID]
		if !ok {
			// Question was soft-deleted after composition; it still
			// counts toward the key with whatever the override says.
			s.log.Warn("Exam question missing from catalog", "exam_id", examID, "question_id", eq.QuestionID)
			continue
		}
		key = append(key, grading.KeyItem{
			QuestionID:    q.ID,
			Type:          q.Type,
			CorrectAnswer: q.CorrectAnswer,
			Points:        eq.Points,
			OrderIndex:    eq.OrderIndex,
		})
	}
	return key, nil
}

func (s *sessionService) deriveWrongNotes(ctx context.Context, assignment *types.Assignment, summary grading.Summary) {
	now := s.clock.Now()
	notes := make([]*types.WrongNote, 0, summary.WrongCount)
	for _, res := range summary.Results {
		if res.IsCorrect || res.NeedsManual {
			continue
		}
		if strings.TrimSpace(res.StudentAnswer) == "" {
			continue
		}
		if res.MaxPoints == 0 && res.CorrectAnswer == "" {
			// Answer to a question outside the exam; nothing to review.
			continue
		}
		notes = append(notes, &types.WrongNote{
			ID:            uuid.New(),
			StudentID:     assignment.StudentID,
			QuestionID:    res.QuestionID,
			ExamID:        assignment.ExamID,
			AssignmentID:  assignment.ID,
			StudentAnswer: res.StudentAnswer,
			WrongAt:       now,
		})
	}
	if len(notes) == 0 {
		return
	}
	if _, err := s.wrongNoteRepo.Create(ctx, nil, notes); err != nil {
		s.log.Warn("Failed to record wrong notes",
			"assignment_id", assignment.ID,
			"student_id", assignment.StudentID,
			"count", len(notes),
			"error", err)
	}
}
