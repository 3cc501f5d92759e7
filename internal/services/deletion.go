package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
)

type DeleteExamResult struct {
	DeletedAssignments int `json:"deleted_assignments"`
	DeletedSubmissions int `json:"deleted_submissions"`
}

// DeletionService owns the two removal policies. Exam deletion cascades
// child-before-parent inside one transaction; class deletion removes
// roster rows only, because exam history must outlive the roster.
type DeletionService interface {
	DeleteExam(ctx context.Context, examID uuid.UUID) (*DeleteExamResult, error)
	DeleteClass(ctx context.Context, classID uuid.UUID) error
}

type deletionService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	examRepo             repos.ExamRepo
	examQuestionRepo     repos.ExamQuestionRepo
	assignmentRepo       repos.AssignmentRepo
	submissionRepo       repos.SubmissionRepo
	submissionAnswerRepo repos.SubmissionAnswerRepo
	wrongNoteRepo        repos.WrongNoteRepo
	classRepo            repos.ClassRepo
	enrollmentRepo       repos.EnrollmentRepo
}

func NewDeletionService(
	db *gorm.DB,
	log *logger.Logger,
	examRepo repos.ExamRepo,
	examQuestionRepo repos.ExamQuestionRepo,
	assignmentRepo repos.AssignmentRepo,
	submissionRepo repos.SubmissionRepo,
	submissionAnswerRepo repos.SubmissionAnswerRepo,
	wrongNoteRepo repos.WrongNoteRepo,
	classRepo repos.ClassRepo,
	enrollmentRepo repos.EnrollmentRepo,
) DeletionService {
	serviceLog := log.With("service", "DeletionService")
	return &deletionService{
		db:                   db,
		log:                  serviceLog,
		examRepo:             examRepo,
		examQuestionRepo:     examQuestionRepo,
		assignmentRepo:       assignmentRepo,
		submissionRepo:       submissionRepo,
		submissionAnswerRepo: submissionAnswerRepo,
		wrongNoteRepo:        wrongNoteRepo,
		classRepo:            classRepo,
		enrollmentRepo:       enrollmentRepo,
	}
}

func (s *deletionService) DeleteExam(ctx context.Context, examID uuid.UUID) (*DeleteExamResult, error) {
	if examID == uuid.Nil {
		return nil, fmt.Errorf("exam id required: %w", apperr.ErrInvalidArgument)
	}

	exams, err := s.examRepo.GetByIDs(ctx, nil, []uuid.UUID{examID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load exam: %w", err)
	}
	if len(exams) == 0 {
		return nil, fmt.Errorf("exam %s: %w", examID, apperr.ErrNotFound)
	}

	result := &DeleteExamResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments, aErr := s.assignmentRepo.GetByExamIDs(ctx, tx, []uuid.UUID{examID})
		if aErr != nil {
			return fmt.Errorf("Failed to load assignments: %w", aErr)
		}
		assignmentIDs := make([]uuid.UUID, 0, len(assignments))
		for _, a := range assignments {
			assignmentIDs = append(assignmentIDs, a.ID)
		}

		submissions, sErr := s.submissionRepo.GetByExamIDs(ctx, tx, []uuid.UUID{examID})
		if sErr != nil {
			return fmt.Errorf("Failed to load submissions: %w", sErr)
		}
		submissionIDs := make([]uuid.UUID, 0, len(submissions))
		for _, sub := range submissions {
			submissionIDs = append(submissionIDs, sub.ID)
		}

		// Leaf tables first; a failure anywhere rolls the whole
		// cascade back.
		if err := s.submissionAnswerRepo.FullDeleteBySubmissionIDs(ctx, tx, submissionIDs); err != nil {
			return fmt.Errorf("Failed to delete submission answers: %w", err)
		}
		if err := s.submissionRepo.FullDeleteByIDs(ctx, tx, submissionIDs); err != nil {
			return fmt.Errorf("Failed to delete submissions: %w", err)
		}
		if err := s.wrongNoteRepo.FullDeleteByAssignmentIDs(ctx, tx, assignmentIDs); err != nil {
			return fmt.Errorf("Failed to delete wrong notes: %w", err)
		}
		if err := s.assignmentRepo.FullDeleteByExamIDs(ctx, tx, []uuid.UUID{examID}); err != nil {
			return fmt.Errorf("Failed to delete assignments: %w", err)
		}
		if err := s.examQuestionRepo.FullDeleteByExamIDs(ctx, tx, []uuid.UUID{examID}); err != nil {
			return fmt.Errorf("Failed to delete exam questions: %w", err)
		}
		if err := s.examRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{examID}); err != nil {
			return fmt.Errorf("Failed to delete exam: %w", err)
		}

		result.DeletedAssignments = len(assignmentIDs)
		result.DeletedSubmissions = len(submissionIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Exam deleted",
		"exam_id", examID,
		"deleted_assignments", result.DeletedAssignments,
		"deleted_submissions", result.DeletedSubmissions)
	return result, nil
}

func (s *deletionService) DeleteClass(ctx context.Context, classID uuid.UUID) error {
	if classID == uuid.Nil {
		return fmt.Errorf("class id required: %w", apperr.ErrInvalidArgument)
	}

	classes, err := s.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return fmt.Errorf("Failed to load class: %w", err)
	}
	if len(classes) == 0 {
		return fmt.Errorf("class %s: %w", classID, apperr.ErrNotFound)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Enrollment rows only. Assignments, submissions and wrong
		// notes belonging to the students stay untouched.
		if err := s.enrollmentRepo.FullDeleteByClassIDs(ctx, tx, []uuid.UUID{classID}); err != nil {
			return fmt.Errorf("Failed to delete enrollments: %w", err)
		}
		if err := s.classRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{classID}); err != nil {
			return fmt.Errorf("Failed to delete class: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Class deleted", "class_id", classID)
	return nil
}
