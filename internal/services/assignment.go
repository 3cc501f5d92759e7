package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type AssignmentService interface {
	// Assign distributes an exam to a class roster (classID set) or to
	// every active student (classID nil), skipping students who already
	// hold a live assignment. Returns how many new assignments were
	// created; an empty target set is a no-op success, not an error.
	Assign(ctx context.Context, examID uuid.UUID, classID *uuid.UUID) (int, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Assignment, error)
}

type assignmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	clock          Clock
	examRepo       repos.ExamRepo
	assignmentRepo repos.AssignmentRepo
	enrollmentRepo repos.EnrollmentRepo
	userRepo       repos.UserRepo
	windowDays     int
}

func NewAssignmentService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	examRepo repos.ExamRepo,
	assignmentRepo repos.AssignmentRepo,
	enrollmentRepo repos.EnrollmentRepo,
	userRepo repos.UserRepo,
	windowDays int,
) AssignmentService {
	serviceLog := log.With("service", "AssignmentService")
	if windowDays <= 0 {
		windowDays = 7
	}
	return &assignmentService{
		db:             db,
		log:            serviceLog,
		clock:          clock,
		examRepo:       examRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		windowDays:     windowDays,
	}
}

func (s *assignmentService) Assign(ctx context.Context, examID uuid.UUID, classID *uuid.UUID) (int, error) {
	if examID == uuid.Nil {
		return 0, fmt.Errorf("exam id required: %w", apperr.ErrInvalidArgument)
	}

	exams, err := s.examRepo.GetByIDs(ctx, nil, []uuid.UUID{examID})
	if err != nil {
		return 0, fmt.Errorf("Failed to load exam: %w", err)
	}
	if len(exams) == 0 {
		return 0, fmt.Errorf("exam %s: %w", examID, apperr.ErrNotFound)
	}

	assigned := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var targets []uuid.UUID
		var tErr error
		if classID != nil {
			targets, tErr = s.enrollmentRepo.GetActiveStudentIDsByClass(ctx, tx, *classID)
		} else {
			targets, tErr = s.userRepo.GetActiveStudentIDs(ctx, tx)
		}
		if tErr != nil {
			return fmt.Errorf("Failed to resolve target students: %w", tErr)
		}

		already, aErr := s.assignmentRepo.GetActiveStudentIDsByExam(ctx, tx, examID)
		if aErr != nil {
			return fmt.Errorf("Failed to load existing assignments: %w", aErr)
		}
		skip := make(map[uuid.UUID]bool, len(already))
		for _, id := range already {
			skip[id] = true
		}

		now := s.clock.Now()
		end := now.Add(time.Duration(s.windowDays) * 24 * time.Hour)

		newAssignments := make([]*types.Assignment, 0, len(targets))
		for _, studentID := range targets {
			if skip[studentID] {
				continue
			}
			skip[studentID] = true
			newAssignments = append(newAssignments, &types.Assignment{
				ID:        uuid.New(),
				ExamID:    examID,
				StudentID: studentID,
				Status:    types.AssignmentScheduled,
				StartTime: now,
				EndTime:   end,
			})
		}
		if len(newAssignments) == 0 {
			return nil
		}
		if _, cErr := s.assignmentRepo.Create(ctx, tx, newAssignments); cErr != nil {
			return fmt.Errorf("Failed to create assignments: %w", cErr)
		}
		assigned = len(newAssignments)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("Exam assigned", "exam_id", examID, "assigned_count", assigned)
	return assigned, nil
}

func (s *assignmentService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Assignment, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", apperr.ErrInvalidArgument)
	}
	return s.assignmentRepo.GetByStudentIDs(ctx, nil, []uuid.UUID{studentID})
}
