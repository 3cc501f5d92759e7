package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
	"github.com/hagwonlab/academy-backend/internal/types"
)

// ClassroomService manages class rosters. The assessment core only
// reads from it (enrollment resolution for bulk assignment).
type ClassroomService interface {
	CreateClass(ctx context.Context, name, grade string, teacherID *uuid.UUID) (*types.Class, error)
	Enroll(ctx context.Context, classID, studentID uuid.UUID) error
	Unenroll(ctx context.Context, classID, studentID uuid.UUID) error
	ListStudents(ctx context.Context, classID uuid.UUID) ([]*types.User, error)
}

type classroomService struct {
	db             *gorm.DB
	log            *logger.Logger
	classRepo      repos.ClassRepo
	enrollmentRepo repos.EnrollmentRepo
	userRepo       repos.UserRepo
}

func NewClassroomService(
	db *gorm.DB,
	log *logger.Logger,
	classRepo repos.ClassRepo,
	enrollmentRepo repos.EnrollmentRepo,
	userRepo repos.UserRepo,
) ClassroomService {
	serviceLog := log.With("service", "ClassroomService")
	return &classroomService{
		db:             db,
		log:            serviceLog,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

func (s *classroomService) CreateClass(ctx context.Context, name, grade string, teacherID *uuid.UUID) (*types.Class, error) {
	if name == "" {
		return nil, fmt.Errorf("class name required: %w", apperr.ErrInvalidArgument)
	}
	class := &types.Class{
		ID:        uuid.New(),
		Name:      name,
		Grade:     grade,
		TeacherID: teacherID,
	}
	if _, err := s.classRepo.Create(ctx, nil, []*types.Class{class}); err != nil {
		return nil, fmt.Errorf("Failed to create class: %w", err)
	}
	return class, nil
}

func (s *classroomService) Enroll(ctx context.Context, classID, studentID uuid.UUID) error {
	if classID == uuid.Nil || studentID == uuid.Nil {
		return fmt.Errorf("class id and student id required: %w", apperr.ErrInvalidArgument)
	}
	classes, err := s.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return fmt.Errorf("Failed to load class: %w", err)
	}
	if len(classes) == 0 {
		return fmt.Errorf("class %s: %w", classID, apperr.ErrNotFound)
	}
	students, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		return fmt.Errorf("Failed to load student: %w", err)
	}
	if len(students) == 0 || students[0].Role != types.RoleStudent {
		return fmt.Errorf("student %s: %w", studentID, apperr.ErrNotFound)
	}

	enrollment := &types.ClassEnrollment{
		ID:        uuid.New(),
		ClassID:   classID,
		StudentID: studentID,
		Active:    true,
	}
	if _, err := s.enrollmentRepo.Create(ctx, nil, []*types.ClassEnrollment{enrollment}); err != nil {
		return fmt.Errorf("Failed to enroll student: %w", err)
	}
	return nil
}

func (s *classroomService) Unenroll(ctx context.Context, classID, studentID uuid.UUID) error {
	if classID == uuid.Nil || studentID == uuid.Nil {
		return fmt.Errorf("class id and student id required: %w", apperr.ErrInvalidArgument)
	}
	if err := s.enrollmentRepo.Deactivate(ctx, nil, classID, studentID); err != nil {
		return fmt.Errorf("Failed to unenroll student: %w", err)
	}
	return nil
}

func (s *classroomService) ListStudents(ctx context.Context, classID uuid.UUID) ([]*types.User, error) {
	if classID == uuid.Nil {
		return nil, fmt.Errorf("class id required: %w", apperr.ErrInvalidArgument)
	}
	ids, err := s.enrollmentRepo.GetActiveStudentIDsByClass(ctx, nil, classID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load enrollments: %w", err)
	}
	return s.userRepo.GetByIDs(ctx, nil, ids)
}
