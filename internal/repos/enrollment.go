package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollments []*types.ClassEnrollment) ([]*types.ClassEnrollment, error)
	GetByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.ClassEnrollment, error)
	GetActiveStudentIDsByClass(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error)
	Deactivate(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) error
	FullDeleteByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) error
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.ClassEnrollment) ([]*types.ClassEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(enrollments) == 0 {
		return []*types.ClassEnrollment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepo) GetByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.ClassEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ClassEnrollment
	if len(classIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id IN ?", classIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollmentRepo) GetActiveStudentIDsByClass(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.ClassEnrollment{}).
		Where("class_id = ? AND active = ?", classID, true).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *enrollmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.ClassEnrollment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Update("active", false).Error; err != nil {
		return err
	}
	return nil
}

func (r *enrollmentRepo) FullDeleteByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(classIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("class_id IN ?", classIDs).
		Delete(&types.ClassEnrollment{}).Error; err != nil {
		return err
	}
	return nil
}
