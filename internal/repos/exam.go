package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type ExamRepo interface {
	Create(ctx context.Context, tx *gorm.DB, exams []*types.Exam) ([]*types.Exam, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) ([]*types.Exam, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Exam, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) error
}

type examRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamRepo(db *gorm.DB, baseLog *logger.Logger) ExamRepo {
	repoLog := baseLog.With("repo", "ExamRepo")
	return &examRepo{db: db, log: repoLog}
}

func (r *examRepo) Create(ctx context.Context, tx *gorm.DB, exams []*types.Exam) ([]*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(exams) == 0 {
		return []*types.Exam{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepo) GetByIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) ([]*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Exam
	if len(examIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", examIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.Exam{})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var results []*types.Exam
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(examIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", examIDs).
		Delete(&types.Exam{}).Error; err != nil {
		return err
	}
	return nil
}
