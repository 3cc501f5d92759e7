package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type ExamQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, examQuestions []*types.ExamQuestion) ([]*types.ExamQuestion, error)
	GetByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) ([]*types.ExamQuestion, error)
	FullDeleteByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) error
}

type examQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamQuestionRepo(db *gorm.DB, baseLog *logger.Logger) ExamQuestionRepo {
	repoLog := baseLog.With("repo", "ExamQuestionRepo")
	return &examQuestionRepo{db: db, log: repoLog}
}

func (r *examQuestionRepo) Create(ctx context.Context, tx *gorm.DB, examQuestions []*types.ExamQuestion) ([]*types.ExamQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(examQuestions) == 0 {
		return []*types.ExamQuestion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&examQuestions).Error; err != nil {
		return nil, err
	}
	return examQuestions, nil
}

func (r *examQuestionRepo) GetByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) ([]*types.ExamQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ExamQuestion
	if len(examIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("exam_id IN ?", examIDs).
		Order("exam_id, order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examQuestionRepo) FullDeleteByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(examIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("exam_id IN ?", examIDs).
		Delete(&types.ExamQuestion{}).Error; err != nil {
		return err
	}
	return nil
}
