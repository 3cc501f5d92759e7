package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type SubmissionAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.SubmissionAnswer) ([]*types.SubmissionAnswer, error)
	GetBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*types.SubmissionAnswer, error)
	FullDeleteBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) error
}

type submissionAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionAnswerRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionAnswerRepo {
	repoLog := baseLog.With("repo", "SubmissionAnswerRepo")
	return &submissionAnswerRepo{db: db, log: repoLog}
}

func (r *submissionAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.SubmissionAnswer) ([]*types.SubmissionAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.SubmissionAnswer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *submissionAnswerRepo) GetBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*types.SubmissionAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SubmissionAnswer
	if len(submissionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Order("submission_id, order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionAnswerRepo) FullDeleteBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(submissionIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("submission_id IN ?", submissionIDs).
		Delete(&types.SubmissionAnswer{}).Error; err != nil {
		return err
	}
	return nil
}
