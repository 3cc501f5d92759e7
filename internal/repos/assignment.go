package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type AssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) ([]*types.Assignment, error)
	GetByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) ([]*types.Assignment, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Assignment, error)
	// GetActiveByExamAndStudent returns the single non-cancelled
	// assignment for the pair, or nil when none exists.
	GetActiveByExamAndStudent(ctx context.Context, tx *gorm.DB, examID, studentID uuid.UUID) (*types.Assignment, error)
	// GetActiveStudentIDsByExam lists students already holding a
	// non-cancelled assignment for the exam.
	GetActiveStudentIDsByExam(ctx context.Context, tx *gorm.DB, examID uuid.UUID) ([]uuid.UUID, error)
	// TransitionStatus flips status only when the current value is one
	// of fromStatuses, and reports whether a row actually changed. This
	// is the guard against double-processing concurrent retries.
	TransitionStatus(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID, fromStatuses []string, toStatus string, startedAt *time.Time) (bool, error)
	UpdateStatusByIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID, status string) error
	FullDeleteByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

func (r *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assignments) == 0 {
		return []*types.Assignment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
	if len(assignmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", assignmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) GetByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
	if len(examIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("exam_id IN ?", examIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
	if len(studentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) GetActiveByExamAndStudent(ctx context.Context, tx *gorm.DB, examID, studentID uuid.UUID) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
	if err := transaction.WithContext(ctx).
		Where("exam_id = ? AND student_id = ? AND status <> ?", examID, studentID, types.AssignmentCancelled).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *assignmentRepo) GetActiveStudentIDsByExam(ctx context.Context, tx *gorm.DB, examID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Assignment{}).
		Where("exam_id = ? AND status <> ?", examID, types.AssignmentCancelled).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *assignmentRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID, fromStatuses []string, toStatus string, startedAt *time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]interface{}{"status": toStatus}
	if startedAt != nil {
		updates["started_at"] = *startedAt
	}

	res := transaction.WithContext(ctx).
		Model(&types.Assignment{}).
		Where("id = ? AND status IN ?", assignmentID, fromStatuses).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *assignmentRepo) UpdateStatusByIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assignmentIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Assignment{}).
		Where("id IN ?", assignmentIDs).
		Update("status", status).Error; err != nil {
		return err
	}
	return nil
}

func (r *assignmentRepo) FullDeleteByExamIDs(ctx context.Context, tx *gorm.DB, examIDs []uuid.UUID) error {
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
		Delete(&types.Assignment{}).Error; err != nil {
		return err
	}
	return nil
}
