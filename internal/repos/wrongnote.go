package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
)

// WrongNoteStat is the read-time aggregation over the append-only note
// log: one row per (student, question) with the derived wrong count.
type WrongNoteStat struct {
	QuestionID  uuid.UUID `gorm:"column:question_id"`
	WrongCount  int       `gorm:"column:wrong_count"`
	LastWrongAt time.Time `gorm:"column:last_wrong_at"`
}

type WrongNoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.WrongNote) ([]*types.WrongNote, error)
	GetByAssignmentIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) ([]*types.WrongNote, error)
	// AggregateUnmastered ranks a student's unmastered notes by derived
	// wrong count (desc), most recent miss breaking ties. limit <= 0
	// means no cap.
	AggregateUnmastered(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, limit int) ([]*WrongNoteStat, error)
	CountUnmasteredQuestions(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (int, error)
	GetLatestByStudentAndQuestions(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, questionIDs []uuid.UUID) ([]*types.WrongNote, error)
	MarkReviewed(ctx context.Context, tx *gorm.DB, studentID, questionID uuid.UUID, reviewedAt time.Time) error
	MarkMastered(ctx context.Context, tx *gorm.DB, studentID, questionID uuid.UUID) error
	FullDeleteByAssignmentIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) error
}

type wrongNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWrongNoteRepo(db *gorm.DB, baseLog *logger.Logger) WrongNoteRepo {
	repoLog := baseLog.With("repo", "WrongNoteRepo")
	return &wrongNoteRepo{db: db, log: repoLog}
}

func (r *wrongNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.WrongNote) ([]*types.WrongNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(notes) == 0 {
		return []*types.WrongNote{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *wrongNoteRepo) GetByAssignmentIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) ([]*types.WrongNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WrongNote
	if len(assignmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("assignment_id IN ?", assignmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wrongNoteRepo) AggregateUnmastered(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, limit int) ([]*WrongNoteStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.WrongNote{}).
		Select("question_id, COUNT(*) AS wrong_count, MAX(wrong_at) AS last_wrong_at").
		Where("student_id = ? AND mastered = ?", studentID, false).
		Group("question_id").
		Order("wrong_count DESC, last_wrong_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*WrongNoteStat
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wrongNoteRepo) CountUnmasteredQuestions(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WrongNote{}).
		Where("student_id = ? AND mastered = ?", studentID, false).
		Distinct("question_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *wrongNoteRepo) GetLatestByStudentAndQuestions(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, questionIDs []uuid.UUID) ([]*types.WrongNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.WrongNote
	if len(questionIDs) == 0 {
		return rows, nil
	}

	if err := transaction.WithContext(ctx).
		Where("student_id = ? AND question_id IN ?", studentID, questionIDs).
		Order("wrong_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// Newest row wins per question.
	seen := make(map[uuid.UUID]bool, len(questionIDs))
	latest := make([]*types.WrongNote, 0, len(questionIDs))
	for _, n := range rows {
		if seen[n.QuestionID] {
			continue
		}
		seen[n.QuestionID] = true
		latest = append(latest, n)
	}
	return latest, nil
}

func (r *wrongNoteRepo) MarkReviewed(ctx context.Context, tx *gorm.DB, studentID, questionID uuid.UUID, reviewedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.WrongNote{}).
		Where("student_id = ? AND question_id = ? AND mastered = ?", studentID, questionID, false).
		Updates(map[string]interface{}{
			"review_count":     gorm.Expr("review_count + 1"),
			"last_reviewed_at": reviewedAt,
		}).Error; err != nil {
		return err
	}
	return nil
}

func (r *wrongNoteRepo) MarkMastered(ctx context.Context, tx *gorm.DB, studentID, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.WrongNote{}).
		Where("student_id = ? AND question_id = ?", studentID, questionID).
		Update("mastered", true).Error; err != nil {
		return err
	}
	return nil
}

func (r *wrongNoteRepo) FullDeleteByAssignmentIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assignmentIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("assignment_id IN ?", assignmentIDs).
		Delete(&types.WrongNote{}).Error; err != nil {
		return err
	}
	return nil
}
