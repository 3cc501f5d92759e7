package types

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the one-time graded record of an assignment. Created
// exactly once on the transition to completed, immutable afterwards.
type Submission struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssignmentID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"assignment_id"`
	Assignment       *Assignment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	ExamID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"exam_id"`
	StudentID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"student_id"`
	Score            int         `gorm:"column:score;not null" json:"score"`
	MaxScore         int         `gorm:"column:max_score;not null" json:"max_score"`
	Percentage       float64     `gorm:"column:percentage;not null" json:"percentage"`
	CorrectCount     int         `gorm:"column:correct_count;not null" json:"correct_count"`
	WrongCount       int         `gorm:"column:wrong_count;not null" json:"wrong_count"`
	TotalCount       int         `gorm:"column:total_count;not null" json:"total_count"`
	TimeSpentSeconds int         `gorm:"column:time_spent_seconds;not null;default:0" json:"time_spent_seconds"`
	CompletedAt      time.Time   `gorm:"column:completed_at;not null" json:"completed_at"`
	CreatedAt        time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }

// SubmissionAnswer is one row of the fixed per-question result schema,
// ordered by the exam's question order.
type SubmissionAnswer struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubmissionID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"submission_id"`
	Submission    *Submission `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
	QuestionID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"question_id"`
	OrderIndex    int         `gorm:"column:order_index;not null" json:"order_index"`
	StudentAnswer string      `gorm:"column:student_answer;type:text" json:"student_answer"`
	CorrectAnswer string      `gorm:"column:correct_answer;type:text" json:"correct_answer"`
	IsCorrect     bool        `gorm:"column:is_correct;not null" json:"is_correct"`
	NeedsManual   bool        `gorm:"column:needs_manual;not null;default:false" json:"needs_manual"`
	EarnedPoints  int         `gorm:"column:earned_points;not null" json:"earned_points"`
	MaxPoints     int         `gorm:"column:max_points;not null" json:"max_points"`
	CreatedAt     time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (SubmissionAnswer) TableName() string { return "submission_answer" }
