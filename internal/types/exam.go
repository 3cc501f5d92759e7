package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Exam struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	// Sum of the exam_question point overrides, fixed at composition.
	TotalPoints      int            `gorm:"column:total_points;not null;default:0" json:"total_points"`
	TimeLimitMinutes int            `gorm:"column:time_limit_minutes;not null;default:0" json:"time_limit_minutes"`
	AllowRetry       bool           `gorm:"column:allow_retry;not null;default:false" json:"allow_retry"`
	ShuffleQuestions bool           `gorm:"column:shuffle_questions;not null;default:false" json:"shuffle_questions"`
	ShowAnswers      bool           `gorm:"column:show_answers;not null;default:false" json:"show_answers"`
	CreatedBy        *uuid.UUID     `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Exam) TableName() string { return "exam" }

// ExamQuestion links a question into an exam with its position and a
// per-exam points override.
type ExamQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExamID     uuid.UUID `gorm:"type:uuid;not null;index:idx_exam_order,unique,priority:1;index:idx_exam_question,unique,priority:1" json:"exam_id"`
	Exam       *Exam     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExamID;references:ID" json:"exam,omitempty"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index:idx_exam_question,unique,priority:2" json:"question_id"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	OrderIndex int       `gorm:"column:order_index;not null;index:idx_exam_order,unique,priority:2" json:"order_index"`
	Points     int       `gorm:"column:points;not null" json:"points"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ExamQuestion) TableName() string { return "exam_question" }
