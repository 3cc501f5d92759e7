package types

import (
	"time"

	"github.com/google/uuid"
)

// WrongNote is one review record per incorrect submitted answer. The
// log is append-only: "times wrong" for a (student, question) pair is
// derived by counting rows, never from a stored counter. The
// assignment back-reference exists so exam deletion can sweep the
// notes it produced.
type WrongNote struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_wrong_note_student_question,priority:1" json:"student_id"`
	QuestionID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_wrong_note_student_question,priority:2" json:"question_id"`
	Question       *Question   `gorm:"foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	ExamID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"exam_id"`
	AssignmentID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Assignment     *Assignment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	StudentAnswer  string      `gorm:"column:student_answer;type:text" json:"student_answer"`
	WrongAt        time.Time   `gorm:"column:wrong_at;not null;index" json:"wrong_at"`
	ReviewCount    int         `gorm:"column:review_count;not null;default:0" json:"review_count"`
	Mastered       bool        `gorm:"column:mastered;not null;default:false;index" json:"mastered"`
	LastReviewedAt *time.Time  `gorm:"column:last_reviewed_at" json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (WrongNote) TableName() string { return "wrong_note" }
