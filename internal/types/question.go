package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeShortAnswer = "short_answer"
	QuestionTypeEssay       = "essay"
)

// Question is a catalog record. Exams reference questions, they never
// embed them.
type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Type          string         `gorm:"column:type;not null;index" json:"type"`
	Prompt        string         `gorm:"column:prompt;type:text;not null" json:"prompt"`
	Passage       string         `gorm:"column:passage;type:text" json:"passage,omitempty"`
	// Ordered choice strings, mcq only.
	Choices       datatypes.JSON `gorm:"column:choices;type:jsonb" json:"choices,omitempty"`
	CorrectAnswer string         `gorm:"column:correct_answer;type:text" json:"correct_answer,omitempty"`
	Points        int            `gorm:"column:points;not null;default:1" json:"points"`
	CreatedBy     *uuid.UUID     `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }
