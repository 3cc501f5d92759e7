package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentStatus enumerates the timed-session lifecycle.
const (
	AssignmentScheduled = "scheduled"
	AssignmentOngoing   = "ongoing"
	AssignmentCompleted = "completed"
	AssignmentCancelled = "cancelled"
)

// Assignment binds one exam to one student with a time-bounded access
// window. At most one non-cancelled row may exist per (exam, student);
// the partial unique index lives in db.Migrate because gorm tags cannot
// express the predicate.
type Assignment struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExamID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"exam_id"`
	Exam      *Exam          `gorm:"foreignKey:ExamID;references:ID" json:"exam,omitempty"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *User          `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Status    string         `gorm:"column:status;not null;default:'scheduled';index" json:"status"`
	StartTime time.Time      `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   time.Time      `gorm:"column:end_time;not null" json:"end_time"`
	StartedAt *time.Time     `gorm:"column:started_at" json:"started_at,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Assignment) TableName() string { return "assignment" }
