package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Class struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Grade     string         `gorm:"column:grade" json:"grade"`
	TeacherID *uuid.UUID     `gorm:"type:uuid;index" json:"teacher_id,omitempty"`
	Teacher   *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Class) TableName() string { return "class" }

// ClassEnrollment binds a student to a class roster. Removing a class
// removes these rows and nothing else; exam history must survive
// roster churn.
type ClassEnrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index:idx_class_student,unique,priority:1" json:"class_id"`
	Class     *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_class_student,unique,priority:2" json:"student_id"`
	Student   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Active    bool      `gorm:"column:active;not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ClassEnrollment) TableName() string { return "class_enrollment" }
