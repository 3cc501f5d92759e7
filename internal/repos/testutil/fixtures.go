package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/types"
)

func SeedUser(t *testing.T, tx *gorm.DB, role string) *types.User {
	t.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("%s-%s@test.local", role, uuid.New().String()[:8]),
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Active:    true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedStudent(t *testing.T, tx *gorm.DB) *types.User {
	return SeedUser(t, tx, types.RoleStudent)
}

func SeedClass(t *testing.T, tx *gorm.DB, teacherID *uuid.UUID) *types.Class {
	t.Helper()
	class := &types.Class{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("class-%s", uuid.New().String()[:8]),
		Grade:     "middle-1",
		TeacherID: teacherID,
	}
	if err := tx.Create(class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return class
}

func SeedEnrollment(t *testing.T, tx *gorm.DB, classID, studentID uuid.UUID) *types.ClassEnrollment {
	t.Helper()
	enrollment := &types.ClassEnrollment{
		ID:        uuid.New(),
		ClassID:   classID,
		StudentID: studentID,
		Active:    true,
	}
	if err := tx.Create(enrollment).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return enrollment
}

func SeedQuestion(t *testing.T, tx *gorm.DB, questionType, correctAnswer string, points int) *types.Question {
	t.Helper()
	question := &types.Question{
		ID:            uuid.New(),
		Type:          questionType,
		Prompt:        fmt.Sprintf("prompt-%s", uuid.New().String()[:8]),
		CorrectAnswer: correctAnswer,
		Points:        points,
	}
	if err := tx.Create(question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

// SeedExam builds an exam whose slots carry the given questions in
// order, one point override per question taken from the question row.
func SeedExam(t *testing.T, tx *gorm.DB, questions ...*types.Question) *types.Exam {
	t.Helper()
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	exam := &types.Exam{
		ID:          uuid.New(),
		Title:       fmt.Sprintf("exam-%s", uuid.New().String()[:8]),
		TotalPoints: total,
	}
	if err := tx.Create(exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	for i, q := range questions {
		slot := &types.ExamQuestion{
			ID:         uuid.New(),
			ExamID:     exam.ID,
			QuestionID: q.ID,
			OrderIndex: i,
			Points:     q.Points,
		}
		if err := tx.Create(slot).Error; err != nil {
			t.Fatalf("seed exam question: %v", err)
		}
	}
	return exam
}

func SeedAssignment(t *testing.T, tx *gorm.DB, examID, studentID uuid.UUID, status string, start, end time.Time) *types.Assignment {
	t.Helper()
	assignment := &types.Assignment{
		ID:        uuid.New(),
		ExamID:    examID,
		StudentID: studentID,
		Status:    status,
		StartTime: start,
		EndTime:   end,
	}
	if err := tx.Create(assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return assignment
}

func SeedWrongNote(t *testing.T, tx *gorm.DB, studentID, questionID, examID, assignmentID uuid.UUID, wrongAt time.Time) *types.WrongNote {
	t.Helper()
	note := &types.WrongNote{
		ID:           uuid.New(),
		StudentID:    studentID,
		QuestionID:   questionID,
		ExamID:       examID,
		AssignmentID: assignmentID,
		WrongAt:      wrongAt,
	}
	if err := tx.Create(note).Error; err != nil {
		t.Fatalf("seed wrong note: %v", err)
	}
	return note
}
