package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/grading"
	"github.com/hagwonlab/academy-backend/internal/repos/testutil"
	"github.com/hagwonlab/academy-backend/internal/types"
)

func TestDeleteExamSweepsDependents(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	student := testutil.SeedStudent(t, h.db)
	q1 := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 2)
	q2 := testutil.SeedQuestion(t, h.db, types.QuestionTypeShortAnswer, "key", 3)
	exam := testutil.SeedExam(t, h.db, q1, q2)
	testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentOngoing, now, now.Add(time.Hour))

	// Run a real submission so every dependent table has rows.
	sessionSvc := h.sessionService(fixedClock(now))
	if _, err := sessionSvc.Submit(ctx, exam.ID, student.ID, []grading.Answer{
		{QuestionID: q1.ID, Response: "A"},
		{QuestionID: q2.ID, Response: "not the key"},
	}, 120); err != nil {
		t.Fatalf("submit: %v", err)
	}

	result, err := h.deletionService().DeleteExam(ctx, exam.ID)
	if err != nil {
		t.Fatalf("delete exam: %v", err)
	}
	if result.DeletedAssignments != 1 || result.DeletedSubmissions != 1 {
		t.Fatalf("delete result: want 1/1 got %d/%d", result.DeletedAssignments, result.DeletedSubmissions)
	}

	tables := map[string]any{
		"exam":           &types.Exam{},
		"exam questions": &types.ExamQuestion{},
		"assignments":    &types.Assignment{},
		"submissions":    &types.Submission{},
		"wrong notes":    &types.WrongNote{},
	}
	filters := map[string]string{
		"exam":           "id = ?",
		"exam questions": "exam_id = ?",
		"assignments":    "exam_id = ?",
		"submissions":    "exam_id = ?",
		"wrong notes":    "exam_id = ?",
	}
	for name, model := range tables {
		var count int64
		if err := h.db.Unscoped().Model(model).Where(filters[name], exam.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if count != 0 {
			t.Fatalf("%s survived exam deletion: count=%d", name, count)
		}
	}

	// The question catalog and the student are untouched.
	var qCount int64
	if err := h.db.Model(&types.Question{}).Where("id IN ?", []uuid.UUID{q1.ID, q2.ID}).Count(&qCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if qCount != 2 {
		t.Fatalf("catalog questions: want=2 got=%d", qCount)
	}
}

func TestDeleteExamMissing(t *testing.T) {
	h := newHarness(t)
	_, err := h.deletionService().DeleteExam(context.Background(), uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteClassKeepsHistory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	student := testutil.SeedStudent(t, h.db)
	class := testutil.SeedClass(t, h.db, nil)
	testutil.SeedEnrollment(t, h.db, class.ID, student.ID)

	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	assignment := testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentCompleted, now.Add(-time.Hour), now)

	if err := h.deletionService().DeleteClass(ctx, class.ID); err != nil {
		t.Fatalf("delete class: %v", err)
	}

	var enrollmentCount int64
	if err := h.db.Model(&types.ClassEnrollment{}).Where("class_id = ?", class.ID).Count(&enrollmentCount).Error; err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if enrollmentCount != 0 {
		t.Fatalf("enrollments survived class deletion: count=%d", enrollmentCount)
	}
	var classCount int64
	if err := h.db.Unscoped().Model(&types.Class{}).Where("id = ?", class.ID).Count(&classCount).Error; err != nil {
		t.Fatalf("count class: %v", err)
	}
	if classCount != 0 {
		t.Fatalf("class row survived deletion")
	}

	// Assessment history is untouched by roster removal.
	var aCount int64
	if err := h.db.Model(&types.Assignment{}).Where("id = ?", assignment.ID).Count(&aCount).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if aCount != 1 {
		t.Fatalf("assignment lost on class deletion")
	}
}
