package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/repos/testutil"
	"github.com/hagwonlab/academy-backend/internal/types"
)

func TestAssignClassSkipsExistingAssignments(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()
	svc := h.assignmentService(fixedClock(now), 7)

	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	class := testutil.SeedClass(t, h.db, nil)
	s1 := testutil.SeedStudent(t, h.db)
	s2 := testutil.SeedStudent(t, h.db)
	s3 := testutil.SeedStudent(t, h.db)
	for _, s := range []uuid.UUID{s1.ID, s2.ID, s3.ID} {
		testutil.SeedEnrollment(t, h.db, class.ID, s)
	}

	// s1 already holds a live assignment for this exam.
	testutil.SeedAssignment(t, h.db, exam.ID, s1.ID, types.AssignmentScheduled, now, now.Add(time.Hour))

	created, err := svc.Assign(ctx, exam.ID, &class.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if created != 2 {
		t.Fatalf("assigned count: want=2 got=%d", created)
	}

	// Re-running assigns nothing new.
	created, err = svc.Assign(ctx, exam.ID, &class.ID)
	if err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	if created != 0 {
		t.Fatalf("re-assign count: want=0 got=%d", created)
	}
}

func TestAssignAppliesWindow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	svc := h.assignmentService(fixedClock(now), 3)

	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	class := testutil.SeedClass(t, h.db, nil)
	student := testutil.SeedStudent(t, h.db)
	testutil.SeedEnrollment(t, h.db, class.ID, student.ID)

	if _, err := svc.Assign(ctx, exam.ID, &class.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	var assignment types.Assignment
	if err := h.db.Where("exam_id = ? AND student_id = ?", exam.ID, student.ID).First(&assignment).Error; err != nil {
		t.Fatalf("load assignment: %v", err)
	}
	if assignment.Status != types.AssignmentScheduled {
		t.Fatalf("status: want=%q got=%q", types.AssignmentScheduled, assignment.Status)
	}
	wantEnd := now.Add(3 * 24 * time.Hour)
	if !assignment.EndTime.Round(time.Second).Equal(wantEnd) {
		t.Fatalf("end time: want=%s got=%s", wantEnd, assignment.EndTime)
	}
}

func TestAssignMissingExam(t *testing.T) {
	h := newHarness(t)
	svc := h.assignmentService(SystemClock(), 7)

	_, err := svc.Assign(context.Background(), uuid.New(), nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAssignEmptyClassIsNoop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := h.assignmentService(SystemClock(), 7)

	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	class := testutil.SeedClass(t, h.db, nil)

	created, err := svc.Assign(ctx, exam.ID, &class.ID)
	if err != nil {
		t.Fatalf("assign to empty class: %v", err)
	}
	if created != 0 {
		t.Fatalf("assigned count: want=0 got=%d", created)
	}
}
