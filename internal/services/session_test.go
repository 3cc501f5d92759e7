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

func TestStartWithoutAssignment(t *testing.T) {
	h := newHarness(t)
	svc := h.sessionService(SystemClock())

	_, err := svc.Start(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()
	svc := h.sessionService(fixedClock(now))

	student := testutil.SeedStudent(t, h.db)
	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 2)
	exam := testutil.SeedExam(t, h.db, question)
	testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentScheduled, now, now.Add(time.Hour))

	first, err := svc.Start(ctx, exam.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.Status != types.AssignmentOngoing {
		t.Fatalf("status after start: want=%q got=%q", types.AssignmentOngoing, first.Status)
	}
	if first.StartedAt == nil {
		t.Fatalf("started_at not set")
	}

	second, err := svc.Start(ctx, exam.ID, student.ID)
	if err != nil {
		t.Fatalf("double start: %v", err)
	}
	if second.ID != first.ID || second.Status != types.AssignmentOngoing {
		t.Fatalf("double start changed the session: %+v", second)
	}
}

func TestStartExpiredWindow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	student := testutil.SeedStudent(t, h.db)
	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentScheduled, now.Add(-2*time.Hour), now.Add(-time.Hour))

	svc := h.sessionService(fixedClock(now))
	_, err := svc.Start(ctx, exam.ID, student.ID)
	if !errors.Is(err, apperr.ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}

func TestSubmitGradesAndDerivesWrongNotes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()
	svc := h.sessionService(fixedClock(now))

	student := testutil.SeedStudent(t, h.db)
	q1 := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "B", 2)
	q2 := testutil.SeedQuestion(t, h.db, types.QuestionTypeShortAnswer, "photosynthesis", 3)
	q3 := testutil.SeedQuestion(t, h.db, types.QuestionTypeShortAnswer, "mitochondria", 5)
	exam := testutil.SeedExam(t, h.db, q1, q2, q3)
	assignment := testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentScheduled, now, now.Add(time.Hour))

	if _, err := svc.Start(ctx, exam.ID, student.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := []grading.Answer{
		{QuestionID: q1.ID, Response: "b"},
		{QuestionID: q2.ID, Response: "respiration"},
		{QuestionID: q3.ID, Response: "mitochondria"},
	}
	submission, err := svc.Submit(ctx, exam.ID, student.ID, answers, 900)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if submission.Score != 7 || submission.MaxScore != 10 {
		t.Fatalf("score: want=7/10 got=%d/%d", submission.Score, submission.MaxScore)
	}
	if submission.Percentage != 70 {
		t.Fatalf("percentage: want=70 got=%v", submission.Percentage)
	}
	if submission.TimeSpentSeconds != 900 {
		t.Fatalf("time spent: want=900 got=%d", submission.TimeSpentSeconds)
	}

	var answerCount int64
	if err := h.db.Model(&types.SubmissionAnswer{}).Where("submission_id = ?", submission.ID).Count(&answerCount).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answerCount != 3 {
		t.Fatalf("submission answers: want=3 got=%d", answerCount)
	}

	// Only the missed short answer produces a wrong note.
	var notes []*types.WrongNote
	if err := h.db.Where("assignment_id = ?", assignment.ID).Find(&notes).Error; err != nil {
		t.Fatalf("load notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("wrong notes: want=1 got=%d", len(notes))
	}
	if notes[0].QuestionID != q2.ID || notes[0].StudentAnswer != "respiration" {
		t.Fatalf("wrong note content: %+v", notes[0])
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()
	svc := h.sessionService(fixedClock(now))

	student := testutil.SeedStudent(t, h.db)
	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentOngoing, now, now.Add(time.Hour))

	answers := []grading.Answer{{QuestionID: question.ID, Response: "A"}}
	if _, err := svc.Submit(ctx, exam.ID, student.ID, answers, 60); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(ctx, exam.ID, student.ID, answers, 61)
	if !errors.Is(err, apperr.ErrAlreadySubmitted) {
		t.Fatalf("want ErrAlreadySubmitted, got %v", err)
	}
}

func TestSubmitEmptyAnswers(t *testing.T) {
	h := newHarness(t)
	svc := h.sessionService(SystemClock())

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), nil, 0)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestSubmitExpiredWindow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	student := testutil.SeedStudent(t, h.db)
	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentOngoing, now.Add(-2*time.Hour), now)

	svc := h.sessionService(fixedClock(now))
	_, err := svc.Submit(ctx, exam.ID, student.ID, []grading.Answer{{QuestionID: question.ID, Response: "A"}}, 10)
	if !errors.Is(err, apperr.ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}

func TestCancelThenStart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()
	svc := h.sessionService(fixedClock(now))

	student := testutil.SeedStudent(t, h.db)
	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	exam := testutil.SeedExam(t, h.db, question)
	assignment := testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentScheduled, now, now.Add(time.Hour))

	if err := svc.Cancel(ctx, assignment.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled assignment no longer grants access.
	_, err := svc.Start(ctx, exam.ID, student.ID)
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized after cancel, got %v", err)
	}
}

func TestCancelMissingAssignment(t *testing.T) {
	h := newHarness(t)
	svc := h.sessionService(SystemClock())

	err := svc.Cancel(context.Background(), uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
