package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/repos/testutil"
	"github.com/hagwonlab/academy-backend/internal/types"
)

func seedWrongNotes(t *testing.T, h *harness, student *types.User, perQuestion []int) (*types.Exam, []*types.Question) {
	t.Helper()
	now := time.Now()
	questions := make([]*types.Question, 0, len(perQuestion))
	for range perQuestion {
		questions = append(questions, testutil.SeedQuestion(t, h.db, types.QuestionTypeShortAnswer, "answer", 1))
	}
	exam := testutil.SeedExam(t, h.db, questions...)
	assignment := testutil.SeedAssignment(t, h.db, exam.ID, student.ID, types.AssignmentCompleted, now.Add(-time.Hour), now.Add(time.Hour))
	for i, count := range perQuestion {
		for j := 0; j < count; j++ {
			testutil.SeedWrongNote(t, h.db, student.ID, questions[i].ID, exam.ID, assignment.ID, now.Add(time.Duration(j)*time.Minute))
		}
	}
	return exam, questions
}

func TestGetQueueCapsAndCounts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := h.reviewService(SystemClock(), 10)

	student := testutil.SeedStudent(t, h.db)
	// 15 distinct wrong questions; the worst-missed first.
	counts := make([]int, 15)
	for i := range counts {
		counts[i] = 15 - i
	}
	_, questions := seedWrongNotes(t, h, student, counts)

	queue, err := svc.GetQueue(ctx, student.ID, 10)
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(queue.Questions) != 10 {
		t.Fatalf("queue length: want=10 got=%d", len(queue.Questions))
	}
	if queue.TotalWrong != 15 {
		t.Fatalf("total wrong: want=15 got=%d", queue.TotalWrong)
	}
	if queue.Remaining != 5 {
		t.Fatalf("remaining: want=5 got=%d", queue.Remaining)
	}
	if queue.Questions[0].QuestionID != questions[0].ID || queue.Questions[0].WrongCount != 15 {
		t.Fatalf("rank 0: want question missed 15 times, got %+v", queue.Questions[0])
	}
	if queue.Questions[0].Prompt == "" || queue.Questions[0].Type == "" {
		t.Fatalf("queue item missing question detail: %+v", queue.Questions[0])
	}
}

func TestGetQueueEmptyForCleanStudent(t *testing.T) {
	h := newHarness(t)
	svc := h.reviewService(SystemClock(), 10)

	student := testutil.SeedStudent(t, h.db)
	queue, err := svc.GetQueue(context.Background(), student.ID, 10)
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(queue.Questions) != 0 || queue.TotalWrong != 0 || queue.Remaining != 0 {
		t.Fatalf("clean student queue not empty: %+v", queue)
	}
}

func TestMarkMasteredRemovesFromQueue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := h.reviewService(SystemClock(), 10)

	student := testutil.SeedStudent(t, h.db)
	_, questions := seedWrongNotes(t, h, student, []int{2, 1})

	if err := svc.MarkMastered(ctx, student.ID, questions[0].ID); err != nil {
		t.Fatalf("mark mastered: %v", err)
	}

	queue, err := svc.GetQueue(ctx, student.ID, 10)
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(queue.Questions) != 1 || queue.Questions[0].QuestionID != questions[1].ID {
		t.Fatalf("mastered question still queued: %+v", queue.Questions)
	}
}

func TestMarkReviewedBumpsReviewCount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := h.reviewService(SystemClock(), 10)

	student := testutil.SeedStudent(t, h.db)
	_, questions := seedWrongNotes(t, h, student, []int{1})

	if err := svc.MarkReviewed(ctx, student.ID, questions[0].ID); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}

	queue, err := svc.GetQueue(ctx, student.ID, 10)
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(queue.Questions) != 1 {
		t.Fatalf("queue length: want=1 got=%d", len(queue.Questions))
	}
	if queue.Questions[0].ReviewCount != 1 {
		t.Fatalf("review count: want=1 got=%d", queue.Questions[0].ReviewCount)
	}
}

func TestGetQueueRequiresStudent(t *testing.T) {
	h := newHarness(t)
	svc := h.reviewService(SystemClock(), 10)
	if _, err := svc.GetQueue(context.Background(), uuid.Nil, 10); err == nil {
		t.Fatalf("nil student id accepted")
	}
}
