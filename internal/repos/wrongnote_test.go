package repos

import (
	"context"
	"testing"
	"time"

	"github.com/hagwonlab/academy-backend/internal/repos/testutil"
	"github.com/hagwonlab/academy-backend/internal/types"
)

func TestAggregateUnmasteredRanksByDerivedCount(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewWrongNoteRepo(testutil.DB(t), testutil.Log(t))
	ctx := context.Background()

	student := testutil.SeedStudent(t, tx)
	q1 := testutil.SeedQuestion(t, tx, types.QuestionTypeMCQ, "A", 1)
	q2 := testutil.SeedQuestion(t, tx, types.QuestionTypeMCQ, "B", 1)
	q3 := testutil.SeedQuestion(t, tx, types.QuestionTypeMCQ, "C", 1)
	exam := testutil.SeedExam(t, tx, q1, q2, q3)
	now := time.Now()
	assignment := testutil.SeedAssignment(t, tx, exam.ID, student.ID, types.AssignmentCompleted, now.Add(-time.Hour), now.Add(time.Hour))

	// q2 missed three times, q1 twice, q3 once.
	for i := 0; i < 3; i++ {
		testutil.SeedWrongNote(t, tx, student.ID, q2.ID, exam.ID, assignment.ID, now.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 2; i++ {
		testutil.SeedWrongNote(t, tx, student.ID, q1.ID, exam.ID, assignment.ID, now.Add(time.Duration(i)*time.Minute))
	}
	testutil.SeedWrongNote(t, tx, student.ID, q3.ID, exam.ID, assignment.ID, now)

	stats, err := repo.AggregateUnmastered(ctx, tx, student.ID, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("stats: want=3 got=%d", len(stats))
	}
	if stats[0].QuestionID != q2.ID || stats[0].WrongCount != 3 {
		t.Fatalf("rank 0: want q2 count=3, got %s count=%d", stats[0].QuestionID, stats[0].WrongCount)
	}
	if stats[1].QuestionID != q1.ID || stats[1].WrongCount != 2 {
		t.Fatalf("rank 1: want q1 count=2, got %s count=%d", stats[1].QuestionID, stats[1].WrongCount)
	}
	if stats[2].QuestionID != q3.ID || stats[2].WrongCount != 1 {
		t.Fatalf("rank 2: want q3 count=1, got %s count=%d", stats[2].QuestionID, stats[2].WrongCount)
	}

	// A limit truncates the ranked list, never reorders it.
	top, err := repo.AggregateUnmastered(ctx, tx, student.ID, 2)
	if err != nil {
		t.Fatalf("aggregate with limit: %v", err)
	}
	if len(top) != 2 || top[0].QuestionID != q2.ID {
		t.Fatalf("limited stats: want [q2 q1], got %d rows", len(top))
	}
}

func TestAggregateUnmasteredSkipsMastered(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewWrongNoteRepo(testutil.DB(t), testutil.Log(t))
	ctx := context.Background()

	student := testutil.SeedStudent(t, tx)
	q1 := testutil.SeedQuestion(t, tx, types.QuestionTypeMCQ, "A", 1)
	q2 := testutil.SeedQuestion(t, tx, types.QuestionTypeMCQ, "B", 1)
	exam := testutil.SeedExam(t, tx, q1, q2)
	now := time.Now()
	assignment := testutil.SeedAssignment(t, tx, exam.ID, student.ID, types.AssignmentCompleted, now.Add(-time.Hour), now.Add(time.Hour))

	testutil.SeedWrongNote(t, tx, student.ID, q1.ID, exam.ID, assignment.ID, now)
	testutil.SeedWrongNote(t, tx, student.ID, q2.ID, exam.ID, assignment.ID, now)

	if err := repo.MarkMastered(ctx, tx, student.ID, q1.ID); err != nil {
		t.Fatalf("mark mastered: %v", err)
	}

	stats, err := repo.AggregateUnmastered(ctx, tx, student.ID, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(stats) != 1 || stats[0].QuestionID != q2.ID {
		t.Fatalf("mastered question still in queue: %+v", stats)
	}

	count, err := repo.CountUnmasteredQuestions(ctx, tx, student.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count: want=1 got=%d", count)
	}
}

func TestMarkReviewedIncrementsEveryNote(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewWrongNoteRepo(testutil.DB(t), testutil.Log(t))
	ctx := context.Background()

	student := testutil.SeedStudent(t, tx)
	q1 := testutil.SeedQuestion(t, tx, types.QuestionTypeShortAnswer, "x", 1)
	exam := testutil.SeedExam(t, tx, q1)
	now := time.Now()
	assignment := testutil.SeedAssignment(t, tx, exam.ID, student.ID, types.AssignmentCompleted, now.Add(-time.Hour), now.Add(time.Hour))

	testutil.SeedWrongNote(t, tx, student.ID, q1.ID, exam.ID, assignment.ID, now.Add(-time.Minute))
	testutil.SeedWrongNote(t, tx, student.ID, q1.ID, exam.ID, assignment.ID, now)

	reviewedAt := now
	if err := repo.MarkReviewed(ctx, tx, student.ID, q1.ID, reviewedAt); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}

	var notes []*types.WrongNote
	if err := tx.Where("student_id = ? AND question_id = ?", student.ID, q1.ID).Find(&notes).Error; err != nil {
		t.Fatalf("reload notes: %v", err)
	}
	for _, n := range notes {
		if n.ReviewCount != 1 {
			t.Fatalf("review count: want=1 got=%d", n.ReviewCount)
		}
		if n.LastReviewedAt == nil {
			t.Fatalf("last_reviewed_at not set")
		}
	}
}
