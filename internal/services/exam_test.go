package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/repos/testutil"
	"github.com/hagwonlab/academy-backend/internal/types"
)

func examSvc(t *testing.T) (*harness, ExamService) {
	h := newHarness(t)
	return h, NewExamService(h.db, h.log, h.exams, h.examQuestions, h.questions)
}

func TestCreateExamFixesTotalPoints(t *testing.T) {
	h, svc := examSvc(t)
	ctx := context.Background()

	q1 := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	q2 := testutil.SeedQuestion(t, h.db, types.QuestionTypeShortAnswer, "x", 1)

	exam, err := svc.CreateExam(ctx, CreateExamInput{
		Title: "midterm",
		Questions: []ExamQuestionInput{
			{QuestionID: q1.ID, OrderIndex: 0, Points: 2},
			{QuestionID: q2.ID, OrderIndex: 1, Points: 8},
		},
	})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	// Per-slot overrides win over the catalog points.
	if exam.TotalPoints != 10 {
		t.Fatalf("total points: want=10 got=%d", exam.TotalPoints)
	}

	detail, err := svc.GetExam(ctx, exam.ID, true)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("slots: want=2 got=%d", len(detail.Questions))
	}
	if detail.Questions[0].OrderIndex != 0 || detail.Questions[1].OrderIndex != 1 {
		t.Fatalf("slots out of order: %+v", detail.Questions)
	}
}

func TestCreateExamRejectsDuplicates(t *testing.T) {
	h, svc := examSvc(t)
	ctx := context.Background()

	q1 := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "A", 1)
	q2 := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "B", 1)

	cases := []struct {
		name      string
		questions []ExamQuestionInput
	}{
		{"duplicate order", []ExamQuestionInput{
			{QuestionID: q1.ID, OrderIndex: 0, Points: 1},
			{QuestionID: q2.ID, OrderIndex: 0, Points: 1},
		}},
		{"duplicate question", []ExamQuestionInput{
			{QuestionID: q1.ID, OrderIndex: 0, Points: 1},
			{QuestionID: q1.ID, OrderIndex: 1, Points: 1},
		}},
		{"non-positive points", []ExamQuestionInput{
			{QuestionID: q1.ID, OrderIndex: 0, Points: 0},
		}},
	}
	for _, c := range cases {
		_, err := svc.CreateExam(ctx, CreateExamInput{Title: "bad", Questions: c.questions})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("%s: want ErrInvalidArgument, got %v", c.name, err)
		}
	}
}

func TestCreateExamUnknownQuestion(t *testing.T) {
	_, svc := examSvc(t)
	_, err := svc.CreateExam(context.Background(), CreateExamInput{
		Title: "ghost",
		Questions: []ExamQuestionInput{
			{QuestionID: uuid.New(), OrderIndex: 0, Points: 1},
		},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetExamHidesAnswersForStudents(t *testing.T) {
	h, svc := examSvc(t)
	ctx := context.Background()

	question := testutil.SeedQuestion(t, h.db, types.QuestionTypeMCQ, "secret", 1)
	exam := testutil.SeedExam(t, h.db, question)

	detail, err := svc.GetExam(ctx, exam.ID, false)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if detail.Questions[0].Question == nil {
		t.Fatalf("slot question not loaded")
	}
	if detail.Questions[0].Question.CorrectAnswer != "" {
		t.Fatalf("correct answer leaked to student view")
	}

	staff, err := svc.GetExam(ctx, exam.ID, true)
	if err != nil {
		t.Fatalf("get exam staff: %v", err)
	}
	if staff.Questions[0].Question.CorrectAnswer != "secret" {
		t.Fatalf("staff view missing answer key")
	}
}
