package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/types"
)

func catalogSvc(t *testing.T) (*harness, CatalogService) {
	h := newHarness(t)
	return h, NewCatalogService(h.db, h.log, h.questions)
}

func TestCreateQuestionMCQ(t *testing.T) {
	_, svc := catalogSvc(t)

	question, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Type:          types.QuestionTypeMCQ,
		Prompt:        "Which planet is closest to the sun?",
		Choices:       []string{"Mercury", "Venus", "Earth", "Mars"},
		CorrectAnswer: "Mercury",
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if question.Points != 1 {
		t.Fatalf("default points: want=1 got=%d", question.Points)
	}
	var choices []string
	if err := json.Unmarshal(question.Choices, &choices); err != nil {
		t.Fatalf("decode choices: %v", err)
	}
	if len(choices) != 4 || choices[0] != "Mercury" {
		t.Fatalf("choices round trip: %v", choices)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	_, svc := catalogSvc(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateQuestionInput
	}{
		{"unknown type", CreateQuestionInput{Type: "truefalse", Prompt: "p"}},
		{"missing prompt", CreateQuestionInput{Type: types.QuestionTypeMCQ, Choices: []string{"a", "b"}, CorrectAnswer: "a"}},
		{"mcq one choice", CreateQuestionInput{Type: types.QuestionTypeMCQ, Prompt: "p", Choices: []string{"a"}, CorrectAnswer: "a"}},
		{"mcq no key", CreateQuestionInput{Type: types.QuestionTypeMCQ, Prompt: "p", Choices: []string{"a", "b"}}},
		{"short answer no key", CreateQuestionInput{Type: types.QuestionTypeShortAnswer, Prompt: "p"}},
	}
	for _, c := range cases {
		if _, err := svc.CreateQuestion(ctx, c.input); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("%s: want ErrInvalidArgument, got %v", c.name, err)
		}
	}
}

func TestEssayNeedsNoKey(t *testing.T) {
	_, svc := catalogSvc(t)
	question, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Type:   types.QuestionTypeEssay,
		Prompt: "Describe the water cycle.",
		Points: 10,
	})
	if err != nil {
		t.Fatalf("create essay: %v", err)
	}
	if question.CorrectAnswer != "" {
		t.Fatalf("essay should carry no answer key")
	}
}
