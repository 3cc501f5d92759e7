package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
	"github.com/hagwonlab/academy-backend/internal/types"
)

type CreateQuestionInput struct {
	Type          string     `json:"type"`
	Prompt        string     `json:"prompt"`
	Passage       string     `json:"passage"`
	Choices       []string   `json:"choices"`
	CorrectAnswer string     `json:"correct_answer"`
	Points        int        `json:"points"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// CatalogService is the authoring surface of the question catalog.
type CatalogService interface {
	CreateQuestion(ctx context.Context, input CreateQuestionInput) (*types.Question, error)
	ListQuestions(ctx context.Context, questionType string, limit, offset int) ([]*types.Question, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, questionRepo repos.QuestionRepo) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{db: db, log: serviceLog, questionRepo: questionRepo}
}

func (s *catalogService) CreateQuestion(ctx context.Context, input CreateQuestionInput) (*types.Question, error) {
	switch input.Type {
	case types.QuestionTypeMCQ, types.QuestionTypeShortAnswer, types.QuestionTypeEssay:
	default:
		return nil, fmt.Errorf("unknown question type %q: %w", input.Type, apperr.ErrInvalidArgument)
	}
	if input.Prompt == "" {
		return nil, fmt.Errorf("prompt required: %w", apperr.ErrInvalidArgument)
	}
	if input.Type == types.QuestionTypeMCQ {
		if len(input.Choices) < 2 {
			return nil, fmt.Errorf("mcq needs at least two choices: %w", apperr.ErrInvalidArgument)
		}
		if input.CorrectAnswer == "" {
			return nil, fmt.Errorf("mcq needs a correct answer: %w", apperr.ErrInvalidArgument)
		}
	}
	if input.Type == types.QuestionTypeShortAnswer && input.CorrectAnswer == "" {
		return nil, fmt.Errorf("short answer needs a correct answer: %w", apperr.ErrInvalidArgument)
	}
	if input.Points <= 0 {
		input.Points = 1
	}

	var choices datatypes.JSON
	if len(input.Choices) > 0 {
		raw, mErr := json.Marshal(input.Choices)
		if mErr != nil {
			return nil, fmt.Errorf("Failed to encode choices: %w", mErr)
		}
		choices = datatypes.JSON(raw)
	}

	question := &types.Question{
		ID:            uuid.New(),
		Type:          input.Type,
		Prompt:        input.Prompt,
		Passage:       input.Passage,
		Choices:       choices,
		CorrectAnswer: input.CorrectAnswer,
		Points:        input.Points,
		CreatedBy:     input.CreatedBy,
	}
	if _, err := s.questionRepo.Create(ctx, nil, []*types.Question{question}); err != nil {
		return nil, fmt.Errorf("Failed to create question: %w", err)
	}
	return question, nil
}

func (s *catalogService) ListQuestions(ctx context.Context, questionType string, limit, offset int) ([]*types.Question, error) {
	return s.questionRepo.List(ctx, nil, questionType, limit, offset)
}

func (s *catalogService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	if questionID == uuid.Nil {
		return fmt.Errorf("question id required: %w", apperr.ErrInvalidArgument)
	}
	if err := s.questionRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{questionID}); err != nil {
		return fmt.Errorf("Failed to delete question: %w", err)
	}
	return nil
}
