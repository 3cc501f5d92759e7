package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
	"github.com/hagwonlab/academy-backend/internal/types"
)

// ExamQuestionInput is one slot of an exam composition request.
type ExamQuestionInput struct {
	QuestionID uuid.UUID `json:"question_id"`
	OrderIndex int       `json:"order_index"`
	Points     int       `json:"points"`
}

type CreateExamInput struct {
	Title            string              `json:"title"`
	TimeLimitMinutes int                 `json:"time_limit_minutes"`
	AllowRetry       bool                `json:"allow_retry"`
	ShuffleQuestions bool                `json:"shuffle_questions"`
	ShowAnswers      bool                `json:"show_answers"`
	CreatedBy        *uuid.UUID          `json:"-"`
	Questions        []ExamQuestionInput `json:"questions"`
}

// ExamDetail bundles an exam with its ordered question slots.
type ExamDetail struct {
	Exam      *types.Exam           `json:"exam"`
	Questions []*types.ExamQuestion `json:"questions"`
}

// ExamService composes exams. Total points are fixed here, as the sum
// of the per-question overrides, and never re-derived later.
type ExamService interface {
	CreateExam(ctx context.Context, input CreateExamInput) (*types.Exam, error)
	GetExam(ctx context.Context, examID uuid.UUID, includeAnswers bool) (*ExamDetail, error)
	ListExams(ctx context.Context, limit, offset int) ([]*types.Exam, error)
}

type examService struct {
	db               *gorm.DB
	log              *logger.Logger
	examRepo         repos.ExamRepo
	examQuestionRepo repos.ExamQuestionRepo
	questionRepo     repos.QuestionRepo
}

func NewExamService(
	db *gorm.DB,
	log *logger.Logger,
	examRepo repos.ExamRepo,
	examQuestionRepo repos.ExamQuestionRepo,
	questionRepo repos.QuestionRepo,
) ExamService {
	serviceLog := log.With("service", "ExamService")
	return &examService{
		db:               db,
		log:              serviceLog,
		examRepo:         examRepo,
		examQuestionRepo: examQuestionRepo,
		questionRepo:     questionRepo,
	}
}

func (s *examService) CreateExam(ctx context.Context, input CreateExamInput) (*types.Exam, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title required: %w", apperr.ErrInvalidArgument)
	}
	if len(input.Questions) == 0 {
		return nil, fmt.Errorf("at least one question required: %w", apperr.ErrInvalidArgument)
	}

	seenOrder := make(map[int]bool, len(input.Questions))
	seenQuestion := make(map[uuid.UUID]bool, len(input.Questions))
	questionIDs := make([]uuid.UUID, 0, len(input.Questions))
	total := 0
	for _, q := range input.Questions {
		if q.Points <= 0 {
			return nil, fmt.Errorf("points must be positive for question %s: %w", q.QuestionID, apperr.ErrInvalidArgument)
		}
		if seenOrder[q.OrderIndex] {
			return nil, fmt.Errorf("duplicate order index %d: %w", q.OrderIndex, apperr.ErrInvalidArgument)
		}
		if seenQuestion[q.QuestionID] {
			return nil, fmt.Errorf("duplicate question %s: %w", q.QuestionID, apperr.ErrInvalidArgument)
		}
		seenOrder[q.OrderIndex] = true
		seenQuestion[q.QuestionID] = true
		questionIDs = append(questionIDs, q.QuestionID)
		total += q.Points
	}

	found, err := s.questionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load questions: %w", err)
	}
	if len(found) != len(questionIDs) {
		return nil, fmt.Errorf("unknown question in composition: %w", apperr.ErrNotFound)
	}

	exam := &types.Exam{
		ID:               uuid.New(),
		Title:            input.Title,
		TotalPoints:      total,
		TimeLimitMinutes: input.TimeLimitMinutes,
		AllowRetry:       input.AllowRetry,
		ShuffleQuestions: input.ShuffleQuestions,
		ShowAnswers:      input.ShowAnswers,
		CreatedBy:        input.CreatedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.examRepo.Create(ctx, tx, []*types.Exam{exam}); cErr != nil {
			return fmt.Errorf("Failed to create exam: %w", cErr)
		}
		slots := make([]*types.ExamQuestion, 0, len(input.Questions))
		for _, q := range input.Questions {
			slots = append(slots, &types.ExamQuestion{
				ID:         uuid.New(),
				ExamID:     exam.ID,
				QuestionID: q.QuestionID,
				OrderIndex: q.OrderIndex,
				Points:     q.Points,
			})
		}
		if _, cErr := s.examQuestionRepo.Create(ctx, tx, slots); cErr != nil {
			return fmt.Errorf("Failed to create exam questions: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Exam created", "exam_id", exam.ID, "total_points", total, "question_count", len(input.Questions))
	return exam, nil
}

func (s *examService) GetExam(ctx context.Context, examID uuid.UUID, includeAnswers bool) (*ExamDetail, error) {
	if examID == uuid.Nil {
		return nil, fmt.Errorf("exam id required: %w", apperr.ErrInvalidArgument)
	}
	exams, err := s.examRepo.GetByIDs(ctx, nil, []uuid.UUID{examID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load exam: %w", err)
	}
	if len(exams) == 0 {
		return nil, fmt.Errorf("exam %s: %w", examID, apperr.ErrNotFound)
	}

	slots, err := s.examQuestionRepo.GetByExamIDs(ctx, nil, []uuid.UUID{examID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load exam questions: %w", err)
	}

	questionIDs := make([]uuid.UUID, 0, len(slots))
	for _, slot := range slots {
		questionIDs = append(questionIDs, slot.QuestionID)
	}
	questions, err := s.questionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load questions: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Question, len(questions))
	for _, q := range questions {
		if !includeAnswers {
			q.CorrectAnswer = ""
		}
		byID[q.ID] = q
	}
	for _, slot := range slots {
		slot.Question = byID[slot.QuestionID]
	}

	return &ExamDetail{Exam: exams[0], Questions: slots}, nil
}

func (s *examService) ListExams(ctx context.Context, limit, offset int) ([]*types.Exam, error) {
	return s.examRepo.List(ctx, nil, limit, offset)
}
