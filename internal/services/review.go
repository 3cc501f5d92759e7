package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/apperr"
	redisclient "github.com/hagwonlab/academy-backend/internal/clients/redis"
	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/repos"
)

const DefaultReviewCap = 10

// ReviewItem is one entry of the daily review queue.
type ReviewItem struct {
	QuestionID  uuid.UUID `json:"question_id"`
	Type        string    `json:"type"`
	Prompt      string    `json:"prompt"`
	Passage     string    `json:"passage,omitempty"`
	WrongCount  int       `json:"wrong_count"`
	LastWrongAt string    `json:"last_wrong_at"`
	LastAnswer  string    `json:"last_answer,omitempty"`
	ReviewCount int       `json:"review_count"`
}

type ReviewQueue struct {
	Questions     []ReviewItem `json:"questions"`
	TotalWrong    int          `json:"total_wrong"`
	ReviewedToday int          `json:"reviewed_today"`
	Remaining     int          `json:"remaining"`
}

// ReviewService ranks a student's outstanding wrong notes into a
// bounded daily queue. GetQueue is read-only and deterministic for
// unchanged data.
type ReviewService interface {
	GetQueue(ctx context.Context, studentID uuid.UUID, cap int) (*ReviewQueue, error)
	MarkReviewed(ctx context.Context, studentID, questionID uuid.UUID) error
	MarkMastered(ctx context.Context, studentID, questionID uuid.UUID) error
}

type reviewService struct {
	db            *gorm.DB
	log           *logger.Logger
	clock         Clock
	wrongNoteRepo repos.WrongNoteRepo
	questionRepo  repos.QuestionRepo
	counter       redisclient.ReviewCounter
	defaultCap    int
}

func NewReviewService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	wrongNoteRepo repos.WrongNoteRepo,
	questionRepo repos.QuestionRepo,
	counter redisclient.ReviewCounter,
	defaultCap int,
) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	if defaultCap <= 0 {
		defaultCap = DefaultReviewCap
	}
	if counter == nil {
		counter = redisclient.NewNoopReviewCounter()
	}
	return &reviewService{
		db:            db,
		log:           serviceLog,
		clock:         clock,
		wrongNoteRepo: wrongNoteRepo,
		questionRepo:  questionRepo,
		counter:       counter,
		defaultCap:    defaultCap,
	}
}

func (s *reviewService) GetQueue(ctx context.Context, studentID uuid.UUID, cap int) (*ReviewQueue, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", apperr.ErrInvalidArgument)
	}
	if cap <= 0 {
		cap = s.defaultCap
	}

	stats, err := s.wrongNoteRepo.AggregateUnmastered(ctx, nil, studentID, cap)
	if err != nil {
		return nil, fmt.Errorf("Failed to aggregate wrong notes: %w", err)
	}
	total, err := s.wrongNoteRepo.CountUnmasteredQuestions(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("Failed to count wrong notes: %w", err)
	}

	questionIDs := make([]uuid.UUID, 0, len(stats))
	for _, st := range stats {
		questionIDs = append(questionIDs, st.QuestionID)
	}
	questions, err := s.questionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load questions: %w", err)
	}
	prompts := make(map[uuid.UUID]int, len(questions))
	for i, q := range questions {
		prompts[q.ID] = i
	}

	latest, err := s.wrongNoteRepo.GetLatestByStudentAndQuestions(ctx, nil, studentID, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load latest notes: %w", err)
	}
	lastAnswers := make(map[uuid.UUID]*noteView, len(latest))
	for _, n := range latest {
		lastAnswers[n.QuestionID] = &noteView{answer: n.StudentAnswer, reviewCount: n.ReviewCount}
	}

	items := make([]ReviewItem, 0, len(stats))
	for _, st := range stats {
		item := ReviewItem{
			QuestionID:  st.QuestionID,
			WrongCount:  st.WrongCount,
			LastWrongAt: st.LastWrongAt.UTC().Format(time.RFC3339),
		}
		if i, ok := prompts[st.QuestionID]; ok {
			item.Type = questions[i].Type
			item.Prompt = questions[i].Prompt
			item.Passage = questions[i].Passage
		}
		if v, ok := lastAnswers[st.QuestionID]; ok {
			item.LastAnswer = v.answer
			item.ReviewCount = v.reviewCount
		}
		items = append(items, item)
	}

	reviewedToday, err := s.counter.CountToday(ctx, studentID.String(), s.clock.Now())
	if err != nil {
		// Best-effort counter; the queue itself is authoritative.
		s.log.Warn("Failed to read review counter", "student_id", studentID, "error", err)
		reviewedToday = 0
	}

	remaining := total - cap
	if remaining < 0 {
		remaining = 0
	}

	return &ReviewQueue{
		Questions:     items,
		TotalWrong:    total,
		ReviewedToday: reviewedToday,
		Remaining:     remaining,
	}, nil
}

type noteView struct {
	answer      string
	reviewCount int
}

func (s *reviewService) MarkReviewed(ctx context.Context, studentID, questionID uuid.UUID) error {
	if studentID == uuid.Nil || questionID == uuid.Nil {
		return fmt.Errorf("student id and question id required: %w", apperr.ErrInvalidArgument)
	}
	now := s.clock.Now()
	if err := s.wrongNoteRepo.MarkReviewed(ctx, nil, studentID, questionID, now); err != nil {
		return fmt.Errorf("Failed to mark reviewed: %w", err)
	}
	if err := s.counter.IncrToday(ctx, studentID.String(), now); err != nil {
		s.log.Warn("Failed to bump review counter", "student_id", studentID, "error", err)
	}
	return nil
}

func (s *reviewService) MarkMastered(ctx context.Context, studentID, questionID uuid.UUID) error {
	if studentID == uuid.Nil || questionID == uuid.Nil {
		return fmt.Errorf("student id and question id required: %w", apperr.ErrInvalidArgument)
	}
	if err := s.wrongNoteRepo.MarkMastered(ctx, nil, studentID, questionID); err != nil {
		return fmt.Errorf("Failed to mark mastered: %w", err)
	}
	return nil
}
