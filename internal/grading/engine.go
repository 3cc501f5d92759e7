package grading

import (
	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/types"
)

// KeyItem is the minimal view of an exam question needed for grading:
// the authoritative answer and the per-exam points override.
type KeyItem struct {
	QuestionID    uuid.UUID
	Type          string
	CorrectAnswer string
	Points        int
	OrderIndex    int
}

// Answer is one submitted (question, response) pair.
type Answer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Response   string    `json:"response"`
}

// Result is the graded outcome for a single key item.
type Result struct {
	QuestionID    uuid.UUID
	OrderIndex    int
	StudentAnswer string
	CorrectAnswer string
	IsCorrect     bool
	NeedsManual   bool
	EarnedPoints  int
	MaxPoints     int
}

// Summary aggregates a full grading run.
type Summary struct {
	Score        int
	MaxScore     int
	Percentage   float64
	CorrectCount int
	WrongCount   int
	TotalCount   int
	Results      []Result
}

// Engine grades a submitted answer set against an answer key. It holds
// no state beyond comparison options, so a run can be replayed for
// audits and always produces the same summary.
type Engine struct {
	// PunctuationInsensitive extends short-answer matching to ignore
	// punctuation. Off by default.
	PunctuationInsensitive bool
}

func NewEngine() *Engine {
	return &Engine{}
}

// Grade walks the key in exam order. Every key item contributes its
// points to the max score whether or not it was answered; submitted
// answers for unknown question ids earn nothing and never fail the run.
func (e *Engine) Grade(key []KeyItem, answers []Answer) Summary {
	byQuestion := make(map[uuid.UUID]string, len(answers))
	known := make(map[uuid.UUID]bool, len(key))
	for _, k := range key {
		known[k.QuestionID] = true
	}
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Response
	}

	sum := Summary{Results: make([]Result, 0, len(key))}
	for _, k := range key {
		res := e.gradeOne(k, byQuestion[k.QuestionID])
		sum.Score += res.EarnedPoints
		sum.MaxScore += res.MaxPoints
		if res.IsCorrect {
			sum.CorrectCount++
		} else {
			sum.WrongCount++
		}
		sum.TotalCount++
		sum.Results = append(sum.Results, res)
	}

	// Answers pointing at questions outside the key are recorded as
	// incorrect with zero weight so audits can see them.
	for _, a := range answers {
		if known[a.QuestionID] {
			continue
		}
		sum.Results = append(sum.Results, Result{
			QuestionID:    a.QuestionID,
			OrderIndex:    len(sum.Results),
			StudentAnswer: a.Response,
			IsCorrect:     false,
		})
	}

	if sum.MaxScore > 0 {
		sum.Percentage = float64(sum.Score) / float64(sum.MaxScore) * 100
	}
	return sum
}

func (e *Engine) gradeOne(k KeyItem, response string) Result {
	res := Result{
		QuestionID:    k.QuestionID,
		OrderIndex:    k.OrderIndex,
		StudentAnswer: response,
		CorrectAnswer: k.CorrectAnswer,
		MaxPoints:     k.Points,
	}
	switch k.Type {
	case types.QuestionTypeMCQ:
		res.IsCorrect = matchChoice(response, k.CorrectAnswer)
	case types.QuestionTypeShortAnswer:
		res.IsCorrect = matchShortAnswer(response, k.CorrectAnswer, e.PunctuationInsensitive)
	case types.QuestionTypeEssay:
		// Never auto-corrected; zero points until a human grades it.
		res.NeedsManual = true
	default:
		res.NeedsManual = true
	}
	if res.IsCorrect {
		res.EarnedPoints = k.Points
	}
	return res
}
