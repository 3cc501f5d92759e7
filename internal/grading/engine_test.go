package grading

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hagwonlab/academy-backend/internal/types"
)

func mcqItem(points, order int, correct string) KeyItem {
	return KeyItem{
		QuestionID:    uuid.New(),
		Type:          types.QuestionTypeMCQ,
		CorrectAnswer: correct,
		Points:        points,
		OrderIndex:    order,
	}
}

func shortItem(points, order int, correct string) KeyItem {
	return KeyItem{
		QuestionID:    uuid.New(),
		Type:          types.QuestionTypeShortAnswer,
		CorrectAnswer: correct,
		Points:        points,
		OrderIndex:    order,
	}
}

func TestGradeWeightedScoring(t *testing.T) {
	q1 := mcqItem(2, 0, "B")
	q2 := shortItem(3, 1, "photosynthesis")
	q3 := shortItem(5, 2, "mitochondria")
	key := []KeyItem{q1, q2, q3}

	answers := []Answer{
		{QuestionID: q1.QuestionID, Response: "B"},
		{QuestionID: q2.QuestionID, Response: "respiration"},
		{QuestionID: q3.QuestionID, Response: "mitochondria"},
	}

	sum := NewEngine().Grade(key, answers)

	if sum.Score != 7 {
		t.Fatalf("score: want=7 got=%d", sum.Score)
	}
	if sum.MaxScore != 10 {
		t.Fatalf("max score: want=10 got=%d", sum.MaxScore)
	}
	if sum.Percentage != 70 {
		t.Fatalf("percentage: want=70 got=%v", sum.Percentage)
	}
	if sum.CorrectCount != 2 || sum.WrongCount != 1 || sum.TotalCount != 3 {
		t.Fatalf("counts: want=2/1/3 got=%d/%d/%d", sum.CorrectCount, sum.WrongCount, sum.TotalCount)
	}
}

func TestGradeZeroMaxScore(t *testing.T) {
	q := mcqItem(0, 0, "A")
	sum := NewEngine().Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: "A"}})
	if sum.Percentage != 0 {
		t.Fatalf("percentage on zero max: want=0 got=%v", sum.Percentage)
	}
	if sum.Score != 0 || sum.MaxScore != 0 {
		t.Fatalf("score: want=0/0 got=%d/%d", sum.Score, sum.MaxScore)
	}
}

func TestGradeMCQCaseAndWhitespaceInsensitive(t *testing.T) {
	q := mcqItem(1, 0, "Paris")
	sum := NewEngine().Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: "  pArIs  "}})
	if sum.Score != 1 {
		t.Fatalf("score: want=1 got=%d", sum.Score)
	}
}

func TestGradeBlankResponseNeverMatches(t *testing.T) {
	q := mcqItem(1, 0, "")
	sum := NewEngine().Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: "   "}})
	if sum.CorrectCount != 0 {
		t.Fatalf("blank response graded correct against blank key")
	}
}

func TestGradeUnansweredCountsAgainstMax(t *testing.T) {
	q1 := mcqItem(2, 0, "A")
	q2 := mcqItem(3, 1, "B")
	sum := NewEngine().Grade([]KeyItem{q1, q2}, []Answer{{QuestionID: q1.QuestionID, Response: "A"}})
	if sum.MaxScore != 5 {
		t.Fatalf("max score: want=5 got=%d", sum.MaxScore)
	}
	if sum.Score != 2 {
		t.Fatalf("score: want=2 got=%d", sum.Score)
	}
	if sum.WrongCount != 1 {
		t.Fatalf("wrong count: want=1 got=%d", sum.WrongCount)
	}
}

func TestGradeUnknownQuestionIgnoredInScore(t *testing.T) {
	q := mcqItem(2, 0, "A")
	answers := []Answer{
		{QuestionID: q.QuestionID, Response: "A"},
		{QuestionID: uuid.New(), Response: "stray"},
	}
	sum := NewEngine().Grade([]KeyItem{q}, answers)
	if sum.Score != 2 || sum.MaxScore != 2 {
		t.Fatalf("score: want=2/2 got=%d/%d", sum.Score, sum.MaxScore)
	}
	if sum.TotalCount != 1 {
		t.Fatalf("total count: want=1 got=%d", sum.TotalCount)
	}
	// The stray answer is still visible in the results for audits.
	if len(sum.Results) != 2 {
		t.Fatalf("results: want=2 got=%d", len(sum.Results))
	}
}

func TestGradeShortAnswerWhitespaceCollapse(t *testing.T) {
	q := shortItem(1, 0, "new york city")
	sum := NewEngine().Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: " New   York\tCity "}})
	if sum.Score != 1 {
		t.Fatalf("score: want=1 got=%d", sum.Score)
	}
}

func TestGradeShortAnswerPunctuationMode(t *testing.T) {
	q := shortItem(1, 0, "it's alive")

	strict := NewEngine().Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: "its alive"}})
	if strict.Score != 0 {
		t.Fatalf("strict mode matched despite punctuation: got=%d", strict.Score)
	}

	relaxed := &Engine{PunctuationInsensitive: true}
	loose := relaxed.Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: "its alive"}})
	if loose.Score != 1 {
		t.Fatalf("relaxed mode missed punctuation-only diff: got=%d", loose.Score)
	}
}

func TestGradeEssayNeedsManual(t *testing.T) {
	q := KeyItem{
		QuestionID:    uuid.New(),
		Type:          types.QuestionTypeEssay,
		CorrectAnswer: "anything",
		Points:        10,
		OrderIndex:    0,
	}
	sum := NewEngine().Grade([]KeyItem{q}, []Answer{{QuestionID: q.QuestionID, Response: "long essay text"}})
	if sum.Score != 0 {
		t.Fatalf("essay auto-scored: got=%d", sum.Score)
	}
	if !sum.Results[0].NeedsManual {
		t.Fatalf("essay result not flagged for manual grading")
	}
	if sum.MaxScore != 10 {
		t.Fatalf("max score: want=10 got=%d", sum.MaxScore)
	}
}
