package quiz

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quizdesk/quizdesk/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Attempt holds the currently selected answers for one in-progress
// test-taking session. Purely local: nothing here touches the backend.
type Attempt struct {
	test    models.Test
	answers map[int]string
}

// Result of a submitted attempt. Score is on a 100-point scale with
// credit divided evenly across all questions.
type Result struct {
	TestTitle string
	Score     decimal.Decimal
	Correct   int
	Total     int
}

func (r Result) String() string {
	return fmt.Sprintf("%q: %s of 100 (%d/%d correct)", r.TestTitle, r.Score.StringFixed(2), r.Correct, r.Total)
}

func StartAttempt(test models.Test) *Attempt {
	return &Attempt{
		test:    test,
		answers: make(map[int]string, len(test.Questions)),
	}
}

// Record sets the answer for a question, overwriting earlier picks.
// The running score changes immediately: Score reflects every recorded
// answer, not only a final submit.
func (a *Attempt) Record(questionIndex int, label string) error {
	if questionIndex < 0 || questionIndex >= len(a.test.Questions) {
		return fmt.Errorf("question index %d out of range (test has %d questions)", questionIndex, len(a.test.Questions))
	}
	if !models.IsLabel(label) {
		return fmt.Errorf("unknown answer label: %q", label)
	}

	a.answers[questionIndex] = label
	return nil
}

// Answer returns the recorded label for a question, empty if unanswered
func (a *Attempt) Answer(questionIndex int) string {
	return a.answers[questionIndex]
}

func (a *Attempt) Answered() int {
	return len(a.answers)
}

// CorrectCount counts recorded answers matching the correct label.
// An unanswered question never matches.
func (a *Attempt) CorrectCount() int {
	correct := 0
	for i, q := range a.test.Questions {
		if a.answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct
}

// Score is 100*correct/total rounded to 2 decimals.
// A test without questions scores 0 instead of dividing by zero.
func (a *Attempt) Score() decimal.Decimal {
	total := len(a.test.Questions)
	if total == 0 {
		return decimal.Zero.Round(2)
	}

	correct := decimal.NewFromInt(int64(a.CorrectCount()))
	return hundred.Mul(correct).DivRound(decimal.NewFromInt(int64(total)), 2)
}

// Submit computes the final result. Idempotent: it neither mutates the
// attempt nor talks to the server, so submitting twice yields the same
// result.
func (a *Attempt) Submit() Result {
	return Result{
		TestTitle: a.test.Title,
		Score:     a.Score(),
		Correct:   a.CorrectCount(),
		Total:     len(a.test.Questions),
	}
}

// Reset drops all recorded answers
func (a *Attempt) Reset() {
	a.answers = make(map[int]string, len(a.test.Questions))
}
