package models

// Answer labels. Each question carries exactly four answers aligned
// positionally with labels A through D.
const (
	LabelA = "A"
	LabelB = "B"
	LabelC = "C"
	LabelD = "D"

	AnswersPerQuestion = 4
)

var labels = [AnswersPerQuestion]string{LabelA, LabelB, LabelC, LabelD}

// LabelAt returns the answer label for position i, empty string if out of range
func LabelAt(i int) string {
	if i < 0 || i >= AnswersPerQuestion {
		return ""
	}
	return labels[i]
}

// IsLabel reports whether s is one of the four answer labels
func IsLabel(s string) bool {
	for _, l := range labels {
		if s == l {
			return true
		}
	}
	return false
}

type Question struct {
	Text          string   `json:"question" validate:"required"`
	Answers       []string `json:"answers" validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"oneof=A B C D"`
}

// Test as stored on the backend. The ID is a UUID generated client-side
// before the first save.
type Test struct {
	ID        string     `json:"id" validate:"required,uuid4"`
	Title     string     `json:"title" validate:"required"`
	Questions []Question `json:"questions" validate:"dive"`
}
