package quiz

import (
	"math"

	"github.com/staffhub/staffhub/pkg/models"
)

// Answer is one submitted choice for a quiz question.
type Answer struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// Result is the graded outcome for a single question.
type Result struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Summary is the graded outcome for a whole quiz submission.
type Summary struct {
	Score        int      `json:"score"`
	CorrectCount int      `json:"correct_count"`
	Total        int      `json:"total"`
	Results      []Result `json:"results"`
}

// Grade scores a submission against the course's full question set:
// score = round(100 * correct / total). Every question counts toward the
// total; a question with no submitted answer is graded incorrect.
func Grade(questions []models.QuizQuestion, answers []Answer) Summary {
	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.SelectedAnswer
	}

	s := Summary{Total: len(questions), Results: make([]Result, 0, len(questions))}
	for _, q := range questions {
		selected := byQuestion[q.ID]
		correct := selected != "" && selected == q.CorrectAnswer
		if correct {
			s.CorrectCount++
		}
		s.Results = append(s.Results, Result{
			QuestionID:     q.ID,
			SelectedAnswer: selected,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      correct,
		})
	}

	if s.Total > 0 {
		s.Score = int(math.Round(100 * float64(s.CorrectCount) / float64(s.Total)))
	}
	return s
}
