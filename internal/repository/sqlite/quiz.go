package sqlite

import (
	"context"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

func (r *SQLiteRepo) CreateQuizQuestion(ctx context.Context, q *models.QuizQuestion) (string, error) {
	if q == nil {
		return "", fmt.Errorf("quiz question is nil")
	}
	if q.ID == "" {
		q.ID = newID()
	}
	q.Created = now()

	_, err := r.conn.Exec(ctx, `INSERT INTO quiz_questions (id, course_id, question_text, option_a, option_b, option_c, option_d, correct_answer, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.CourseID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.Created)
	if err != nil {
		return "", err
	}

	return q.ID, nil
}

func (r *SQLiteRepo) ListQuestionsByCourse(ctx context.Context, courseID string) ([]models.QuizQuestion, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, course_id, question_text, option_a, option_b, option_c, option_d, correct_answer, created FROM quiz_questions WHERE course_id = ? ORDER BY created`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QuizQuestion
	for rows.Next() {
		var q models.QuizQuestion
		if err := rows.Scan(&q.ID, &q.CourseID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer, &q.Created); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// CreateAttempts bulk-inserts the attempt rows of one quiz submission.
func (r *SQLiteRepo) CreateAttempts(ctx context.Context, attempts []models.QuizAttempt) error {
	for i := range attempts {
		a := &attempts[i]
		if a.ID == "" {
			a.ID = newID()
		}
		a.AttemptedAt = now()

		if _, err := r.conn.Exec(ctx, `INSERT INTO quiz_attempts (id, enrollment_id, question_id, selected_answer, is_correct, attempted_at) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.EnrollmentID, a.QuestionID, a.SelectedAnswer, a.IsCorrect, a.AttemptedAt); err != nil {
			return fmt.Errorf("insert attempt for question %s: %w", a.QuestionID, err)
		}
	}
	return nil
}
