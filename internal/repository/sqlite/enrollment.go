package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

func (r *SQLiteRepo) CreateEnrollment(ctx context.Context, e *models.Enrollment) (string, error) {
	if e == nil {
		return "", fmt.Errorf("enrollment is nil")
	}
	if e.ID == "" {
		e.ID = newID()
	}
	e.EnrolledAt = now()

	_, err := r.conn.Exec(ctx, `INSERT INTO course_enrollments (id, user_id, course_id, enrolled_at, completed_at, quiz_score) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.CourseID, e.EnrolledAt, e.CompletedAt, e.QuizScore)
	if err != nil {
		return "", translateErr(err)
	}

	return e.ID, nil
}

func (r *SQLiteRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, course_id, enrolled_at, completed_at, quiz_score FROM course_enrollments WHERE user_id = ? AND course_id = ?`, userID, courseID)
	var e models.Enrollment
	if err := scanEnrollment(row.Scan, &e); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &e, nil
}

func (r *SQLiteRepo) ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, course_id, enrolled_at, completed_at, quiz_score FROM course_enrollments WHERE user_id = ? ORDER BY enrolled_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := scanEnrollment(rows.Scan, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) SetQuizResult(ctx context.Context, id string, score int, completedAt int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE course_enrollments SET quiz_score = ?, completed_at = ? WHERE id = ?`, score, completedAt, id)
	return err
}

func scanEnrollment(scan func(...any) error, e *models.Enrollment) error {
	var completedAt sql.NullInt64
	var score sql.NullInt64
	if err := scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &completedAt, &score); err != nil {
		return err
	}
	if completedAt.Valid {
		e.CompletedAt = &completedAt.Int64
	}
	if score.Valid {
		v := int(score.Int64)
		e.QuizScore = &v
	}
	return nil
}
