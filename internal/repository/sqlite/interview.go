package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

func (r *SQLiteRepo) CreateSession(ctx context.Context, s *models.InterviewSession) (string, error) {
	if s == nil {
		return "", fmt.Errorf("session is nil")
	}
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Status == "" {
		s.Status = models.SessionPending
	}
	s.Created = now()

	_, err := r.conn.Exec(ctx, `INSERT INTO interview_sessions (id, candidate_name, candidate_email, position, department, status, created_by, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CandidateName, s.CandidateEmail, s.Position, s.Department, s.Status, s.CreatedBy, s.Created)
	if err != nil {
		return "", err
	}

	return s.ID, nil
}

func (r *SQLiteRepo) GetSession(ctx context.Context, id string) (*models.InterviewSession, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, candidate_name, candidate_email, position, department, status, overall_score, recommendation, created_by, created, completed_at FROM interview_sessions WHERE id = ?`, id)
	var s models.InterviewSession
	if err := scanSession(row.Scan, &s); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepo) ListSessions(ctx context.Context) ([]models.InterviewSession, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, candidate_name, candidate_email, position, department, status, overall_score, recommendation, created_by, created, completed_at FROM interview_sessions ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InterviewSession
	for rows.Next() {
		var s models.InterviewSession
		if err := scanSession(rows.Scan, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateQuestions bulk-inserts the generated questions of one session.
// expected_points is stored as a JSON array in a TEXT column. The slice order
// becomes the persisted position; bulk inserts share a millisecond, so
// `created` alone cannot order them.
func (r *SQLiteRepo) CreateQuestions(ctx context.Context, qs []models.InterviewQuestion) error {
	for i := range qs {
		q := &qs[i]
		if q.ID == "" {
			q.ID = newID()
		}
		q.Position = i
		q.Created = now()

		points, err := json.Marshal(q.ExpectedPoints)
		if err != nil {
			return fmt.Errorf("marshal expected points: %w", err)
		}

		if _, err := r.conn.Exec(ctx, `INSERT INTO interview_questions (id, session_id, question_text, question_category, expected_points, position, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			q.ID, q.SessionID, q.QuestionText, q.QuestionCategory, string(points), q.Position, q.Created); err != nil {
			return fmt.Errorf("insert interview question: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepo) ListQuestionsBySession(ctx context.Context, sessionID string) ([]models.InterviewQuestion, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, session_id, question_text, question_category, expected_points, position, created FROM interview_questions WHERE session_id = ? ORDER BY position, created`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InterviewQuestion
	for rows.Next() {
		var q models.InterviewQuestion
		var points string
		if err := rows.Scan(&q.ID, &q.SessionID, &q.QuestionText, &q.QuestionCategory, &points, &q.Position, &q.Created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(points), &q.ExpectedPoints); err != nil {
			return nil, fmt.Errorf("unmarshal expected points: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CreateResponses(ctx context.Context, rs []models.InterviewResponse) error {
	for i := range rs {
		resp := &rs[i]
		if resp.ID == "" {
			resp.ID = newID()
		}
		resp.Created = now()

		if _, err := r.conn.Exec(ctx, `INSERT INTO interview_responses (id, question_id, response_text, score, feedback, created) VALUES (?, ?, ?, ?, ?, ?)`,
			resp.ID, resp.QuestionID, resp.ResponseText, resp.Score, resp.Feedback, resp.Created); err != nil {
			return fmt.Errorf("insert interview response: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepo) ListResponsesBySession(ctx context.Context, sessionID string) ([]models.InterviewResponse, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT r.id, r.question_id, r.response_text, r.score, r.feedback, r.created FROM interview_responses r JOIN interview_questions q ON q.id = r.question_id WHERE q.session_id = ? ORDER BY q.position, q.created`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InterviewResponse
	for rows.Next() {
		var resp models.InterviewResponse
		var score sql.NullInt64
		var feedback sql.NullString
		if err := rows.Scan(&resp.ID, &resp.QuestionID, &resp.ResponseText, &score, &feedback, &resp.Created); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			resp.Score = &v
		}
		if feedback.Valid {
			resp.Feedback = &feedback.String
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

// CompleteSession finalizes a pending session exactly once; completing an
// already-completed session is a no-op error.
func (r *SQLiteRepo) CompleteSession(ctx context.Context, id string, overallScore int, recommendation string, completedAt int64) error {
	res, err := r.conn.Exec(ctx, `UPDATE interview_sessions SET status = ?, overall_score = ?, recommendation = ?, completed_at = ? WHERE id = ? AND status = ?`,
		models.SessionCompleted, overallScore, recommendation, completedAt, id, models.SessionPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s is not pending", id)
	}
	return nil
}

func scanSession(scan func(...any) error, s *models.InterviewSession) error {
	var overall sql.NullInt64
	var rec sql.NullString
	var completed sql.NullInt64
	if err := scan(&s.ID, &s.CandidateName, &s.CandidateEmail, &s.Position, &s.Department, &s.Status, &overall, &rec, &s.CreatedBy, &s.Created, &completed); err != nil {
		return err
	}
	if overall.Valid {
		v := int(overall.Int64)
		s.OverallScore = &v
	}
	if rec.Valid {
		s.Recommendation = &rec.String
	}
	if completed.Valid {
		s.CompletedAt = &completed.Int64
	}
	return nil
}
