package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

func (r *SQLiteRepo) CreateAttendance(ctx context.Context, a *models.Attendance) (string, error) {
	if a == nil {
		return "", fmt.Errorf("attendance is nil")
	}
	if a.ID == "" {
		a.ID = newID()
	}
	a.Created = now()

	_, err := r.conn.Exec(ctx, `INSERT INTO attendance (id, user_id, date, check_in, check_out, status, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Date, a.CheckIn, a.CheckOut, a.Status, a.Created)
	if err != nil {
		return "", translateErr(err)
	}

	return a.ID, nil
}

func (r *SQLiteRepo) GetByUserAndDate(ctx context.Context, userID, date string) (*models.Attendance, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, date, check_in, check_out, status, created FROM attendance WHERE user_id = ? AND date = ?`, userID, date)
	var a models.Attendance
	if err := scanAttendance(row.Scan, &a); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &a, nil
}

// SetCheckOut closes an attendance record; check_in is left untouched.
func (r *SQLiteRepo) SetCheckOut(ctx context.Context, id string, checkOut int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE attendance SET check_out = ? WHERE id = ?`, checkOut, id)
	return err
}

func (r *SQLiteRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Attendance, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, date, check_in, check_out, status, created FROM attendance WHERE user_id = ? ORDER BY date DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func (r *SQLiteRepo) ListByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, date, check_in, check_out, status, created FROM attendance WHERE date = ? ORDER BY check_in`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows *sql.Rows) ([]models.Attendance, error) {
	var out []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := scanAttendance(rows.Scan, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAttendance(scan func(...any) error, a *models.Attendance) error {
	var checkOut sql.NullInt64
	if err := scan(&a.ID, &a.UserID, &a.Date, &a.CheckIn, &checkOut, &a.Status, &a.Created); err != nil {
		return err
	}
	if checkOut.Valid {
		a.CheckOut = &checkOut.Int64
	}
	return nil
}
