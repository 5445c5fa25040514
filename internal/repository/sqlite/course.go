package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

func (r *SQLiteRepo) CreateCourse(ctx context.Context, c *models.Course) (string, error) {
	if c == nil {
		return "", fmt.Errorf("course is nil")
	}
	if c.ID == "" {
		c.ID = newID()
	}
	ts := now()
	c.Created = ts
	c.Updated = ts

	_, err := r.conn.Exec(ctx, `INSERT INTO courses (id, title, description, department, duration_hours, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Department, c.DurationHours, c.Created, c.Updated)
	if err != nil {
		return "", err
	}

	return c.ID, nil
}

func (r *SQLiteRepo) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, description, department, duration_hours, created, updated FROM courses WHERE id = ?`, id)
	var c models.Course
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Department, &c.DurationHours, &c.Created, &c.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepo) ListCourses(ctx context.Context, department string) ([]models.Course, error) {
	query := `SELECT id, title, description, department, duration_hours, created, updated FROM courses ORDER BY title`
	args := []any{}
	if department != "" {
		query = `SELECT id, title, description, department, duration_hours, created, updated FROM courses WHERE department = ? ORDER BY title`
		args = append(args, department)
	}

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Department, &c.DurationHours, &c.Created, &c.Updated); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
