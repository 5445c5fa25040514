package sqlite

import (
	"context"
	"database/sql"
)

func (r *SQLiteRepo) AssignRole(ctx context.Context, userID, role string) error {
	_, err := r.conn.Exec(ctx, `INSERT INTO user_roles (id, user_id, role, created) VALUES (?, ?, ?, ?) ON CONFLICT(user_id, role) DO NOTHING`,
		newID(), userID, role, now())
	return err
}

// HasRole reports whether the user carries the given role.
func (r *SQLiteRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM user_roles WHERE user_id = ? AND role = ?`, userID, role)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRole returns the user's highest-privilege role, admin before employee.
func (r *SQLiteRepo) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	row := r.conn.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = ? ORDER BY CASE role WHEN 'admin' THEN 0 ELSE 1 END LIMIT 1`, userID)
	if err := row.Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", err
	}
	return role, nil
}
