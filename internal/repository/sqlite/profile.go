package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	ts := now()
	p.Created = ts
	p.Updated = ts

	_, err := r.conn.Exec(ctx, `INSERT INTO profiles (id, full_name, email, department, salary, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FullName, p.Email, p.Department, p.Salary, p.Created, p.Updated)
	return err
}

func (r *SQLiteRepo) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, full_name, email, department, salary, created, updated FROM profiles WHERE id = ?`, id)
	var p models.Profile
	if err := scanProfile(row.Scan, &p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepo) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, full_name, email, department, salary, created, updated FROM profiles ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := scanProfile(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE profiles SET full_name = ?, department = ?, salary = ?, updated = ? WHERE id = ?`,
		p.FullName, p.Department, p.Salary, now(), p.ID)
	return err
}

func (r *SQLiteRepo) DeleteProfile(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	return err
}

func scanProfile(scan func(...any) error, p *models.Profile) error {
	var dept sql.NullString
	var salary sql.NullFloat64
	if err := scan(&p.ID, &p.FullName, &p.Email, &dept, &salary, &p.Created, &p.Updated); err != nil {
		return err
	}
	if dept.Valid {
		p.Department = &dept.String
	}
	if salary.Valid {
		p.Salary = &salary.Float64
	}
	return nil
}
