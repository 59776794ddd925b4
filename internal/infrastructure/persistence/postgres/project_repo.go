package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"alfozan-insights/internal/domain/project"
)

const projectColumns = `id, name, type, status, location, manager, budget, units, units_sold, progress, start_date, end_date, created_at`

// CreateProject 新增開發案並回傳 id。
func (r *Repo) CreateProject(ctx context.Context, p project.Project) (int64, error) {
	const q = `
INSERT INTO projects (name, type, status, location, manager, budget, units, units_sold, progress, start_date, end_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id;
`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		p.Name, string(p.Type), string(p.Status), p.Location, p.Manager,
		p.Budget, p.Units, p.UnitsSold, p.Progress,
		nullTime(p.StartDate), nullTime(p.EndDate), p.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateProject 以整列覆寫更新開發案。
func (r *Repo) UpdateProject(ctx context.Context, p project.Project) error {
	const q = `
UPDATE projects
SET name = $2, type = $3, status = $4, location = $5, manager = $6,
    budget = $7, units = $8, units_sold = $9, progress = $10,
    start_date = $11, end_date = $12
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.Name, string(p.Type), string(p.Status), p.Location, p.Manager,
		p.Budget, p.Units, p.UnitsSold, p.Progress,
		nullTime(p.StartDate), nullTime(p.EndDate),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return project.ErrNotFound
	}
	return nil
}

// GetProject 取單筆開發案。
func (r *Repo) GetProject(ctx context.Context, id int64) (project.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return project.Project{}, project.ErrNotFound
	}
	return p, err
}

// ListProjects 取全部開發案（遞增 id）。
func (r *Repo) ListProjects(ctx context.Context) ([]project.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProject 刪除開發案。
func (r *Repo) DeleteProject(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return project.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (project.Project, error) {
	var p project.Project
	var typ, status string
	var start, end sql.NullTime
	if err := row.Scan(
		&p.ID, &p.Name, &typ, &status, &p.Location, &p.Manager,
		&p.Budget, &p.Units, &p.UnitsSold, &p.Progress,
		&start, &end, &p.CreatedAt,
	); err != nil {
		return project.Project{}, err
	}
	p.Type = project.Type(typ)
	p.Status = project.Status(status)
	if start.Valid {
		t := start.Time
		p.StartDate = &t
	}
	if end.Valid {
		t := end.Time
		p.EndDate = &t
	}
	return p, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
