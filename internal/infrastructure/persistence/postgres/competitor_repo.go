package postgres

import (
	"context"
	"database/sql"
	"errors"

	"alfozan-insights/internal/domain/competitor"
)

const competitorColumns = `id, name, market_share, digital_presence, website, recent_activity, trend, change_percentage, created_at`

// CreateCompetitor 新增競爭者並回傳 id。
func (r *Repo) CreateCompetitor(ctx context.Context, c competitor.Competitor) (int64, error) {
	const q = `
INSERT INTO competitors (name, market_share, digital_presence, website, recent_activity, trend, change_percentage, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id;
`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		c.Name, c.MarketShare, c.DigitalPresence, c.Website,
		c.RecentActivity, string(c.Trend), c.ChangePercentage, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCompetitor 以整列覆寫更新競爭者。
func (r *Repo) UpdateCompetitor(ctx context.Context, c competitor.Competitor) error {
	const q = `
UPDATE competitors
SET name = $2, market_share = $3, digital_presence = $4, website = $5,
    recent_activity = $6, trend = $7, change_percentage = $8
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.MarketShare, c.DigitalPresence, c.Website,
		c.RecentActivity, string(c.Trend), c.ChangePercentage,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return competitor.ErrNotFound
	}
	return nil
}

// GetCompetitor 取單筆競爭者。
func (r *Repo) GetCompetitor(ctx context.Context, id int64) (competitor.Competitor, error) {
	const q = `SELECT ` + competitorColumns + ` FROM competitors WHERE id = $1;`
	c, err := scanCompetitor(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return competitor.Competitor{}, competitor.ErrNotFound
	}
	return c, err
}

// ListCompetitors 取全部競爭者（市占率由高到低）。
func (r *Repo) ListCompetitors(ctx context.Context) ([]competitor.Competitor, error) {
	const q = `SELECT ` + competitorColumns + ` FROM competitors ORDER BY market_share DESC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []competitor.Competitor
	for rows.Next() {
		c, err := scanCompetitor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCompetitor 刪除競爭者。
func (r *Repo) DeleteCompetitor(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM competitors WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return competitor.ErrNotFound
	}
	return nil
}

func scanCompetitor(row rowScanner) (competitor.Competitor, error) {
	var c competitor.Competitor
	var trend string
	if err := row.Scan(
		&c.ID, &c.Name, &c.MarketShare, &c.DigitalPresence, &c.Website,
		&c.RecentActivity, &trend, &c.ChangePercentage, &c.CreatedAt,
	); err != nil {
		return competitor.Competitor{}, err
	}
	c.Trend = competitor.Trend(trend)
	return c, nil
}
