package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"alfozan-insights/internal/application/pipeline"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
)

// Repo 提供 Postgres 資料存取，涵蓋開發案、競爭者、指標與使用者。
type Repo struct {
	db *sql.DB
}

// NewRepo 建立 Postgres 資料存取實例。
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// CommitCycle 在單一交易內套用整輪重算結果；任何一筆失敗即整批回滾。
func (r *Repo) CommitCycle(ctx context.Context, result pipeline.CycleResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const projectQ = `
UPDATE projects
SET progress = $2, status = $3, units_sold = $4
WHERE id = $1;
`
	for _, upd := range result.Projects {
		res, err := tx.ExecContext(ctx, projectQ, upd.ID, upd.Progress, string(upd.Status), upd.UnitsSold)
		if err != nil {
			return fmt.Errorf("update project %d: %w", upd.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("update project %d: no such row", upd.ID)
		}
	}

	const competitorQ = `
UPDATE competitors
SET market_share = $2, digital_presence = $3, trend = $4
WHERE id = $1;
`
	for _, upd := range result.Competitors {
		res, err := tx.ExecContext(ctx, competitorQ, upd.ID, upd.MarketShare, upd.DigitalPresence, string(upd.Trend))
		if err != nil {
			return fmt.Errorf("update competitor %d: %w", upd.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("update competitor %d: no such row", upd.ID)
		}
	}

	const metricQ = `
INSERT INTO analytics (metric_type, metric_value, period, category, recorded_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (metric_type, period)
DO UPDATE SET metric_value = EXCLUDED.metric_value,
              category = EXCLUDED.category,
              recorded_at = EXCLUDED.recorded_at;
`
	for _, row := range result.Metrics {
		if _, err := tx.ExecContext(ctx, metricQ,
			string(row.MetricType), row.Value, row.Period, row.Category, row.RecordedAt,
		); err != nil {
			return fmt.Errorf("upsert metric %s/%s: %w", row.MetricType, row.Period, err)
		}
	}

	return tx.Commit()
}

// ListMetrics 取指定類型的指標列（遞增期間）；類型為空時取全部。
func (r *Repo) ListMetrics(ctx context.Context, metricType analyticsDomain.MetricType) ([]analyticsDomain.MetricRow, error) {
	q := `
SELECT id, metric_type, metric_value, period, category, recorded_at
FROM analytics
`
	var args []interface{}
	if metricType != "" {
		q += "WHERE metric_type = $1\n"
		args = append(args, string(metricType))
	}
	q += "ORDER BY period, metric_type;"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analyticsDomain.MetricRow
	for rows.Next() {
		var m analyticsDomain.MetricRow
		var metricType string
		if err := rows.Scan(&m.ID, &metricType, &m.Value, &m.Period, &m.Category, &m.RecordedAt); err != nil {
			return nil, err
		}
		m.MetricType = analyticsDomain.MetricType(metricType)
		out = append(out, m)
	}
	return out, rows.Err()
}
