package alert

import (
	"context"
	"fmt"
	"time"

	alertDomain "alfozan-insights/internal/domain/alert"
	"alfozan-insights/internal/domain/analytics"
	"alfozan-insights/internal/domain/project"
)

// SubscriptionRepository 管理訂閱存取。
type SubscriptionRepository interface {
	ListActive(ctx context.Context) ([]alertDomain.Subscription, error)
}

// MetricReader 讀取指定類型的指標列。
type MetricReader interface {
	ListMetrics(ctx context.Context, metricType analytics.MetricType) ([]analytics.MetricRow, error)
}

// ProjectReader 讀取全部開發案。
type ProjectReader interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
}

// Notifier 寄送通知。
type Notifier interface {
	Send(ctx context.Context, notification alertDomain.Notification) error
}

// Engine 評估所有訂閱，產生並送出通知。
type Engine struct {
	subsRepo SubscriptionRepository
	metrics  MetricReader
	projects ProjectReader
	notifier Notifier
	now      func() time.Time
}

// NewEngine 建立通知引擎。
func NewEngine(subs SubscriptionRepository, metrics MetricReader, projects ProjectReader, notifier Notifier) *Engine {
	return &Engine{
		subsRepo: subs,
		metrics:  metrics,
		projects: projects,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run 評估當下所有訂閱與通知。
func (e *Engine) Run(ctx context.Context, date time.Time) error {
	subs, err := e.subsRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	for _, sub := range subs {
		if err := sub.Validate(); err != nil {
			continue // 跳過無效訂閱，避免中斷
		}

		switch sub.Type {
		case alertDomain.SubscriptionMetric:
			if err := e.handleMetric(ctx, sub, date); err != nil {
				continue
			}
		case alertDomain.SubscriptionProject:
			if err := e.handleProject(ctx, sub, date); err != nil {
				continue
			}
		default:
			continue
		}
	}
	return nil
}

func (e *Engine) handleMetric(ctx context.Context, sub alertDomain.Subscription, date time.Time) error {
	rows, err := e.metrics.ListMetrics(ctx, sub.Metric)
	if err != nil {
		return err
	}
	latest, ok := latestReading(rows)
	if !ok {
		return nil
	}

	fired := false
	switch sub.Direction {
	case alertDomain.DirectionBelow:
		fired = latest.Value < sub.Threshold
	case alertDomain.DirectionAbove:
		fired = latest.Value > sub.Threshold
	}
	if !fired {
		return nil
	}

	notification := alertDomain.Notification{
		SubscriptionID:   sub.ID,
		SubscriptionName: sub.Name,
		Type:             sub.Type,
		At:               date,
		Message:          fmt.Sprintf("%s: %s %.2f crossed %s %.2f", sub.Name, latest.MetricType, latest.Value, sub.Direction, sub.Threshold),
		Metric: &alertDomain.MetricReading{
			Metric:    string(latest.MetricType),
			Value:     latest.Value,
			Threshold: sub.Threshold,
			Period:    latest.Period,
		},
	}
	return e.sendAll(ctx, sub, notification)
}

func (e *Engine) handleProject(ctx context.Context, sub alertDomain.Subscription, date time.Time) error {
	list, err := e.projects.ListProjects(ctx)
	if err != nil {
		return err
	}

	var overdue []alertDomain.ProjectSummary
	for _, p := range list {
		if p.Status == project.StatusCompleted || p.EndDate == nil {
			continue
		}
		if p.EndDate.Before(date) {
			overdue = append(overdue, alertDomain.ProjectSummary{
				ID:       p.ID,
				Name:     p.Name,
				Status:   string(p.Status),
				Progress: p.Progress,
				EndDate:  p.EndDate,
			})
		}
	}
	if len(overdue) == 0 {
		return nil
	}

	notification := alertDomain.Notification{
		SubscriptionID:   sub.ID,
		SubscriptionName: sub.Name,
		Type:             sub.Type,
		At:               date,
		Message:          fmt.Sprintf("%s: %d project(s) past planned end date", sub.Name, len(overdue)),
		Projects:         overdue,
	}
	return e.sendAll(ctx, sub, notification)
}

func (e *Engine) sendAll(ctx context.Context, sub alertDomain.Subscription, notif alertDomain.Notification) error {
	for _, ch := range sub.Channels {
		n := notif
		n.Channel = ch
		if err := e.notifier.Send(ctx, n); err != nil {
			continue
		}
	}
	return nil
}

// latestReading 回傳 RecordedAt 最新的一列。
func latestReading(rows []analytics.MetricRow) (analytics.MetricRow, bool) {
	if len(rows) == 0 {
		return analytics.MetricRow{}, false
	}
	latest := rows[0]
	for _, r := range rows[1:] {
		if r.RecordedAt.After(latest.RecordedAt) {
			latest = r
		}
	}
	return latest, true
}
