package competitors

import (
	"context"
	"time"

	"alfozan-insights/internal/domain/competitor"
)

// Repository 封裝競爭者持久化。
type Repository interface {
	CreateCompetitor(ctx context.Context, c competitor.Competitor) (int64, error)
	UpdateCompetitor(ctx context.Context, c competitor.Competitor) error
	GetCompetitor(ctx context.Context, id int64) (competitor.Competitor, error)
	ListCompetitors(ctx context.Context) ([]competitor.Competitor, error)
	DeleteCompetitor(ctx context.Context, id int64) error
}

// Service 聚合競爭者 CRUD。
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService 建立服務。
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create 建立競爭者觀測紀錄並設定預設值。
func (s *Service) Create(ctx context.Context, input competitor.Competitor) (competitor.Competitor, error) {
	input.ID = 0
	input.ApplyDefaults()
	if input.CreatedAt.IsZero() {
		input.CreatedAt = s.now()
	}
	if err := input.Validate(); err != nil {
		return input, err
	}
	id, err := s.repo.CreateCompetitor(ctx, input)
	if err != nil {
		return input, err
	}
	input.ID = id
	return input, nil
}

// UpdateInput 定義部分更新，nil 欄位維持原值。
type UpdateInput struct {
	Name             *string           `json:"name"`
	MarketShare      *float64          `json:"market_share"`
	DigitalPresence  *int              `json:"digital_presence"`
	Website          *string           `json:"website"`
	RecentActivity   *string           `json:"recent_activity"`
	Trend            *competitor.Trend `json:"trend"`
	ChangePercentage *string           `json:"change_percentage"`
}

// Update 合併輸入後更新競爭者。
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (competitor.Competitor, error) {
	current, err := s.repo.GetCompetitor(ctx, id)
	if err != nil {
		return competitor.Competitor{}, err
	}
	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.MarketShare != nil {
		current.MarketShare = *input.MarketShare
	}
	if input.DigitalPresence != nil {
		current.DigitalPresence = *input.DigitalPresence
	}
	if input.Website != nil {
		current.Website = *input.Website
	}
	if input.RecentActivity != nil {
		current.RecentActivity = *input.RecentActivity
	}
	if input.Trend != nil {
		current.Trend = *input.Trend
	}
	if input.ChangePercentage != nil {
		current.ChangePercentage = *input.ChangePercentage
	}
	if err := current.Validate(); err != nil {
		return current, err
	}
	if err := s.repo.UpdateCompetitor(ctx, current); err != nil {
		return current, err
	}
	return current, nil
}

// Get 取得單筆競爭者。
func (s *Service) Get(ctx context.Context, id int64) (competitor.Competitor, error) {
	return s.repo.GetCompetitor(ctx, id)
}

// List 查詢競爭者列表。
func (s *Service) List(ctx context.Context) ([]competitor.Competitor, error) {
	return s.repo.ListCompetitors(ctx)
}

// Delete 刪除競爭者。
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCompetitor(ctx, id)
}
