package projects

import (
	"context"
	"time"

	"alfozan-insights/internal/domain/project"
)

// Repository 封裝開發案持久化。
type Repository interface {
	CreateProject(ctx context.Context, p project.Project) (int64, error)
	UpdateProject(ctx context.Context, p project.Project) error
	GetProject(ctx context.Context, id int64) (project.Project, error)
	ListProjects(ctx context.Context) ([]project.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Service 聚合開發案 CRUD。
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

// Create 建立新開發案並設定預設值。
func (s *Service) Create(ctx context.Context, input project.Project) (project.Project, error) {
	input.ID = 0
	input.ApplyDefaults()
	if input.CreatedAt.IsZero() {
		input.CreatedAt = s.now()
	}
	if err := input.Validate(); err != nil {
		return input, err
	}
	id, err := s.repo.CreateProject(ctx, input)
	if err != nil {
		return input, err
	}
	input.ID = id
	return input, nil
}

// UpdateInput 定義部分更新，nil 欄位維持原值。
type UpdateInput struct {
	Name      *string         `json:"name"`
	Type      *project.Type   `json:"type"`
	Status    *project.Status `json:"status"`
	Location  *string         `json:"location"`
	Manager   *string         `json:"manager"`
	Budget    *float64        `json:"budget"`
	Units     *int            `json:"units"`
	UnitsSold *int            `json:"units_sold"`
	Progress  *int            `json:"progress"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
}

// Update 合併輸入後更新開發案。
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (project.Project, error) {
	current, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, err
	}
	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Type != nil {
		current.Type = *input.Type
	}
	if input.Status != nil {
		current.Status = *input.Status
	}
	if input.Location != nil {
		current.Location = *input.Location
	}
	if input.Manager != nil {
		current.Manager = *input.Manager
	}
	if input.Budget != nil {
		current.Budget = *input.Budget
	}
	if input.Units != nil {
		current.Units = *input.Units
	}
	if input.UnitsSold != nil {
		current.UnitsSold = *input.UnitsSold
	}
	if input.Progress != nil {
		current.Progress = *input.Progress
	}
	if input.StartDate != nil {
		current.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		current.EndDate = input.EndDate
	}
	if err := current.Validate(); err != nil {
		return current, err
	}
	if err := s.repo.UpdateProject(ctx, current); err != nil {
		return current, err
	}
	return current, nil
}

// Get 取得單筆開發案。
func (s *Service) Get(ctx context.Context, id int64) (project.Project, error) {
	return s.repo.GetProject(ctx, id)
}

// List 查詢開發案列表。
func (s *Service) List(ctx context.Context) ([]project.Project, error) {
	return s.repo.ListProjects(ctx)
}

// Delete 刪除開發案。
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteProject(ctx, id)
}
