package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfozan-insights/internal/application/pipeline"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
	authDomain "alfozan-insights/internal/domain/auth"
	competitorDomain "alfozan-insights/internal/domain/competitor"
	"alfozan-insights/internal/domain/project"
	authinfra "alfozan-insights/internal/infrastructure/auth"
)

// metricKey 對應資料庫的 UNIQUE(metric_type, period)。
type metricKey struct {
	Type   analyticsDomain.MetricType
	Period string
}

// Store 為免資料庫部署使用的記憶體資料庫，讀取皆回傳副本。
type Store struct {
	mu          sync.RWMutex
	projects    map[int64]project.Project
	competitors map[int64]competitorDomain.Competitor
	metrics     map[metricKey]analyticsDomain.MetricRow
	users       map[string]authDomain.User
	projectSeq  int64
	compSeq     int64
	metricSeq   int64
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		projects:    make(map[int64]project.Project),
		competitors: make(map[int64]competitorDomain.Competitor),
		metrics:     make(map[metricKey]analyticsDomain.MetricRow),
		users:       make(map[string]authDomain.User),
	}
}

// --- projects.Repository impl ---

func (s *Store) CreateProject(_ context.Context, p project.Project) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectSeq++
	p.ID = s.projectSeq
	s.projects[p.ID] = p
	return p.ID, nil
}

func (s *Store) UpdateProject(_ context.Context, p project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return project.ErrNotFound
	}
	s.projects[p.ID] = p
	return nil
}

func (s *Store) GetProject(_ context.Context, id int64) (project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return p, nil
}

// ListProjects 回傳依 ID 排序的開發案副本。
func (s *Store) ListProjects(_ context.Context) ([]project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteProject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return project.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// --- competitors.Repository impl ---

func (s *Store) CreateCompetitor(_ context.Context, c competitorDomain.Competitor) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compSeq++
	c.ID = s.compSeq
	s.competitors[c.ID] = c
	return c.ID, nil
}

func (s *Store) UpdateCompetitor(_ context.Context, c competitorDomain.Competitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitors[c.ID]; !ok {
		return competitorDomain.ErrNotFound
	}
	s.competitors[c.ID] = c
	return nil
}

func (s *Store) GetCompetitor(_ context.Context, id int64) (competitorDomain.Competitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitors[id]
	if !ok {
		return competitorDomain.Competitor{}, competitorDomain.ErrNotFound
	}
	return c, nil
}

// ListCompetitors 回傳依市占率由高到低排序的競爭者副本。
func (s *Store) ListCompetitors(_ context.Context) ([]competitorDomain.Competitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]competitorDomain.Competitor, 0, len(s.competitors))
	for _, c := range s.competitors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarketShare > out[j].MarketShare })
	return out, nil
}

func (s *Store) DeleteCompetitor(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitors[id]; !ok {
		return competitorDomain.ErrNotFound
	}
	delete(s.competitors, id)
	return nil
}

// --- pipeline.Store impl ---

// CommitCycle 單一鎖內套用整輪變更，對記憶體實作天然具原子性。
// 參照不存在列的更新會整批拒絕，不留部分結果。
func (s *Store) CommitCycle(_ context.Context, result pipeline.CycleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, upd := range result.Projects {
		if _, ok := s.projects[upd.ID]; !ok {
			return project.ErrNotFound
		}
	}
	for _, upd := range result.Competitors {
		if _, ok := s.competitors[upd.ID]; !ok {
			return competitorDomain.ErrNotFound
		}
	}

	for _, upd := range result.Projects {
		p := s.projects[upd.ID]
		p.Progress = upd.Progress
		p.Status = upd.Status
		p.UnitsSold = upd.UnitsSold
		s.projects[upd.ID] = p
	}
	for _, upd := range result.Competitors {
		c := s.competitors[upd.ID]
		c.MarketShare = upd.MarketShare
		c.DigitalPresence = upd.DigitalPresence
		c.Trend = upd.Trend
		s.competitors[upd.ID] = c
	}
	for _, row := range result.Metrics {
		key := metricKey{Type: row.MetricType, Period: row.Period}
		if existing, ok := s.metrics[key]; ok {
			row.ID = existing.ID
		} else {
			s.metricSeq++
			row.ID = s.metricSeq
		}
		s.metrics[key] = row
	}
	return nil
}

// ListMetrics 回傳指定類型的指標列，依期間字串排序；
// 類型為空時回傳全部。
func (s *Store) ListMetrics(_ context.Context, metricType analyticsDomain.MetricType) ([]analyticsDomain.MetricRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]analyticsDomain.MetricRow, 0, len(s.metrics))
	for key, row := range s.metrics {
		if metricType != "" && key.Type != metricType {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].MetricType < out[j].MetricType
	})
	return out, nil
}

// --- auth.UserRepository impl ---

func (s *Store) FindByUsername(_ context.Context, username string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return authDomain.User{}, authDomain.ErrNotFound
}

func (s *Store) FindByID(_ context.Context, id string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return authDomain.User{}, authDomain.ErrNotFound
	}
	return u, nil
}

// SeedUsers 建立預設帳號供登入。
func (s *Store) SeedUsers() {
	hash := func(p string) string {
		h, err := authinfra.HashPassword(p)
		if err != nil {
			return p
		}
		return h
	}
	s.addUser("admin", hash("alfozan2024"), "Administrator", authDomain.RoleAdmin)
	s.addUser("analyst", hash("alfozan2024"), "Market Analyst", authDomain.RoleAnalyst)
	s.addUser("viewer", hash("alfozan2024"), "Viewer", authDomain.RoleViewer)
}

func (s *Store) addUser(username, password, name string, role authDomain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.users[id] = authDomain.User{
		ID:       id,
		Username: username,
		Name:     name,
		Role:     role,
		Status:   authDomain.StatusActive,
		Password: password,
	}
}

// SeedDemo 載入示範用的開發案與競爭者資料。
func (s *Store) SeedDemo(now time.Time) {
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	seedProjects := []project.Project{
		{Name: "Al Fozan Residential Complex Riyadh North", Type: project.TypeResidential,
			Status: project.StatusInProgress, Location: "Riyadh", Manager: "Khalid Al Otaibi",
			Budget: 450_000_000, Units: 320, UnitsSold: 145, Progress: 62,
			StartDate: date(2023, time.March, 1), EndDate: date(2025, time.December, 31)},
		{Name: "Jeddah Waterfront Business Tower", Type: project.TypeCommercial,
			Status: project.StatusInProgress, Location: "Jeddah", Manager: "Sara Al Ghamdi",
			Budget: 680_000_000, Units: 150, UnitsSold: 42, Progress: 38,
			StartDate: date(2023, time.September, 15), EndDate: date(2026, time.June, 30)},
		{Name: "Dammam Industrial Logistics Park", Type: project.TypeIndustrial,
			Status: project.StatusInProgress, Location: "Dammam", Manager: "Fahad Al Dossary",
			Budget: 290_000_000, Units: 85, UnitsSold: 30, Progress: 55,
			StartDate: date(2023, time.June, 1), EndDate: date(2025, time.September, 30)},
		{Name: "Khobar Mixed-Use Development", Type: project.TypeMixed,
			Status: project.StatusPlanning, Location: "Khobar", Manager: "Noura Al Shehri",
			Budget: 520_000_000, Units: 240, UnitsSold: 0, Progress: 5,
			StartDate: date(2024, time.February, 1), EndDate: date(2027, time.March, 31)},
		{Name: "Riyadh Gateway Villas", Type: project.TypeResidential,
			Status: project.StatusCompleted, Location: "Riyadh", Manager: "Khalid Al Otaibi",
			Budget: 180_000_000, Units: 96, UnitsSold: 96, Progress: 100,
			StartDate: date(2021, time.May, 1), EndDate: date(2023, time.November, 30)},
	}
	seedCompetitors := []competitorDomain.Competitor{
		{Name: "Emaar Middle East", MarketShare: 18.5, DigitalPresence: 85,
			Website: "emaar.com", RecentActivity: "Launched new waterfront community in Jeddah",
			Trend: competitorDomain.TrendUp, ChangePercentage: "+2.3%"},
		{Name: "Dar Al Arkan", MarketShare: 15.2, DigitalPresence: 78,
			Website: "alarkan.com", RecentActivity: "Announced partnership with international hotel chain",
			Trend: competitorDomain.TrendUp, ChangePercentage: "+1.1%"},
		{Name: "Jabal Omar Development", MarketShare: 12.8, DigitalPresence: 65,
			Website: "jabalomar.com.sa", RecentActivity: "Completed phase two of Makkah project",
			Trend: competitorDomain.TrendStable, ChangePercentage: "0%"},
		{Name: "Saudi Real Estate Company", MarketShare: 10.4, DigitalPresence: 58,
			Website: "al-akaria.com", RecentActivity: "Expanded portfolio in Eastern Province",
			Trend: competitorDomain.TrendDown, ChangePercentage: "-0.8%"},
		{Name: "Retal Urban Development", MarketShare: 8.9, DigitalPresence: 72,
			Website: "retal.com.sa", RecentActivity: "IPO oversubscribed, raising expansion capital",
			Trend: competitorDomain.TrendUp, ChangePercentage: "+1.7%"},
	}

	ctx := context.Background()
	for _, p := range seedProjects {
		p.CreatedAt = now
		_, _ = s.CreateProject(ctx, p)
	}
	for _, c := range seedCompetitors {
		c.CreatedAt = now
		_, _ = s.CreateCompetitor(ctx, c)
	}
}
