package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/pkg/errors"
)

// MockServiceLogRepository is a mock implementation of ServiceLogRepository
type MockServiceLogRepository struct {
	mock.Mock
}

func (m *MockServiceLogRepository) Create(ctx context.Context, log *domain.ServiceLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockServiceLogRepository) TallyByNeighborhood(ctx context.Context, serviceType domain.ServiceType, date time.Time) ([]domain.NeighborhoodTally, error) {
	args := m.Called(ctx, serviceType, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NeighborhoodTally), args.Error(1)
}

func (m *MockServiceLogRepository) ServiceTypesByReporter(ctx context.Context, reporterID uuid.UUID, date time.Time) ([]domain.ServiceType, error) {
	args := m.Called(ctx, reporterID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceType), args.Error(1)
}

func (m *MockServiceLogRepository) DailyAvailability(ctx context.Context, date time.Time) ([]domain.ServiceAvailability, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceAvailability), args.Error(1)
}

// MockCacheRepository is a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Методы heatmap принимают в Return как значение, так и функцию от аргументов вызова
func (m *MockCacheRepository) GetHeatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) (*domain.Heatmap, error) {
	args := m.Called(ctx, serviceType, date)
	if fn, ok := args.Get(0).(func(context.Context, domain.ServiceType, time.Time) *domain.Heatmap); ok {
		return fn(ctx, serviceType, date), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Heatmap), args.Error(1)
}

func (m *MockCacheRepository) HeatmapGeneration(ctx context.Context, serviceType domain.ServiceType, date time.Time) (int64, error) {
	args := m.Called(ctx, serviceType, date)
	if fn, ok := args.Get(0).(func(context.Context, domain.ServiceType, time.Time) int64); ok {
		return fn(ctx, serviceType, date), args.Error(1)
	}
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetHeatmap(ctx context.Context, hm *domain.Heatmap, date time.Time, generation int64, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, hm, date, generation, ttl)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Heatmap, time.Time, int64, time.Duration) bool); ok {
		return fn(ctx, hm, date, generation, ttl), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) InvalidateHeatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) error {
	return m.Called(ctx, serviceType, date).Error(0)
}

// MockDepartmentRepository is a mock implementation of DepartmentRepository
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) GetBySlug(ctx context.Context, slug string) (*domain.Department, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) SlugForUser(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// MockZoneRepository is a mock implementation of ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) Create(ctx context.Context, zone *domain.Zone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *MockZoneRepository) Get(ctx context.Context, id int64) (*domain.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Zone), args.Error(1)
}

func (m *MockZoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *MockZoneRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockZoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Zone), args.Error(1)
}

func (m *MockZoneRepository) ListByNames(ctx context.Context, names []string) ([]domain.Zone, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Zone), args.Error(1)
}

// MockNotificationPublisher is a mock implementation of NotificationPublisher
type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) PublishServiceAvailable(ctx context.Context, event domain.ServiceAvailableEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, recipients []uuid.UUID, payload domain.NotificationPayload) ([]domain.DeliveryFailure, error) {
	args := m.Called(ctx, recipients, payload)
	if fn, ok := args.Get(0).(func(context.Context, []uuid.UUID, domain.NotificationPayload) []domain.DeliveryFailure); ok {
		return fn(ctx, recipients, payload), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryFailure), args.Error(1)
}

// MockProblemReportRepository is a mock implementation of ProblemReportRepository
type MockProblemReportRepository struct {
	mock.Mock
}

func (m *MockProblemReportRepository) Create(ctx context.Context, report *domain.ProblemReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockProblemReportRepository) List(ctx context.Context, filter domain.ProblemReportFilter) ([]domain.ProblemReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProblemReport), args.Error(1)
}

// memoryTrendCounter - сортированное множество в памяти с той же семантикой,
// что и Lua скрипт в Redis
type memoryTrendCounter struct {
	mu      sync.Mutex
	entries map[string]map[string]time.Time
	err     error
}

func newMemoryTrendCounter() *memoryTrendCounter {
	return &memoryTrendCounter{entries: map[string]map[string]time.Time{}}
}

func (c *memoryTrendCounter) Record(_ context.Context, key, member string, at time.Time, window time.Duration) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return 0, false, c.err
	}

	set, ok := c.entries[key]
	if !ok {
		set = map[string]time.Time{}
		c.entries[key] = set
	}

	added := false
	if _, exists := set[member]; !exists {
		set[member] = at
		added = true
	}

	from := at.Add(-window)
	var count int64
	for m, ts := range set {
		if ts.Before(from) {
			delete(set, m)
			continue
		}
		count++
	}
	return count, added, nil
}

// memoryUserDirectory - справочник жителей для проверки постраничной рассылки
type memoryUserDirectory struct {
	byNeighborhood map[string][]uuid.UUID
	calls          int
	err            error
}

func newMemoryUserDirectory(neighborhood string, users []uuid.UUID) *memoryUserDirectory {
	sorted := append([]uuid.UUID(nil), users...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	return &memoryUserDirectory{byNeighborhood: map[string][]uuid.UUID{neighborhood: sorted}}
}

func (d *memoryUserDirectory) ListIDsInNeighborhood(_ context.Context, neighborhood string, exclude *uuid.UUID, after *uuid.UUID, limit int) ([]uuid.UUID, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}

	var out []uuid.UUID
	for _, id := range d.byNeighborhood[neighborhood] {
		if exclude != nil && id == *exclude {
			continue
		}
		if after != nil && id.String() <= after.String() {
			continue
		}
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// memoryAssetRepository - хранилище узлов и линий в памяти
type memoryAssetRepository struct {
	mu     sync.Mutex
	nextID int64
	nodes  map[int64]domain.Node
	lines  map[int64]domain.Line
	writes int
}

func newMemoryAssetRepository() *memoryAssetRepository {
	return &memoryAssetRepository{
		nodes: map[int64]domain.Node{},
		lines: map[int64]domain.Line{},
	}
}

func (r *memoryAssetRepository) CreateNode(_ context.Context, node *domain.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.writes++
	node.ID = r.nextID
	r.nodes[node.ID] = *node
	return nil
}

func (r *memoryAssetRepository) GetNode(_ context.Context, id int64) (*domain.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[id]
	if !ok {
		return nil, errors.ErrNodeNotFound
	}
	return &n, nil
}

func (r *memoryAssetRepository) UpdateNode(_ context.Context, id int64, patch domain.AssetPatch) (*domain.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[id]
	if !ok {
		return nil, errors.ErrNodeNotFound
	}
	if patch.Status != nil {
		n.Status = *patch.Status
	}
	if patch.Metadata != nil {
		n.Metadata = *patch.Metadata
	}
	r.writes++
	r.nodes[id] = n
	return &n, nil
}

func (r *memoryAssetRepository) DeleteNode(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[id]; !ok {
		return errors.ErrNodeNotFound
	}
	r.writes++
	delete(r.nodes, id)
	return nil
}

func (r *memoryAssetRepository) ListNodes(_ context.Context) ([]domain.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryAssetRepository) CreateLine(_ context.Context, line *domain.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.writes++
	line.ID = r.nextID
	r.lines[line.ID] = *line
	return nil
}

func (r *memoryAssetRepository) GetLine(_ context.Context, id int64) (*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[id]
	if !ok {
		return nil, errors.ErrLineNotFound
	}
	return &l, nil
}

func (r *memoryAssetRepository) UpdateLine(_ context.Context, id int64, patch domain.AssetPatch) (*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[id]
	if !ok {
		return nil, errors.ErrLineNotFound
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.Metadata != nil {
		l.Metadata = *patch.Metadata
	}
	r.writes++
	r.lines[id] = l
	return &l, nil
}

func (r *memoryAssetRepository) DeleteLine(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[id]; !ok {
		return errors.ErrLineNotFound
	}
	r.writes++
	delete(r.lines, id)
	return nil
}

func (r *memoryAssetRepository) ListLines(_ context.Context) ([]domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Line, 0, len(r.lines))
	for _, l := range r.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
