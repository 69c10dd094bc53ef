// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"time"

	"github.com/runoshun/goalpost/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockGoalRepository is a test double for domain.GoalRepository.
// Fields are ordered to minimize memory padding.
type MockGoalRepository struct {
	Goals         map[int64]*domain.Goal
	Plans         map[int64]*domain.Plan
	NextGoalIDErr error
	GetGoalErr    error
	ListGoalsErr  error
	SaveGoalErr   error
	GetPlanErr    error
	SavePlanErr   error
	NextGoalIDN   int64
}

// Ensure MockGoalRepository implements domain.GoalRepository interface.
var _ domain.GoalRepository = (*MockGoalRepository)(nil)

// NewMockGoalRepository creates a new MockGoalRepository with initialized maps.
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		Goals:       make(map[int64]*domain.Goal),
		Plans:       make(map[int64]*domain.Plan),
		NextGoalIDN: 1,
	}
}

// NextGoalID returns the next available goal ID.
func (m *MockGoalRepository) NextGoalID() (int64, error) {
	if m.NextGoalIDErr != nil {
		return 0, m.NextGoalIDErr
	}
	id := m.NextGoalIDN
	m.NextGoalIDN++
	return id, nil
}

// GetGoal retrieves a goal by ID.
func (m *MockGoalRepository) GetGoal(id int64) (*domain.Goal, error) {
	if m.GetGoalErr != nil {
		return nil, m.GetGoalErr
	}
	goal, ok := m.Goals[id]
	if !ok {
		return nil, nil
	}
	return goal, nil
}

// ListGoals returns all goals ordered by ID.
func (m *MockGoalRepository) ListGoals() ([]*domain.Goal, error) {
	if m.ListGoalsErr != nil {
		return nil, m.ListGoalsErr
	}
	goals := make([]*domain.Goal, 0, len(m.Goals))
	for id := int64(1); id < m.NextGoalIDN; id++ {
		if g, ok := m.Goals[id]; ok {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

// SaveGoal saves a goal.
func (m *MockGoalRepository) SaveGoal(goal *domain.Goal) error {
	if m.SaveGoalErr != nil {
		return m.SaveGoalErr
	}
	m.Goals[goal.ID] = goal
	if goal.ID >= m.NextGoalIDN {
		m.NextGoalIDN = goal.ID + 1
	}
	return nil
}

// GetPlan retrieves a plan by goal ID.
func (m *MockGoalRepository) GetPlan(goalID int64) (*domain.Plan, error) {
	if m.GetPlanErr != nil {
		return nil, m.GetPlanErr
	}
	plan, ok := m.Plans[goalID]
	if !ok {
		return nil, nil
	}
	return plan, nil
}

// SavePlan saves a plan.
func (m *MockGoalRepository) SavePlan(plan *domain.Plan) error {
	if m.SavePlanErr != nil {
		return m.SavePlanErr
	}
	m.Plans[plan.GoalID] = plan
	return nil
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks      map[int64]map[string]*domain.Task
	Counters   map[int64]map[string]int64
	GetErr     error
	ListErr    error
	SaveErr    error
	SaveAllErr error
	NextSeqErr error
}

// Ensure MockTaskRepository implements domain.TaskRepository interface.
var _ domain.TaskRepository = (*MockTaskRepository)(nil)

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:    make(map[int64]map[string]*domain.Task),
		Counters: make(map[int64]map[string]int64),
	}
}

// Put inserts a task directly, for seeding test state.
func (m *MockTaskRepository) Put(task *domain.Task) {
	if m.Tasks[task.GoalID] == nil {
		m.Tasks[task.GoalID] = make(map[string]*domain.Task)
	}
	m.Tasks[task.GoalID][task.ID] = task
}

// Get retrieves a task by goal and task ID.
func (m *MockTaskRepository) Get(goalID int64, taskID string) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[goalID][taskID]
	if !ok {
		return nil, nil
	}
	return task, nil
}

// ListByGoal returns all tasks of a goal in hierarchical ID order.
func (m *MockTaskRepository) ListByGoal(goalID int64) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ids := make([]string, 0, len(m.Tasks[goalID]))
	for id := range m.Tasks[goalID] {
		ids = append(ids, id)
	}
	domain.SortTaskIDs(ids)
	tasks := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, m.Tasks[goalID][id])
	}
	return tasks, nil
}

// ListChildren returns direct children of a parent in hierarchical ID order.
func (m *MockTaskRepository) ListChildren(goalID int64, parentID *string) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	all, err := m.ListByGoal(goalID)
	if err != nil {
		return nil, err
	}
	var tasks []*domain.Task
	for _, t := range all {
		switch {
		case parentID == nil && t.ParentID == nil:
			tasks = append(tasks, t)
		case parentID != nil && t.ParentID != nil && *t.ParentID == *parentID:
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Save saves a task.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Put(task)
	return nil
}

// SaveAll saves a batch of tasks.
func (m *MockTaskRepository) SaveAll(tasks []*domain.Task) error {
	if m.SaveAllErr != nil {
		return m.SaveAllErr
	}
	for _, t := range tasks {
		m.Put(t)
	}
	return nil
}

// NextSeq advances and returns the sibling counter for (goalID, parentKey).
func (m *MockTaskRepository) NextSeq(goalID int64, parentKey string) (int64, error) {
	if m.NextSeqErr != nil {
		return 0, m.NextSeqErr
	}
	if m.Counters[goalID] == nil {
		m.Counters[goalID] = make(map[string]int64)
	}
	m.Counters[goalID][parentKey]++
	return m.Counters[goalID][parentKey], nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitializeErr error
	Initialized   bool
}

// Ensure MockStoreInitializer implements domain.StoreInitializer interface.
var _ domain.StoreInitializer = (*MockStoreInitializer)(nil)

// Initialize records the call and returns configured error.
func (m *MockStoreInitializer) Initialize() error {
	if m.InitializeErr != nil {
		return m.InitializeErr
	}
	m.Initialized = true
	return nil
}

// IsInitialized reports whether Initialize has been called.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

// Ensure NopLogger implements domain.Logger interface.
var _ domain.Logger = (*NopLogger)(nil)

// Debug discards the message.
func (NopLogger) Debug(int64, string, string) {}

// Info discards the message.
func (NopLogger) Info(int64, string, string) {}

// Warn discards the message.
func (NopLogger) Warn(int64, string, string) {}

// Error discards the message.
func (NopLogger) Error(int64, string, string) {}
