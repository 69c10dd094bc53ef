// Package jsonstore provides a JSON file-based implementation of the goal
// and task repositories.
package jsonstore

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/runoshun/goalpost/internal/domain"
)

// storeData represents the JSON file structure. Goals, plans, and counters
// are keyed by decimal goal ID; tasks are keyed by goal ID and then by their
// dot-notation task ID.
type storeData struct {
	Goals    map[string]*goalData            `json:"goals"`
	Plans    map[string]*planData            `json:"plans"`
	Tasks    map[string]map[string]*taskData `json:"tasks"`
	Counters map[string]map[string]int64     `json:"counters"`
	Meta     meta                            `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextGoalID int64 `json:"nextGoalID"`
}

// goalData is the JSON representation of a goal (without ID, which is the map key).
type goalData = domain.Goal

// planData is the JSON representation of a plan (without goal ID, which is the map key).
type planData = domain.Plan

// taskData is the JSON representation of a task (without IDs, which are the map keys).
type taskData = domain.Task

// Store implements domain.GoalRepository and domain.TaskRepository using a
// single JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it is created by Initialize.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Ensure Store implements the repository interfaces.
var (
	_ domain.GoalRepository   = (*Store)(nil)
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

func goalKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// NextGoalID allocates the next goal ID.
func (s *Store) NextGoalID() (int64, error) {
	var id int64
	err := s.withLockWrite(func(data *storeData) error {
		id = data.Meta.NextGoalID
		data.Meta.NextGoalID++
		return nil
	})
	return id, err
}

// GetGoal retrieves a goal by ID. Returns nil if not found.
func (s *Store) GetGoal(id int64) (*domain.Goal, error) {
	var goal *domain.Goal
	err := s.withLock(func(data *storeData) error {
		if g, ok := data.Goals[goalKey(id)]; ok {
			goal = g
			goal.ID = id
		}
		return nil
	})
	return goal, err
}

// ListGoals retrieves all goals ordered by ID.
func (s *Store) ListGoals() ([]*domain.Goal, error) {
	var goals []*domain.Goal
	err := s.withLock(func(data *storeData) error {
		for key, g := range data.Goals {
			id, _ := strconv.ParseInt(key, 10, 64)
			g.ID = id
			goals = append(goals, g)
		}
		return nil
	})

	slices.SortFunc(goals, func(a, b *domain.Goal) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return goals, err
}

// SaveGoal creates or updates a goal. The goal's counter bucket is created
// alongside it so sequence state exists from the moment the goal does.
func (s *Store) SaveGoal(goal *domain.Goal) error {
	return s.withLockWrite(func(data *storeData) error {
		key := goalKey(goal.ID)
		data.Goals[key] = goal
		if data.Counters[key] == nil {
			data.Counters[key] = map[string]int64{domain.RootParentKey: 0}
		}
		return nil
	})
}

// GetPlan retrieves the plan for a goal. Returns nil if not found.
func (s *Store) GetPlan(goalID int64) (*domain.Plan, error) {
	var plan *domain.Plan
	err := s.withLock(func(data *storeData) error {
		if p, ok := data.Plans[goalKey(goalID)]; ok {
			plan = p
			plan.GoalID = goalID
		}
		return nil
	})
	return plan, err
}

// SavePlan creates or updates a plan.
func (s *Store) SavePlan(plan *domain.Plan) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Plans[goalKey(plan.GoalID)] = plan
		return nil
	})
}

// Get retrieves a task by goal and task ID. Returns nil if not found.
func (s *Store) Get(goalID int64, taskID string) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		if t, ok := data.Tasks[goalKey(goalID)][taskID]; ok {
			task = t
			task.ID = taskID
			task.GoalID = goalID
		}
		return nil
	})
	return task, err
}

// ListByGoal retrieves every task of a goal, deleted included, in
// hierarchical ID order.
func (s *Store) ListByGoal(goalID int64) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.withLock(func(data *storeData) error {
		for id, t := range data.Tasks[goalKey(goalID)] {
			t.ID = id
			t.GoalID = goalID
			tasks = append(tasks, t)
		}
		return nil
	})

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return domain.CompareTaskIDs(a.ID, b.ID)
	})

	return tasks, err
}

// ListChildren retrieves the direct children of a parent task (nil parentID
// = top-level tasks), deleted included, in ID order.
func (s *Store) ListChildren(goalID int64, parentID *string) ([]*domain.Task, error) {
	all, err := s.ListByGoal(goalID)
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

// Save creates or updates a single task.
func (s *Store) Save(task *domain.Task) error {
	return s.withLockWrite(func(data *storeData) error {
		key := goalKey(task.GoalID)
		if data.Tasks[key] == nil {
			data.Tasks[key] = make(map[string]*taskData)
		}
		data.Tasks[key][task.ID] = task
		return nil
	})
}

// SaveAll creates or updates a batch of tasks in one write.
func (s *Store) SaveAll(tasks []*domain.Task) error {
	return s.withLockWrite(func(data *storeData) error {
		for _, task := range tasks {
			key := goalKey(task.GoalID)
			if data.Tasks[key] == nil {
				data.Tasks[key] = make(map[string]*taskData)
			}
			data.Tasks[key][task.ID] = task
		}
		return nil
	})
}

// NextSeq advances and returns the sibling counter for (goalID, parentKey).
// The counter bucket is created lazily if the goal's entry is missing.
func (s *Store) NextSeq(goalID int64, parentKey string) (int64, error) {
	var seq int64
	err := s.withLockWrite(func(data *storeData) error {
		key := goalKey(goalID)
		if data.Counters[key] == nil {
			data.Counters[key] = map[string]int64{domain.RootParentKey: 0}
		}
		seq = data.Counters[key][parentKey] + 1
		data.Counters[key][parentKey] = seq
		return nil
	})
	return seq, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	// Create empty store
	data := &storeData{
		Meta:     meta{NextGoalID: 1},
		Goals:    make(map[string]*goalData),
		Plans:    make(map[string]*planData),
		Tasks:    make(map[string]map[string]*taskData),
		Counters: make(map[string]map[string]int64),
	}

	return s.write(data)
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	// Ensure maps are initialized
	if data.Goals == nil {
		data.Goals = make(map[string]*goalData)
	}
	if data.Plans == nil {
		data.Plans = make(map[string]*planData)
	}
	if data.Tasks == nil {
		data.Tasks = make(map[string]map[string]*taskData)
	}
	if data.Counters == nil {
		data.Counters = make(map[string]map[string]int64)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
