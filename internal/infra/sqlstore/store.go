// Package sqlstore provides a SQLite-backed implementation of the goal and
// task repositories using GORM.
package sqlstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/runoshun/goalpost/internal/domain"
)

// Store implements domain.GoalRepository and domain.TaskRepository on top of
// a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Ensure Store implements the repository interfaces.
var (
	_ domain.GoalRepository   = (*Store)(nil)
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Initialize creates or updates the schema. It is idempotent.
func (s *Store) Initialize() error {
	err := s.db.AutoMigrate(
		&goalRecord{},
		&planRecord{},
		&taskRecord{},
		&counterRecord{},
		&metaRecord{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	m := metaRecord{ID: 1, NextGoalID: 1}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		return fmt.Errorf("seed meta row: %w", err)
	}
	return nil
}

// IsInitialized reports whether the schema has been created.
func (s *Store) IsInitialized() bool {
	return s.db.Migrator().HasTable(&metaRecord{})
}

// NextGoalID allocates the next goal ID.
func (s *Store) NextGoalID() (int64, error) {
	var id int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var m metaRecord
		if err := tx.Where("id = ?", 1).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotInitialized
			}
			return fmt.Errorf("read meta row: %w", err)
		}
		id = m.NextGoalID
		if err := tx.Model(&metaRecord{}).Where("id = ?", 1).Update("next_goal_id", id+1).Error; err != nil {
			return fmt.Errorf("advance goal ID: %w", err)
		}
		return nil
	})
	return id, err
}

// GetGoal retrieves a goal by ID. Returns nil if not found.
func (s *Store) GetGoal(id int64) (*domain.Goal, error) {
	var rec goalRecord
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	return recordToGoal(rec), nil
}

// ListGoals retrieves all goals ordered by ID.
func (s *Store) ListGoals() ([]*domain.Goal, error) {
	var recs []goalRecord
	if err := s.db.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals := make([]*domain.Goal, 0, len(recs))
	for _, rec := range recs {
		goals = append(goals, recordToGoal(rec))
	}
	return goals, nil
}

// SaveGoal creates or updates a goal. The goal's root counter row is created
// alongside it so sequence state exists from the moment the goal does.
func (s *Store) SaveGoal(goal *domain.Goal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		rec := goalToRecord(goal)
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
			return fmt.Errorf("save goal %d: %w", goal.ID, err)
		}
		counter := counterRecord{GoalID: goal.ID, ParentKey: domain.RootParentKey}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
			return fmt.Errorf("seed counter for goal %d: %w", goal.ID, err)
		}
		return nil
	})
}

// GetPlan retrieves the plan for a goal. Returns nil if not found.
func (s *Store) GetPlan(goalID int64) (*domain.Plan, error) {
	var rec planRecord
	if err := s.db.Where("goal_id = ?", goalID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan for goal %d: %w", goalID, err)
	}
	return recordToPlan(rec), nil
}

// SavePlan creates or updates a plan.
func (s *Store) SavePlan(plan *domain.Plan) error {
	rec := planToRecord(plan)
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("save plan for goal %d: %w", plan.GoalID, err)
	}
	return nil
}

// Get retrieves a task by goal and task ID. Returns nil if not found.
func (s *Store) Get(goalID int64, taskID string) (*domain.Task, error) {
	var rec taskRecord
	if err := s.db.Where("goal_id = ? AND id = ?", goalID, taskID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	return recordToTask(rec), nil
}

// ListByGoal retrieves every task of a goal, deleted included, in
// hierarchical ID order. Ordering is done in memory because dot-notation IDs
// compare numerically per segment, not lexicographically.
func (s *Store) ListByGoal(goalID int64) ([]*domain.Task, error) {
	var recs []taskRecord
	if err := s.db.Where("goal_id = ?", goalID).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list tasks for goal %d: %w", goalID, err)
	}
	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, recordToTask(rec))
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return domain.CompareTaskIDs(a.ID, b.ID)
	})
	return tasks, nil
}

// ListChildren retrieves the direct children of a parent task (nil parentID
// = top-level tasks), deleted included, in ID order.
func (s *Store) ListChildren(goalID int64, parentID *string) ([]*domain.Task, error) {
	q := s.db.Where("goal_id = ?", goalID)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var recs []taskRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list children for goal %d: %w", goalID, err)
	}
	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, recordToTask(rec))
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return domain.CompareTaskIDs(a.ID, b.ID)
	})
	return tasks, nil
}

// Save creates or updates a single task.
func (s *Store) Save(task *domain.Task) error {
	rec := taskToRecord(task)
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return nil
}

// SaveAll creates or updates a batch of tasks in one transaction.
func (s *Store) SaveAll(tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	recs := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		recs = append(recs, taskToRecord(task))
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&recs).Error; err != nil {
		return fmt.Errorf("save %d tasks: %w", len(tasks), err)
	}
	return nil
}

// NextSeq advances and returns the sibling counter for (goalID, parentKey).
// The counter row is created lazily if the pair has never been seen.
func (s *Store) NextSeq(goalID int64, parentKey string) (int64, error) {
	var seq int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var counter counterRecord
		err := tx.Where("goal_id = ? AND parent_key = ?", goalID, parentKey).First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = counterRecord{GoalID: goalID, ParentKey: parentKey, Seq: 1}
			if err := tx.Create(&counter).Error; err != nil {
				return fmt.Errorf("create counter %d/%s: %w", goalID, parentKey, err)
			}
			seq = 1
			return nil
		}
		if err != nil {
			return fmt.Errorf("read counter %d/%s: %w", goalID, parentKey, err)
		}
		seq = counter.Seq + 1
		if err := tx.Model(&counterRecord{}).
			Where("goal_id = ? AND parent_key = ?", goalID, parentKey).
			Update("seq", seq).Error; err != nil {
			return fmt.Errorf("advance counter %d/%s: %w", goalID, parentKey, err)
		}
		return nil
	})
	return seq, err
}
