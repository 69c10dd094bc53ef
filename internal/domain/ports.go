package domain

import "time"

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist. It is idempotent.
	Initialize() error

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// GoalRepository manages goal and plan persistence.
type GoalRepository interface {
	// NextGoalID allocates the next goal ID. IDs start at 1 and are never reused.
	NextGoalID() (int64, error)

	// GetGoal retrieves a goal by ID. Returns nil if not found.
	GetGoal(id int64) (*Goal, error)

	// ListGoals retrieves all goals ordered by ID.
	ListGoals() ([]*Goal, error)

	// SaveGoal creates or updates a goal.
	SaveGoal(goal *Goal) error

	// GetPlan retrieves the plan for a goal. Returns nil if not found.
	GetPlan(goalID int64) (*Plan, error)

	// SavePlan creates or updates a plan.
	SavePlan(plan *Plan) error
}

// TaskRepository manages task persistence and sibling counters.
type TaskRepository interface {
	// Get retrieves a task by goal and task ID. Returns nil if not found.
	// Deleted tasks are returned like any other.
	Get(goalID int64, taskID string) (*Task, error)

	// ListByGoal retrieves every task of a goal, deleted included,
	// in hierarchical ID order.
	ListByGoal(goalID int64) ([]*Task, error)

	// ListChildren retrieves the direct children of a parent task
	// (nil parentID = top-level tasks), deleted included, in ID order.
	ListChildren(goalID int64, parentID *string) ([]*Task, error)

	// Save creates or updates a single task.
	Save(task *Task) error

	// SaveAll creates or updates a batch of tasks in one write.
	SaveAll(tasks []*Task) error

	// NextSeq advances and returns the sibling counter for (goalID, parentKey).
	// Counters start at 1 and are never reset, so sequence numbers are
	// unique per parent for the lifetime of the goal.
	NextSeq(goalID int64, parentKey string) (int64, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Logger writes application logs to the global log and, when a goal ID is
// given, to that goal's log file. A goal ID of 0 means no goal context.
type Logger interface {
	// Debug logs a debug message.
	Debug(goalID int64, category, msg string)

	// Info logs an info message.
	Info(goalID int64, category, msg string)

	// Warn logs a warning message.
	Warn(goalID int64, category, msg string)

	// Error logs an error message.
	Error(goalID int64, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (local + global).
	Load() (*Config, error)
}
