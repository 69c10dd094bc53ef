// Package domain contains core business entities and interfaces.
package domain

import "time"

// Goal represents a named unit of work scope owning a tree of tasks.
// Goals are immutable after creation and are never deleted.
// Fields are ordered to minimize memory padding.
type Goal struct {
	CreatedAt   time.Time `json:"createdAt"`   // Creation time
	Description string    `json:"description"` // Free-text description (required)
	RepoName    string    `json:"repoName"`    // External repository label
	ID          int64     `json:"-"`           // Goal ID (stored as map key, not in value)
}

// Plan is the planning record attached to a goal. Task membership is not
// stored here; it is derived from the task set by goal ID.
type Plan struct {
	UpdatedAt time.Time `json:"updatedAt"` // Refreshed whenever a task is added
	GoalID    int64     `json:"-"`         // Owning goal ID (stored as map key)
}

// Task is a hierarchical unit of work with a stable dot-notation identifier
// (for example "1", "1.1", "1.1.2"). Identifiers are minted once and never
// reused or renumbered, even after soft-deletion.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time `json:"createdAt"`   // Creation time
	UpdatedAt   time.Time `json:"updatedAt"`   // Refreshed on every mutation
	ParentID    *string   `json:"parentID"`    // Parent task ID (nil = top-level)
	Title       string    `json:"title"`       // Title (required)
	Description string    `json:"description"` // Description (required)
	ID          string    `json:"-"`           // Dot-notation ID (stored as map key)
	GoalID      int64     `json:"-"`           // Owning goal ID (stored as map key)
	IsComplete  bool      `json:"isComplete"`  // Completion flag
	Deleted     bool      `json:"deleted"`     // Soft-delete marker; the record is retained forever
}

// IsRoot returns true if this is a top-level task (no parent).
func (t *Task) IsRoot() bool {
	return t.ParentID == nil
}

// ParentKey returns the counter key scoping this task's siblings:
// "root" for top-level tasks, the parent's ID otherwise.
func (t *Task) ParentKey() string {
	return ParentKey(t.ParentID)
}

// Depth returns the structural depth of the task (1 for top-level).
func (t *Task) Depth() int {
	return TaskIDDepth(t.ID)
}
