package sqlstore

import (
	"time"

	"github.com/runoshun/goalpost/internal/domain"
)

// goalRecord is the goals table row.
type goalRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Description string    `gorm:"type:text;not null"`
	RepoName    string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (goalRecord) TableName() string { return "goals" }

// planRecord is the plans table row, one per goal.
type planRecord struct {
	GoalID    int64     `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (planRecord) TableName() string { return "plans" }

// taskRecord is the tasks table row. Timestamps are set by the caller, so
// GORM's automatic time tracking is disabled.
type taskRecord struct {
	GoalID      int64     `gorm:"primaryKey;autoIncrement:false"`
	ID          string    `gorm:"primaryKey;size:255"`
	ParentID    *string   `gorm:"size:255;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	IsComplete  bool      `gorm:"not null;default:false"`
	Deleted     bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (taskRecord) TableName() string { return "tasks" }

// counterRecord is the counters table row, one per (goal, parent key) pair.
// Rows are never deleted so sequence numbers are never reissued.
type counterRecord struct {
	GoalID    int64  `gorm:"primaryKey;autoIncrement:false"`
	ParentKey string `gorm:"primaryKey;size:255"`
	Seq       int64  `gorm:"not null;default:0"`
}

func (counterRecord) TableName() string { return "counters" }

// metaRecord is a single-row table holding store-wide state.
type metaRecord struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	NextGoalID int64 `gorm:"not null;default:1"`
}

func (metaRecord) TableName() string { return "meta" }

func goalToRecord(goal *domain.Goal) goalRecord {
	return goalRecord{
		ID:          goal.ID,
		Description: goal.Description,
		RepoName:    goal.RepoName,
		CreatedAt:   goal.CreatedAt,
	}
}

func recordToGoal(rec goalRecord) *domain.Goal {
	return &domain.Goal{
		ID:          rec.ID,
		Description: rec.Description,
		RepoName:    rec.RepoName,
		CreatedAt:   rec.CreatedAt,
	}
}

func planToRecord(plan *domain.Plan) planRecord {
	return planRecord{
		GoalID:    plan.GoalID,
		UpdatedAt: plan.UpdatedAt,
	}
}

func recordToPlan(rec planRecord) *domain.Plan {
	return &domain.Plan{
		GoalID:    rec.GoalID,
		UpdatedAt: rec.UpdatedAt,
	}
}

func taskToRecord(task *domain.Task) taskRecord {
	return taskRecord{
		GoalID:      task.GoalID,
		ID:          task.ID,
		ParentID:    task.ParentID,
		Title:       task.Title,
		Description: task.Description,
		IsComplete:  task.IsComplete,
		Deleted:     task.Deleted,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func recordToTask(rec taskRecord) *domain.Task {
	return &domain.Task{
		GoalID:      rec.GoalID,
		ID:          rec.ID,
		ParentID:    rec.ParentID,
		Title:       rec.Title,
		Description: rec.Description,
		IsComplete:  rec.IsComplete,
		Deleted:     rec.Deleted,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
