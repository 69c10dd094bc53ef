// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goalpost/internal/domain"
)

// AddTasksFromFileInput contains the parameters for adding tasks from an
// outline file.
type AddTasksFromFileInput struct {
	Content string // Outline file content (YAML)
	GoalID  int64  // Owning goal ID
}

// AddTasksFromFile is the use case for creating tasks from an outline file.
// Parsing and shaping happen here; creation is delegated to AddTasks so both
// paths share one set of validation and ID allocation rules.
type AddTasksFromFile struct {
	addTasks *AddTasks
}

// NewAddTasksFromFile creates a new AddTasksFromFile use case.
func NewAddTasksFromFile(addTasks *AddTasks) *AddTasksFromFile {
	return &AddTasksFromFile{addTasks: addTasks}
}

// Execute parses the outline and creates the tasks it describes.
func (uc *AddTasksFromFile) Execute(ctx context.Context, in AddTasksFromFileInput) (*AddTasksOutput, error) {
	outlines, err := domain.ParseTaskOutline([]byte(in.Content))
	if err != nil {
		return nil, err
	}

	entries := make([]TaskEntry, 0, len(outlines))
	for _, o := range outlines {
		entry, err := entryFromOutline(o, true)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return uc.addTasks.Execute(ctx, AddTasksInput{GoalID: in.GoalID, Tasks: entries})
}

// entryFromOutline converts one outline node into a task entry. Parent
// references are only legal on top-level nodes; nested nodes always attach to
// their encloser, so a nested parent is reported rather than silently dropped.
func entryFromOutline(o domain.TaskOutline, topLevel bool) (TaskEntry, error) {
	entry := TaskEntry{
		Title:       o.Title,
		Description: o.Description,
	}
	if o.Parent != "" {
		if !topLevel {
			return TaskEntry{}, fmt.Errorf("subtask %q: parent reference allowed only on top-level tasks", o.Title)
		}
		parent := o.Parent
		entry.ParentID = &parent
	}

	for _, sub := range o.Subtasks {
		child, err := entryFromOutline(sub, false)
		if err != nil {
			return TaskEntry{}, err
		}
		entry.Subtasks = append(entry.Subtasks, child)
	}
	return entry, nil
}
