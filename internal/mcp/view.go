package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/runoshun/goalpost/internal/domain"
)

// taskView is the wire shape of a task. Timestamps and the parent pointer
// are internal bookkeeping; the parent is already encoded in the ID.
type taskView struct {
	ID          string `json:"id"`
	GoalID      int64  `json:"goalId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsComplete  bool   `json:"isComplete"`
	Deleted     bool   `json:"deleted"`
}

func newTaskView(t *domain.Task) taskView {
	return taskView{
		ID:          t.ID,
		GoalID:      t.GoalID,
		Title:       t.Title,
		Description: t.Description,
		IsComplete:  t.IsComplete,
		Deleted:     t.Deleted,
	}
}

// toTaskViews shapes tasks for a response, preserving order. The result is
// never nil so empty lists serialize as [] rather than null.
func toTaskViews(tasks []*domain.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t))
	}
	return views
}

// jsonResult serializes v as indented JSON text content.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode result", err)
	}
	return mcp.NewToolResultText(string(data))
}
