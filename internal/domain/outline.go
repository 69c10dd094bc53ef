package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskOutline represents one task parsed from an outline file. Subtasks nest
// arbitrarily deep; Parent is only meaningful on top-level entries and must
// name an existing task ID.
type TaskOutline struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Parent      string        `yaml:"parent,omitempty"`
	Subtasks    []TaskOutline `yaml:"subtasks,omitempty"`
}

// outlineFile is the top-level document shape.
type outlineFile struct {
	Tasks []TaskOutline `yaml:"tasks"`
}

// ParseTaskOutline parses a YAML outline into task outlines.
//
// Format:
//
//	tasks:
//	  - title: Design schema
//	    description: Sketch the tables
//	    subtasks:
//	      - title: Draft migrations
//	        description: One file per table
//	  - title: Wire the API
//	    description: REST endpoints
//	    parent: "2"
//
// A bare YAML list of tasks (without the "tasks:" key) is also accepted.
func ParseTaskOutline(content []byte) ([]TaskOutline, error) {
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, ErrEmptyFile
	}

	var file outlineFile
	structErr := yaml.Unmarshal(content, &file)
	if structErr == nil && len(file.Tasks) > 0 {
		return file.Tasks, nil
	}

	var list []TaskOutline
	if err := yaml.Unmarshal(content, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	if structErr != nil {
		return nil, fmt.Errorf("parse outline: %w", structErr)
	}
	return nil, ErrNoTasksInFile
}
