package domain

// SubtaskScope controls how deep a task query descends below the
// directly selected tasks.
type SubtaskScope string

const (
	SubtaskScopeNone       SubtaskScope = "none"        // Selected tasks only
	SubtaskScopeFirstLevel SubtaskScope = "first-level" // Plus direct children
	SubtaskScopeRecursive  SubtaskScope = "recursive"   // Plus all descendants
)

// AllSubtaskScopes returns all valid scope values.
func AllSubtaskScopes() []SubtaskScope {
	return []SubtaskScope{
		SubtaskScopeNone,
		SubtaskScopeFirstLevel,
		SubtaskScopeRecursive,
	}
}

// ParseSubtaskScope parses a scope string. An empty string defaults to
// SubtaskScopeNone.
func ParseSubtaskScope(s string) (SubtaskScope, error) {
	switch SubtaskScope(s) {
	case "":
		return SubtaskScopeNone, nil
	case SubtaskScopeNone, SubtaskScopeFirstLevel, SubtaskScopeRecursive:
		return SubtaskScope(s), nil
	default:
		return "", ErrInvalidSubtaskScope
	}
}

// IsValid returns true if the scope is a known valid value.
func (s SubtaskScope) IsValid() bool {
	switch s {
	case SubtaskScopeNone, SubtaskScopeFirstLevel, SubtaskScopeRecursive:
		return true
	default:
		return false
	}
}
