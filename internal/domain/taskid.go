package domain

import (
	"sort"
	"strconv"
	"strings"
)

// RootParentKey is the counter key used for top-level tasks of a goal.
const RootParentKey = "root"

// ParentKey returns the counter key for tasks under the given parent:
// RootParentKey when parentID is nil, the parent's ID otherwise.
func ParentKey(parentID *string) string {
	if parentID == nil {
		return RootParentKey
	}
	return *parentID
}

// ComposeTaskID builds a child ID from its parent ID and sibling sequence
// number. A nil parent yields a top-level ID ("3"); otherwise the sequence
// is appended to the parent with a dot ("1.2" + 3 = "1.2.3").
func ComposeTaskID(parentID *string, seq int64) string {
	n := strconv.FormatInt(seq, 10)
	if parentID == nil {
		return n
	}
	return *parentID + "." + n
}

// ValidTaskID reports whether id is a well-formed dot-notation task ID:
// one or more dot-separated positive integers without leading zeros.
func ValidTaskID(id string) bool {
	if id == "" {
		return false
	}
	for _, seg := range strings.Split(id, ".") {
		if seg == "" || seg[0] == '0' {
			return false
		}
		for i := 0; i < len(seg); i++ {
			if seg[i] < '0' || seg[i] > '9' {
				return false
			}
		}
	}
	return true
}

// ParentTaskID returns the ID of the structural parent ("1.2" for "1.2.3")
// and true, or "" and false for a top-level ID.
func ParentTaskID(id string) (string, bool) {
	i := strings.LastIndexByte(id, '.')
	if i < 0 {
		return "", false
	}
	return id[:i], true
}

// TaskIDDepth returns the number of segments in id (1 for top-level).
func TaskIDDepth(id string) int {
	if id == "" {
		return 0
	}
	return strings.Count(id, ".") + 1
}

// CompareTaskIDs orders two task IDs hierarchically: segments are compared
// pairwise as integers, and when one ID is a prefix of the other the
// shorter (the ancestor) sorts first. "1.2" < "1.10" and "2" < "10",
// unlike plain string order.
func CompareTaskIDs(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, _ := strconv.ParseInt(as[i], 10, 64)
		bn, _ := strconv.ParseInt(bs[i], 10, 64)
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

// SortTaskIDs sorts ids in place into hierarchical order, so a traversal of
// the sorted slice visits every parent before its children.
func SortTaskIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return CompareTaskIDs(ids[i], ids[j]) < 0
	})
}
