package domain

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParentKey(t *testing.T) {
	tests := []struct {
		name     string
		parentID *string
		want     string
	}{
		{name: "nil parent", parentID: nil, want: "root"},
		{name: "top-level parent", parentID: strPtr("1"), want: "1"},
		{name: "nested parent", parentID: strPtr("1.2.3"), want: "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParentKey(tt.parentID)
			if got != tt.want {
				t.Errorf("ParentKey(%v) = %q, want %q", tt.parentID, got, tt.want)
			}
		})
	}
}

func TestComposeTaskID(t *testing.T) {
	tests := []struct {
		name     string
		parentID *string
		seq      int64
		want     string
	}{
		{name: "top-level", parentID: nil, seq: 1, want: "1"},
		{name: "top-level later", parentID: nil, seq: 42, want: "42"},
		{name: "child", parentID: strPtr("1"), seq: 2, want: "1.2"},
		{name: "deep child", parentID: strPtr("1.2"), seq: 3, want: "1.2.3"},
		{name: "double digit segment", parentID: strPtr("1.2"), seq: 10, want: "1.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeTaskID(tt.parentID, tt.seq)
			if got != tt.want {
				t.Errorf("ComposeTaskID(%v, %d) = %q, want %q", tt.parentID, tt.seq, got, tt.want)
			}
		})
	}
}

func TestValidTaskID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "top-level", id: "1", want: true},
		{name: "nested", id: "1.1.2", want: true},
		{name: "double digits", id: "10.21", want: true},
		{name: "empty", id: "", want: false},
		{name: "trailing dot", id: "1.", want: false},
		{name: "leading dot", id: ".1", want: false},
		{name: "double dot", id: "1..2", want: false},
		{name: "zero segment", id: "1.0", want: false},
		{name: "leading zero", id: "01", want: false},
		{name: "letters", id: "1.a", want: false},
		{name: "negative", id: "-1", want: false},
		{name: "whitespace", id: "1 .2", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidTaskID(tt.id)
			if got != tt.want {
				t.Errorf("ValidTaskID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestParentTaskID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   string
		wantOK bool
	}{
		{name: "top-level", id: "3", want: "", wantOK: false},
		{name: "one level down", id: "3.1", want: "3", wantOK: true},
		{name: "deep", id: "1.2.10.4", want: "1.2.10", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParentTaskID(tt.id)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParentTaskID(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTaskIDDepth(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{id: "", want: 0},
		{id: "1", want: 1},
		{id: "1.1", want: 2},
		{id: "10.2.33", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := TaskIDDepth(tt.id)
			if got != tt.want {
				t.Errorf("TaskIDDepth(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestCompareTaskIDs(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "1.2", b: "1.2", want: 0},
		{name: "sibling order", a: "1.1", b: "1.2", want: -1},
		{name: "numeric not lexicographic", a: "1.2", b: "1.10", want: -1},
		{name: "top-level numeric", a: "2", b: "10", want: -1},
		{name: "parent before child", a: "1", b: "1.1", want: -1},
		{name: "child after parent", a: "1.1", b: "1", want: 1},
		{name: "different subtrees", a: "2.9", b: "10.1", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareTaskIDs(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CompareTaskIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSortTaskIDs(t *testing.T) {
	ids := []string{"1.10", "2", "1.2", "1", "10", "1.2.1", "1.1"}
	want := []string{"1", "1.1", "1.2", "1.2.1", "1.10", "2", "10"}

	SortTaskIDs(ids)
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SortTaskIDs() = %v, want %v", ids, want)
	}
}
