package grapherror

import (
	stderrors "errors"
	"testing"
	"time"
)

func TestGraphError_ToUIMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *GraphError
		want string
	}{
		{
			name: "custom UserMessage wins",
			err:  &GraphError{Category: CategoryQuery, UserMessage: "No artist with id x"},
			want: "No artist with id x",
		},
		{
			name: "default for CategoryQuery",
			err:  &GraphError{Category: CategoryQuery},
			want: "The graph query was rejected - check the filter and try again",
		},
		{
			name: "default for CategoryLayout",
			err:  &GraphError{Category: CategoryLayout},
			want: "Failed to lay out the influence graph",
		},
		{
			name: "unknown category",
			err:  &GraphError{Category: Category("bogus")},
			want: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ToUIMessage(); got != tt.want {
				t.Errorf("ToUIMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGraphError_ToGraphMeta(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	err := &GraphError{
		Err:         stderrors.New("unknown era \"swing-revival\""),
		Category:    CategoryQuery,
		Subcategory: SubcategoryUnknownEra,
		UserMessage: "Unknown era",
		Context:     map[string]interface{}{"era": "swing-revival"},
		Timestamp:   ts,
	}

	meta := err.ToGraphMeta()

	want := map[string]string{
		"error":       "unknown era \"swing-revival\"",
		"category":    "query",
		"subcategory": "unknown_era",
		"description": "Unknown era",
		"timestamp":   "2024-03-01T12:00:00Z",
		"context":     "map[era:swing-revival]",
	}
	for k, v := range want {
		if meta[k] != v {
			t.Errorf("ToGraphMeta()[%q] = %q, want %q", k, meta[k], v)
		}
	}
}

func TestGraphError_ToGraphMeta_OmitsEmpty(t *testing.T) {
	meta := New(CategoryInternal, nil, "").ToGraphMeta()

	if _, ok := meta["subcategory"]; ok {
		t.Error("ToGraphMeta() should omit empty subcategory")
	}
	if _, ok := meta["context"]; ok {
		t.Error("ToGraphMeta() should omit empty context")
	}
}

func TestGraphError_ToLogFields(t *testing.T) {
	err := New(CategoryQuery, stderrors.New("boom"), "msg").
		WithSubcategory(SubcategoryNoPath).
		WithContext("from", "a")

	fields := err.ToLogFields()
	// three base pairs, subcategory pair, one context pair
	if len(fields) != 10 {
		t.Fatalf("ToLogFields() len = %d, want 10: %v", len(fields), fields)
	}
	if fields[6] != "error_subcategory" || fields[7] != SubcategoryNoPath {
		t.Errorf("ToLogFields() subcategory pair = %v, %v", fields[6], fields[7])
	}
	if fields[8] != "from" || fields[9] != "a" {
		t.Errorf("ToLogFields() context pair = %v, %v", fields[8], fields[9])
	}
}
