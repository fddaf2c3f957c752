package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/errors"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	jgtest "github.com/teranos/jazzgraph/internal/testing"
)

func TestBuildView(t *testing.T) {
	builder := createTestBuilder(t)
	c := jgtest.ChainCatalog(t)

	g, err := builder.BuildView(context.Background(), c, View{
		Filter:   Filter{FocusArtistID: "b", Depth: 1},
		Options:  DefaultLayoutOptions(),
		Selected: "b",
		Path:     []string{"a", "b"},
	})

	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, LayoutLayered, g.Meta.Layout)
	assert.True(t, g.NodeByID("b").Selected)
	assert.True(t, g.NodeByID("c").Dimmed)
	assert.NotEqual(t, Position{}, g.NodeByID("c").Position)
	assert.Nil(t, g.Meta.Config)
}

func TestBuildViewRejectsBadFilters(t *testing.T) {
	builder := createTestBuilder(t)
	c := jgtest.ChainCatalog(t)

	tests := []struct {
		name        string
		view        View
		subcategory string
		notFound    bool
	}{
		{"unknown focus", View{Filter: Filter{FocusArtistID: "sun-ra"}}, grapherr.SubcategoryUnknownArtist, true},
		{"unknown era", View{Filter: Filter{Era: "ragtime"}}, grapherr.SubcategoryUnknownEra, false},
		{"negative depth", View{Filter: Filter{FocusArtistID: "a", Depth: -1}}, grapherr.SubcategoryInvalidDepth, false},
		{"deep", View{Filter: Filter{FocusArtistID: "a", Depth: MaxDepth + 1}}, grapherr.SubcategoryInvalidDepth, false},
		{"layout", View{Layout: "force"}, grapherr.SubcategoryLayoutName, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := builder.BuildView(context.Background(), c, tt.view)

			require.Error(t, err)
			ge, ok := grapherr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.subcategory, ge.Subcategory)
			assert.Equal(t, tt.notFound, errors.IsNotFoundError(err))
			assert.Equal(t, !tt.notFound, errors.IsInvalidRequestError(err))

			require.NotNil(t, g)
			assert.Empty(t, g.Nodes)
			assert.Equal(t, tt.subcategory, g.Meta.Config["subcategory"])
		})
	}
}

func TestFilterValidateKnownEraWithoutRecord(t *testing.T) {
	// eras the catalog does not list are still accepted when they are standard
	c := jgtest.NewCatalog(t, nil, nil, nil)
	assert.NoError(t, Filter{Era: catalog.EraFusion}.Validate(c))
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Filter
	}{
		{"", Filter{}},
		{"   ", Filter{}},
		{"miles-davis", Filter{FocusArtistID: "miles-davis"}},
		{"focus=miles-davis depth=2", Filter{FocusArtistID: "miles-davis", Depth: 2}},
		{`era=hard-bop genre="hard bop"`, Filter{Era: "hard-bop", Genre: "hard bop"}},
		{`artist=bill-evans GENRE='post bop'`, Filter{FocusArtistID: "bill-evans", Genre: "post bop"}},
	}

	for _, tt := range tests {
		got, err := ParseQuery(tt.query)
		if err != nil {
			t.Errorf("ParseQuery(%q) returned error: %v", tt.query, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestParseQueryErrors(t *testing.T) {
	tests := []struct {
		query       string
		subcategory string
	}{
		{`genre="hard bop`, grapherr.SubcategoryInvalidSyntax},
		{"depth=two", grapherr.SubcategoryInvalidDepth},
		{"label=blue-note", grapherr.SubcategoryInvalidSyntax},
	}

	for _, tt := range tests {
		_, err := ParseQuery(tt.query)
		ge, ok := grapherr.As(err)
		if !ok {
			t.Errorf("ParseQuery(%q) error = %v, want GraphError", tt.query, err)
			continue
		}
		if ge.Subcategory != tt.subcategory {
			t.Errorf("ParseQuery(%q) subcategory = %q, want %q", tt.query, ge.Subcategory, tt.subcategory)
		}
	}
}
