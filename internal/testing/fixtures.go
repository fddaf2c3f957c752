package testing

import (
	"testing"

	"github.com/teranos/jazzgraph/catalog"
)

// Artist builds a fixture artist. eras[0] is the primary era.
func Artist(id string, eras []string, influences, influencedBy []string) catalog.Artist {
	return catalog.Artist{
		ID:           id,
		Name:         id,
		Eras:         eras,
		Influences:   influences,
		InfluencedBy: influencedBy,
	}
}

// Album builds a fixture album
func Album(id, artistID string, genres ...string) catalog.Album {
	return catalog.Album{ID: id, Title: id, ArtistID: artistID, Genres: genres}
}

// Eras returns the eight standard eras with names and colors
func Eras() []catalog.Era {
	colors := []string{"#f59e0b", "#eab308", "#84cc16", "#22d3ee", "#3b82f6", "#a855f7", "#ec4899", "#f43f5e"}
	out := make([]catalog.Era, len(catalog.EraOrder))
	for i, id := range catalog.EraOrder {
		out[i] = catalog.Era{ID: id, Name: id, Color: colors[i]}
	}
	return out
}

// NewCatalog builds a catalog from fixtures or fails the test
func NewCatalog(t testing.TB, artists []catalog.Artist, albums []catalog.Album, eras []catalog.Era) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(artists, albums, eras)
	if err != nil {
		t.Fatalf("invalid fixture catalog: %v", err)
	}
	return c
}

// ChainCatalog is the linear chain a -> b -> c -> d, declared from both ends,
// plus an isolated artist z. All artists are bebop except d (hard-bop).
// Albums give a and b "Bebop", c "Hard Bop", d "Hard Bop" and "Modal".
func ChainCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	artists := []catalog.Artist{
		Artist("a", []string{catalog.EraBebop}, []string{"b"}, nil),
		Artist("b", []string{catalog.EraBebop}, []string{"c"}, []string{"a"}),
		Artist("c", []string{catalog.EraBebop}, []string{"d"}, []string{"b"}),
		Artist("d", []string{catalog.EraHardBop}, nil, []string{"c"}),
		Artist("z", []string{catalog.EraBebop}, nil, nil),
	}
	albums := []catalog.Album{
		Album("a1", "a", "Bebop"),
		Album("b1", "b", "Bebop"),
		Album("c1", "c", "Hard Bop"),
		Album("d1", "d", "Hard Bop", "Modal"),
	}
	return NewCatalog(t, artists, albums, Eras())
}

// DefaultCatalog returns the embedded dataset or fails the test
func DefaultCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("embedded catalog: %v", err)
	}
	return c
}
