package catalog

import (
	"sort"

	"github.com/teranos/jazzgraph/errors"
)

// Catalog is an immutable snapshot of the dataset.
// Slices keep store order; lookups go through the id maps.
type Catalog struct {
	Artists []Artist
	Albums  []Album
	Eras    []Era

	artistIndex ArtistIndex
	albumIndex  map[string]*Album
	eraIndex    map[string]*Era
}

// New validates the records and builds the lookup maps.
// Ids must be non-empty and unique per kind. Dangling influence, album and era
// references are allowed; readers skip them.
func New(artists []Artist, albums []Album, eras []Era) (*Catalog, error) {
	c := &Catalog{
		Artists:     artists,
		Albums:      albums,
		Eras:        eras,
		artistIndex: make(ArtistIndex, len(artists)),
		albumIndex:  make(map[string]*Album, len(albums)),
		eraIndex:    make(map[string]*Era, len(eras)),
	}

	for i := range c.Artists {
		a := &c.Artists[i]
		if a.ID == "" {
			return nil, errors.NewInvalidRequestError("artist at position %d has no id", i)
		}
		if _, dup := c.artistIndex[a.ID]; dup {
			return nil, errors.NewInvalidRequestError("duplicate artist id %q", a.ID)
		}
		c.artistIndex[a.ID] = a
	}

	for i := range c.Albums {
		al := &c.Albums[i]
		if al.ID == "" {
			return nil, errors.NewInvalidRequestError("album at position %d has no id", i)
		}
		if _, dup := c.albumIndex[al.ID]; dup {
			return nil, errors.NewInvalidRequestError("duplicate album id %q", al.ID)
		}
		c.albumIndex[al.ID] = al
	}

	for i := range c.Eras {
		e := &c.Eras[i]
		if e.ID == "" {
			return nil, errors.NewInvalidRequestError("era at position %d has no id", i)
		}
		if _, dup := c.eraIndex[e.ID]; dup {
			return nil, errors.NewInvalidRequestError("duplicate era id %q", e.ID)
		}
		c.eraIndex[e.ID] = e
	}

	return c, nil
}

// Index returns the artist id map. Callers must not mutate it.
func (c *Catalog) Index() ArtistIndex {
	return c.artistIndex
}

// Artist looks up an artist by id
func (c *Catalog) Artist(id string) (*Artist, bool) {
	a, ok := c.artistIndex[id]
	return a, ok
}

// Album looks up an album by id
func (c *Catalog) Album(id string) (*Album, bool) {
	a, ok := c.albumIndex[id]
	return a, ok
}

// Era looks up an era by id
func (c *Catalog) Era(id string) (*Era, bool) {
	e, ok := c.eraIndex[id]
	return e, ok
}

// EraMap returns the era id map. Callers must not mutate it.
func (c *Catalog) EraMap() map[string]*Era {
	return c.eraIndex
}

// ErasInOrder returns the catalog's eras sorted by EraOrder.
// Eras outside the fixed order go last, by id.
func (c *Catalog) ErasInOrder() []Era {
	out := make([]Era, len(c.Eras))
	copy(out, c.Eras)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := EraRank(out[i].ID), EraRank(out[j].ID)
		if ri < 0 && rj < 0 {
			return out[i].ID < out[j].ID
		}
		if ri < 0 {
			return false
		}
		if rj < 0 {
			return true
		}
		return ri < rj
	})
	return out
}

// AlbumsByArtist returns the artist's albums in store order
func (c *Catalog) AlbumsByArtist(artistID string) []Album {
	var out []Album
	for _, al := range c.Albums {
		if al.ArtistID == artistID {
			out = append(out, al)
		}
	}
	return out
}

// ArtistsInEra returns artists listing eraID among their eras, in store order
func (c *Catalog) ArtistsInEra(eraID string) []Artist {
	var out []Artist
	for _, a := range c.Artists {
		for _, e := range a.Eras {
			if e == eraID {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
