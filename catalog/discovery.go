package catalog

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// DefaultRelatedLimit caps each related-album bucket
const DefaultRelatedLimit = 4

// AllGenres returns every album genre, unique and sorted
func (c *Catalog) AllGenres() []string {
	set := make(map[string]struct{})
	for _, al := range c.Albums {
		for _, g := range al.Genres {
			set[g] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// AllLabels returns every album label, unique and sorted
func (c *Catalog) AllLabels() []string {
	set := make(map[string]struct{})
	for _, al := range c.Albums {
		set[al.Label] = struct{}{}
	}
	return sortedKeys(set)
}

// AllInstruments returns every artist instrument, unique and sorted
func (c *Catalog) AllInstruments() []string {
	set := make(map[string]struct{})
	for _, a := range c.Artists {
		for _, inst := range a.Instruments {
			set[inst] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AlbumsByGenre matches genre case-insensitively
func (c *Catalog) AlbumsByGenre(genre string) []Album {
	var out []Album
	for _, al := range c.Albums {
		if hasFold(al.Genres, genre) {
			out = append(out, al)
		}
	}
	return out
}

// AlbumsByLabel matches label case-insensitively
func (c *Catalog) AlbumsByLabel(label string) []Album {
	var out []Album
	for _, al := range c.Albums {
		if strings.EqualFold(al.Label, label) {
			out = append(out, al)
		}
	}
	return out
}

// AlbumsByYear returns albums released in year
func (c *Catalog) AlbumsByYear(year int) []Album {
	var out []Album
	for _, al := range c.Albums {
		if al.Year == year {
			out = append(out, al)
		}
	}
	return out
}

// ArtistsByInstrument matches instrument case-insensitively
func (c *Catalog) ArtistsByInstrument(instrument string) []Artist {
	var out []Artist
	for _, a := range c.Artists {
		if hasFold(a.Instruments, instrument) {
			out = append(out, a)
		}
	}
	return out
}

func hasFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// RelatedAlbums groups albums that share something with an album.
// Each bucket keeps store order and is capped independently.
type RelatedAlbums struct {
	Genre  []Album `json:"genre"`
	Label  []Album `json:"label"`
	Year   []Album `json:"year"`
	Artist []Album `json:"artist"`
}

// Related finds albums sharing a genre (exact match), the label, a release
// within two years, or the artist with current. current itself is excluded.
// limit <= 0 uses DefaultRelatedLimit.
func (c *Catalog) Related(current *Album, limit int) RelatedAlbums {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	genres := make(map[string]struct{}, len(current.Genres))
	for _, g := range current.Genres {
		genres[g] = struct{}{}
	}

	rel := RelatedAlbums{
		Genre:  []Album{},
		Label:  []Album{},
		Year:   []Album{},
		Artist: []Album{},
	}
	for _, al := range c.Albums {
		if al.ID == current.ID {
			continue
		}
		if len(rel.Genre) < limit && sharesGenre(al.Genres, genres) {
			rel.Genre = append(rel.Genre, al)
		}
		if len(rel.Label) < limit && al.Label == current.Label {
			rel.Label = append(rel.Label, al)
		}
		if len(rel.Year) < limit && abs(al.Year-current.Year) <= 2 {
			rel.Year = append(rel.Year, al)
		}
		if len(rel.Artist) < limit && al.ArtistID == current.ArtistID {
			rel.Artist = append(rel.Artist, al)
		}
	}
	return rel
}

func sharesGenre(genres []string, set map[string]struct{}) bool {
	for _, g := range genres {
		if _, ok := set[g]; ok {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// AlbumFilter narrows RandomAlbum. Empty fields do not filter.
type AlbumFilter struct {
	Exclude string
	Era     string
	Genre   string
	Label   string
}

// RandomAlbum picks uniformly among albums matching f, or returns nil when none match
func (c *Catalog) RandomAlbum(rng *rand.Rand, f AlbumFilter) *Album {
	var pool []*Album
	for i := range c.Albums {
		al := &c.Albums[i]
		if f.Exclude != "" && al.ID == f.Exclude {
			continue
		}
		if f.Era != "" && al.Era != f.Era {
			continue
		}
		if f.Genre != "" && !hasFold(al.Genres, f.Genre) {
			continue
		}
		if f.Label != "" && !strings.EqualFold(al.Label, f.Label) {
			continue
		}
		pool = append(pool, al)
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[rng.Intn(len(pool))]
}

// ArtistFilter narrows RandomArtist. Empty fields do not filter.
type ArtistFilter struct {
	Exclude    string
	Era        string
	Instrument string
}

// RandomArtist picks uniformly among artists matching f, or returns nil when none match
func (c *Catalog) RandomArtist(rng *rand.Rand, f ArtistFilter) *Artist {
	var pool []*Artist
	for i := range c.Artists {
		a := &c.Artists[i]
		if f.Exclude != "" && a.ID == f.Exclude {
			continue
		}
		if f.Era != "" && !contains(a.Eras, f.Era) {
			continue
		}
		if f.Instrument != "" && !hasFold(a.Instruments, f.Instrument) {
			continue
		}
		pool = append(pool, a)
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[rng.Intn(len(pool))]
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases text and collapses every run of non-alphanumerics to one dash
func Slugify(text string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}
