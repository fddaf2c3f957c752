// Package catalog is the read-only entity store: eras, artists and albums
// loaded once and shared by every query.
package catalog

// Era is a period of jazz history. Eras sort by EraOrder, never by store order.
type Era struct {
	ID              string   `json:"id" yaml:"id" toml:"id"`
	Name            string   `json:"name" yaml:"name" toml:"name"`
	Period          string   `json:"period" yaml:"period" toml:"period"`
	Years           [2]int   `json:"years" yaml:"years" toml:"years"`
	Description     string   `json:"description" yaml:"description" toml:"description"`
	Characteristics []string `json:"characteristics" yaml:"characteristics" toml:"characteristics"`
	KeyArtists      []string `json:"keyArtists" yaml:"keyArtists" toml:"keyArtists"`
	Color           string   `json:"color" yaml:"color" toml:"color"`
}

// Artist is a musician. Eras[0] is the primary era.
// Influences lists who this artist influenced; InfluencedBy lists who influenced them.
// Either list may name ids the catalog does not hold.
type Artist struct {
	ID           string   `json:"id" yaml:"id" toml:"id"`
	Name         string   `json:"name" yaml:"name" toml:"name"`
	BirthYear    int      `json:"birthYear" yaml:"birthYear" toml:"birthYear"`
	DeathYear    *int     `json:"deathYear,omitempty" yaml:"deathYear,omitempty" toml:"deathYear,omitempty"`
	Bio          string   `json:"bio" yaml:"bio" toml:"bio"`
	Instruments  []string `json:"instruments" yaml:"instruments" toml:"instruments"`
	Eras         []string `json:"eras" yaml:"eras" toml:"eras"`
	Influences   []string `json:"influences" yaml:"influences" toml:"influences"`
	InfluencedBy []string `json:"influencedBy" yaml:"influencedBy" toml:"influencedBy"`
	KeyAlbums    []string `json:"keyAlbums" yaml:"keyAlbums" toml:"keyAlbums"`
	ImageURL     string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty" toml:"imageUrl,omitempty"`
	Wikipedia    string   `json:"wikipedia,omitempty" yaml:"wikipedia,omitempty" toml:"wikipedia,omitempty"`
}

// PrimaryEra returns the first listed era id, or "" when the artist has none
func (a *Artist) PrimaryEra() string {
	if len(a.Eras) == 0 {
		return ""
	}
	return a.Eras[0]
}

// InfluenceCount is the raw number of declared relations in both directions.
// Duplicates and dangling ids count.
func (a *Artist) InfluenceCount() int {
	return len(a.Influences) + len(a.InfluencedBy)
}

// HasRelations reports whether the artist declares any influence relation
func (a *Artist) HasRelations() bool {
	return len(a.Influences) > 0 || len(a.InfluencedBy) > 0
}

// CriticReview is a quoted review attached to an album
type CriticReview struct {
	Quote  string  `json:"quote" yaml:"quote" toml:"quote"`
	Source string  `json:"source" yaml:"source" toml:"source"`
	Author string  `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
	Rating float64 `json:"rating,omitempty" yaml:"rating,omitempty" toml:"rating,omitempty"`
	URL    string  `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
}

// Album is a recording. The graph only reads ArtistID and Genres.
type Album struct {
	ID           string         `json:"id" yaml:"id" toml:"id"`
	Title        string         `json:"title" yaml:"title" toml:"title"`
	Artist       string         `json:"artist" yaml:"artist" toml:"artist"`
	ArtistID     string         `json:"artistId" yaml:"artistId" toml:"artistId"`
	Year         int            `json:"year" yaml:"year" toml:"year"`
	Label        string         `json:"label" yaml:"label" toml:"label"`
	Era          string         `json:"era" yaml:"era" toml:"era"`
	Genres       []string       `json:"genres" yaml:"genres" toml:"genres"`
	Description  string         `json:"description" yaml:"description" toml:"description"`
	Significance string         `json:"significance" yaml:"significance" toml:"significance"`
	KeyTracks    []string       `json:"keyTracks" yaml:"keyTracks" toml:"keyTracks"`
	CoverURL     string         `json:"coverUrl,omitempty" yaml:"coverUrl,omitempty" toml:"coverUrl,omitempty"`
	Discogs      string         `json:"discogs,omitempty" yaml:"discogs,omitempty" toml:"discogs,omitempty"`
	AllMusic     string         `json:"allMusic,omitempty" yaml:"allMusic,omitempty" toml:"allMusic,omitempty"`
	SpotifyURL   string         `json:"spotifyUrl,omitempty" yaml:"spotifyUrl,omitempty" toml:"spotifyUrl,omitempty"`
	YoutubeURL   string         `json:"youtubeUrl,omitempty" yaml:"youtubeUrl,omitempty" toml:"youtubeUrl,omitempty"`
	Reviews      []CriticReview `json:"reviews,omitempty" yaml:"reviews,omitempty" toml:"reviews,omitempty"`
}

// ArtistIndex maps artist id to artist
type ArtistIndex map[string]*Artist

// NewArtistIndex indexes artists by id. A later duplicate id replaces an earlier one.
func NewArtistIndex(artists []Artist) ArtistIndex {
	idx := make(ArtistIndex, len(artists))
	for i := range artists {
		idx[artists[i].ID] = &artists[i]
	}
	return idx
}
