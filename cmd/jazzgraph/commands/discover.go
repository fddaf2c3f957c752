package commands

import (
	"math/rand"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/display"
)

// DiscoverCmd picks a random album or artist
var DiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Pick a random album or artist",
	Long: `Pick a random album (default) or artist matching the filters and show
related albums: same genre, same label, released within two years, same artist.

Examples:
  jazzgraph discover
  jazzgraph discover --genre "Hard Bop" --label "Blue Note"
  jazzgraph discover --artist --instrument trumpet --seed 42`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

var (
	discoverArtist     bool
	discoverEra        string
	discoverGenre      string
	discoverLabel      string
	discoverInstrument string
	discoverExclude    string
	discoverSeed       int64
	discoverRelated    int
)

// discovery is the JSON shape of discover output
type discovery struct {
	Album   *catalog.Album         `json:"album,omitempty"`
	Artist  *catalog.Artist        `json:"artist,omitempty"`
	Related *catalog.RelatedAlbums `json:"related,omitempty"`
	Albums  []catalog.Album        `json:"albums,omitempty"`
}

func init() {
	DiscoverCmd.Flags().BoolVar(&discoverArtist, "artist", false, "Pick an artist instead of an album")
	DiscoverCmd.Flags().StringVar(&discoverEra, "era", "", "Restrict to an era id")
	DiscoverCmd.Flags().StringVar(&discoverGenre, "genre", "", "Restrict albums to a genre")
	DiscoverCmd.Flags().StringVar(&discoverLabel, "label", "", "Restrict albums to a label")
	DiscoverCmd.Flags().StringVar(&discoverInstrument, "instrument", "", "Restrict artists to an instrument")
	DiscoverCmd.Flags().StringVar(&discoverExclude, "exclude", "", "Never pick this id")
	DiscoverCmd.Flags().Int64Var(&discoverSeed, "seed", 0, "Random seed (0 picks one from the clock)")
	DiscoverCmd.Flags().IntVar(&discoverRelated, "related", catalog.DefaultRelatedLimit, "Albums per related group")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, _, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	seed := discoverSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if discoverArtist {
		a := c.RandomArtist(rng, catalog.ArtistFilter{
			Exclude:    discoverExclude,
			Era:        discoverEra,
			Instrument: discoverInstrument,
		})
		if a == nil {
			pterm.Warning.Println("No artist matches the filters")
			return nil
		}
		albums := c.AlbumsByArtist(a.ID)
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(discovery{Artist: a, Albums: albums})
		}
		if err := display.ArtistTable(os.Stdout, []*catalog.Artist{a}); err != nil {
			return err
		}
		if a.Bio != "" {
			pterm.Println(a.Bio)
		}
		if len(albums) == 0 {
			return nil
		}
		pterm.DefaultSection.Println("Albums")
		return display.AlbumTable(os.Stdout, albums)
	}

	al := c.RandomAlbum(rng, catalog.AlbumFilter{
		Exclude: discoverExclude,
		Era:     discoverEra,
		Genre:   discoverGenre,
		Label:   discoverLabel,
	})
	if al == nil {
		pterm.Warning.Println("No album matches the filters")
		return nil
	}
	related := c.Related(al, discoverRelated)
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(discovery{Album: al, Related: &related})
	}

	if err := display.AlbumTable(os.Stdout, []catalog.Album{*al}); err != nil {
		return err
	}
	if al.Description != "" {
		pterm.Println(al.Description)
	}
	groups := []struct {
		title  string
		albums []catalog.Album
	}{
		{"Same genre", related.Genre},
		{"Same label", related.Label},
		{"Same years", related.Year},
		{"Same artist", related.Artist},
	}
	for _, grp := range groups {
		if len(grp.albums) == 0 {
			continue
		}
		pterm.DefaultSection.Println(grp.title)
		if err := display.AlbumTable(os.Stdout, grp.albums); err != nil {
			return err
		}
	}
	return nil
}
