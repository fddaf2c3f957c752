package catalog

import "sort"

// EraStats summarizes one era for timeline views
type EraStats struct {
	Era         Era      `json:"era"`
	AlbumCount  int      `json:"albumCount"`
	ArtistCount int      `json:"artistCount"`
	TopArtists  []string `json:"topArtists"`
}

// Stats summarizes the whole catalog
type Stats struct {
	Artists   int `json:"artists"`
	Albums    int `json:"albums"`
	Eras      int `json:"eras"`
	Relations int `json:"relations"` // declared relations, both directions, dangling included
}

// Summary counts catalog records
func (c *Catalog) Summary() Stats {
	s := Stats{Artists: len(c.Artists), Albums: len(c.Albums), Eras: len(c.Eras)}
	for i := range c.Artists {
		s.Relations += c.Artists[i].InfluenceCount()
	}
	return s
}

// EraStatistics returns one entry per catalog era in EraOrder.
// TopArtists holds up to top artist ids ranked by influence count, ties by id.
func (c *Catalog) EraStatistics(top int) []EraStats {
	eras := c.ErasInOrder()
	out := make([]EraStats, 0, len(eras))
	for _, e := range eras {
		st := EraStats{Era: e, TopArtists: []string{}}
		for _, al := range c.Albums {
			if al.Era == e.ID {
				st.AlbumCount++
			}
		}
		members := c.ArtistsInEra(e.ID)
		st.ArtistCount = len(members)
		sort.SliceStable(members, func(i, j int) bool {
			ci, cj := members[i].InfluenceCount(), members[j].InfluenceCount()
			if ci != cj {
				return ci > cj
			}
			return members[i].ID < members[j].ID
		})
		for i := 0; i < len(members) && i < top; i++ {
			st.TopArtists = append(st.TopArtists, members[i].ID)
		}
		out = append(out, st)
	}
	return out
}
