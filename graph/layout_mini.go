package graph

import "github.com/teranos/jazzgraph/catalog"

// Mini network defaults
const (
	DefaultMiniMaxPerSide = 5
	DefaultMiniSpacing    = 90
	DefaultMiniRowOffset  = 80
)

// MiniOptions tunes the one-artist influence network
type MiniOptions struct {
	MaxPerSide int     `json:"maxPerSide"`
	Spacing    float64 `json:"spacing"`
	RowOffset  float64 `json:"rowOffset"`
}

// DefaultMiniOptions returns five per row, 90 apart, rows 80 above and below center
func DefaultMiniOptions() MiniOptions {
	return MiniOptions{
		MaxPerSide: DefaultMiniMaxPerSide,
		Spacing:    DefaultMiniSpacing,
		RowOffset:  DefaultMiniRowOffset,
	}
}

// MiniRole places a node in the mini network
type MiniRole string

const (
	RoleCenter     MiniRole = "center"
	RoleInfluencer MiniRole = "influencer"
	RoleInfluenced MiniRole = "influenced"
)

// MiniNode is an artist in the mini network. Position is the node center.
type MiniNode struct {
	ID       string          `json:"id"`
	Artist   *catalog.Artist `json:"artist"`
	Era      *catalog.Era    `json:"era,omitempty"`
	Color    string          `json:"color"`
	Role     MiniRole        `json:"role"`
	Position Position        `json:"position"`
}

// MiniGraph is the focused artist with its direct influencers above and the
// artists it influenced below
type MiniGraph struct {
	Nodes []MiniNode `json:"nodes"`
	Edges []Edge     `json:"edges"`

	// HasConnections is false when the artist declares no relations at all
	HasConnections bool `json:"hasConnections"`
	// Hidden counts resolvable relations dropped by MaxPerSide
	HiddenInfluencers int `json:"hiddenInfluencers,omitempty"`
	HiddenInfluenced  int `json:"hiddenInfluenced,omitempty"`
}

// MiniNetwork lays out artist's direct relations on two rows around the origin.
// Ids missing from idx are skipped before truncating each row to MaxPerSide.
// An id already placed keeps its first role.
func MiniNetwork(artist *catalog.Artist, idx catalog.ArtistIndex, eras map[string]*catalog.Era, opts MiniOptions) *MiniGraph {
	if artist == nil {
		return nil
	}
	if opts.MaxPerSide <= 0 {
		opts.MaxPerSide = DefaultMiniMaxPerSide
	}

	mini := &MiniGraph{
		Nodes:          []MiniNode{miniNode(artist, eras, RoleCenter, Position{})},
		Edges:          []Edge{},
		HasConnections: artist.HasRelations(),
	}

	placed := IDSet{artist.ID: {}}
	resolve := func(ids []string) []*catalog.Artist {
		var out []*catalog.Artist
		for _, id := range ids {
			a, ok := idx[id]
			if !ok || placed.Has(id) {
				continue
			}
			placed.Add(id)
			out = append(out, a)
		}
		return out
	}

	influencers := resolve(artist.InfluencedBy)
	if len(influencers) > opts.MaxPerSide {
		mini.HiddenInfluencers = len(influencers) - opts.MaxPerSide
		influencers = influencers[:opts.MaxPerSide]
	}
	influenced := resolve(artist.Influences)
	if len(influenced) > opts.MaxPerSide {
		mini.HiddenInfluenced = len(influenced) - opts.MaxPerSide
		influenced = influenced[:opts.MaxPerSide]
	}

	for i, a := range influencers {
		pos := Position{X: rowOffset(i, len(influencers), opts.Spacing), Y: -opts.RowOffset}
		mini.Nodes = append(mini.Nodes, miniNode(a, eras, RoleInfluencer, pos))
		mini.Edges = append(mini.Edges, Edge{
			ID: edgeID(a.ID, artist.ID), Source: a.ID, Target: artist.ID,
			Color: EdgeColor, Width: edgeWidth,
		})
	}
	for i, a := range influenced {
		pos := Position{X: rowOffset(i, len(influenced), opts.Spacing), Y: opts.RowOffset}
		mini.Nodes = append(mini.Nodes, miniNode(a, eras, RoleInfluenced, pos))
		mini.Edges = append(mini.Edges, Edge{
			ID: edgeID(artist.ID, a.ID), Source: artist.ID, Target: a.ID,
			Color: EdgeColor, Width: edgeWidth,
		})
	}
	return mini
}

// rowOffset centers n slots on x = 0
func rowOffset(i, n int, spacing float64) float64 {
	return (float64(i) - float64(n-1)/2) * spacing
}

func miniNode(a *catalog.Artist, eras map[string]*catalog.Era, role MiniRole, pos Position) MiniNode {
	primary := a.PrimaryEra()
	return MiniNode{
		ID:       a.ID,
		Artist:   a,
		Era:      eras[primary],
		Color:    ColorFor(primary),
		Role:     role,
		Position: pos,
	}
}
