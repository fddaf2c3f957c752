package graph

import (
	"time"

	"github.com/teranos/jazzgraph/catalog"
)

// Graph is the influence network for one query
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Meta  Meta   `json:"meta"`

	// ArtistIndex resolves any artist id the nodes reference, filtered or not
	ArtistIndex catalog.ArtistIndex `json:"-"`
}

// Size is the visual scale bucket of a node
type Size string

const (
	SizeSM Size = "sm"
	SizeMD Size = "md"
	SizeLG Size = "lg"
	SizeXL Size = "xl"
)

// Position is a 2D coordinate.
// The layered layout stores the node's top-left corner; era, mini and
// radial layouts store an anchor point with no footprint adjustment.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node wraps one artist with derived display attributes.
// Nodes are rebuilt on every query.
type Node struct {
	ID             string          `json:"id"`
	Artist         *catalog.Artist `json:"artist"`
	Era            *catalog.Era    `json:"era,omitempty"` // primary era, nil when unknown
	Color          string          `json:"color"`
	InfluenceCount int             `json:"influenceCount"`
	Size           Size            `json:"size"`
	Width          float64         `json:"width"`
	Height         float64         `json:"height"`
	Position       Position        `json:"position"`

	Selected bool `json:"selected,omitempty"`
	// Highlighted marks neighbors of the selected node
	Highlighted bool `json:"highlighted,omitempty"`
	OnPath      bool `json:"onPath,omitempty"`
	// Dimmed marks nodes off the shown path
	Dimmed bool `json:"dimmed,omitempty"`
}

// Edge is a directed influence: Source influenced Target
type Edge struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Color       string  `json:"color"`
	Width       float64 `json:"width"`
	Highlighted bool    `json:"highlighted,omitempty"`
	OnPath      bool    `json:"onPath,omitempty"`
}

// Filter narrows the graph. Zero values disable each filter.
// Focus applies when FocusArtistID is set; Depth counts relation hops from it.
type Filter struct {
	FocusArtistID string `json:"focusArtistId,omitempty"`
	Depth         int    `json:"depth,omitempty"`
	Era           string `json:"eraFilter,omitempty"`
	Genre         string `json:"genreFilter,omitempty"`
}

// HasFocus reports whether the focus filter is active
func (f Filter) HasFocus() bool {
	return f.FocusArtistID != ""
}

// IsZero reports whether no filter is active
func (f Filter) IsZero() bool {
	return f.FocusArtistID == "" && f.Era == "" && f.Genre == ""
}

// Meta contains metadata about the graph
type Meta struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Stats       Stats             `json:"stats"`
	Filter      Filter            `json:"filter"`
	Layout      string            `json:"layout,omitempty"`
	Config      map[string]string `json:"config,omitempty"` // error details when the query failed
}

// Stats provides graph statistics
type Stats struct {
	TotalNodes int `json:"total_nodes"`
	TotalEdges int `json:"total_edges"`
	Candidates int `json:"candidates"` // connected artists before filtering
}

// NodeByID returns the node with id, or nil
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

func emptyGraph(idx catalog.ArtistIndex, f Filter) *Graph {
	return &Graph{
		Nodes:       []Node{},
		Edges:       []Edge{},
		ArtistIndex: idx,
		Meta: Meta{
			GeneratedAt: time.Now(),
			Filter:      f,
		},
	}
}
