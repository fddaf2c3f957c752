package graph

import (
	"math"

	"github.com/teranos/jazzgraph/catalog"
)

// DefaultRadius is the circle radius used by RadialLayout
const DefaultRadius = 150

// Era band spacing
const (
	eraBandCenterX  = 400
	eraBandSpacing  = 180
	eraBandRowSpace = 150
)

// RadialLayout puts center at the origin and spreads surrounding evenly on a
// circle, the first at the top, going clockwise in screen coordinates.
// Positions are node centers. A radius <= 0 uses DefaultRadius.
func RadialLayout(center Node, surrounding []Node, radius float64) []Node {
	if radius <= 0 {
		radius = DefaultRadius
	}
	out := make([]Node, 0, len(surrounding)+1)
	center.Position = Position{}
	out = append(out, center)

	if len(surrounding) == 0 {
		return out
	}
	step := 2 * math.Pi / float64(len(surrounding))
	for i, n := range surrounding {
		angle := float64(i)*step - math.Pi/2
		n.Position = Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
		out = append(out, n)
	}
	return out
}

// EraBandLayout stacks one row per era in chronological order, 150 apart,
// each row centered on x = 400 with 180 between nodes. Nodes whose primary
// era is missing or unknown join the contemporary row. Input order is kept within a row.
func EraBandLayout(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)

	rows := make([][]int, len(catalog.EraOrder))
	fallback := catalog.EraRank(catalog.EraContemporary)
	for i := range out {
		row := fallback
		if out[i].Artist != nil {
			if r := catalog.EraRank(out[i].Artist.PrimaryEra()); r >= 0 {
				row = r
			}
		}
		rows[row] = append(rows[row], i)
	}

	for row, members := range rows {
		for i, v := range members {
			out[v].Position = Position{
				X: eraBandCenterX + rowOffset(i, len(members), eraBandSpacing),
				Y: float64(row * eraBandRowSpace),
			}
		}
	}
	return out
}
