package graph

import "github.com/teranos/jazzgraph/catalog"

// EraColors keys node tint by primary era id
var EraColors = map[string]string{
	catalog.EraEarlyJazz:    "#f59e0b",
	catalog.EraSwing:        "#eab308",
	catalog.EraBebop:        "#84cc16",
	catalog.EraCoolJazz:     "#22d3ee",
	catalog.EraHardBop:      "#3b82f6",
	catalog.EraFreeJazz:     "#a855f7",
	catalog.EraFusion:       "#ec4899",
	catalog.EraContemporary: "#f43f5e",
}

const (
	// FallbackColor tints nodes whose primary era is missing or unknown
	FallbackColor = "#71717a"

	// HighlightColor is used for edges touching the selected node
	HighlightColor = "#22d3ee"
	// EdgeColor is the default edge stroke
	EdgeColor = "#f59e0b"
	// PathColor rings nodes on the shown path
	PathColor = "#fbbf24"

	edgeWidth         = 2
	emphasisEdgeWidth = 3
)

// Size bucket thresholds on influence count
const (
	thresholdXL = 10
	thresholdLG = 6
	thresholdMD = 3
)

type footprint struct {
	width, height float64
}

var footprints = map[Size]footprint{
	SizeSM: {140, 70},
	SizeMD: {160, 80},
	SizeLG: {180, 90},
	SizeXL: {200, 100},
}

// SizeFor buckets an influence count: >=10 xl, >=6 lg, >=3 md, else sm
func SizeFor(influenceCount int) Size {
	switch {
	case influenceCount >= thresholdXL:
		return SizeXL
	case influenceCount >= thresholdLG:
		return SizeLG
	case influenceCount >= thresholdMD:
		return SizeMD
	default:
		return SizeSM
	}
}

// Footprint returns the width and height reserved for a node of size s
func Footprint(s Size) (width, height float64) {
	fp, ok := footprints[s]
	if !ok {
		fp = footprints[SizeSM]
	}
	return fp.width, fp.height
}

// ColorFor returns the tint for an era id
func ColorFor(eraID string) string {
	if c, ok := EraColors[eraID]; ok {
		return c
	}
	return FallbackColor
}
