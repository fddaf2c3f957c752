package catalog

// Era ids in chronological order
const (
	EraEarlyJazz    = "early-jazz"
	EraSwing        = "swing"
	EraBebop        = "bebop"
	EraCoolJazz     = "cool-jazz"
	EraHardBop      = "hard-bop"
	EraFreeJazz     = "free-jazz"
	EraFusion       = "fusion"
	EraContemporary = "contemporary"
)

// EraOrder is the fixed total order of eras
var EraOrder = []string{
	EraEarlyJazz,
	EraSwing,
	EraBebop,
	EraCoolJazz,
	EraHardBop,
	EraFreeJazz,
	EraFusion,
	EraContemporary,
}

var eraRanks = func() map[string]int {
	m := make(map[string]int, len(EraOrder))
	for i, id := range EraOrder {
		m[id] = i
	}
	return m
}()

// EraRank returns the position of id in EraOrder, or -1 for an unknown era
func EraRank(id string) int {
	if r, ok := eraRanks[id]; ok {
		return r
	}
	return -1
}

// IsKnownEra reports whether id is one of the fixed eras
func IsKnownEra(id string) bool {
	return EraRank(id) >= 0
}
