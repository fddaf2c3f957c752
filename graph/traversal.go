package graph

import "github.com/teranos/jazzgraph/catalog"

// IDSet is a set of artist ids
type IDSet map[string]struct{}

// Add inserts id
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Has reports membership
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// neighbors lists influences then influencedBy, as declared
func neighbors(a *catalog.Artist) []string {
	out := make([]string, 0, len(a.Influences)+len(a.InfluencedBy))
	out = append(out, a.Influences...)
	return append(out, a.InfluencedBy...)
}

// Neighborhood returns every artist within depth hops of focusID over the
// undirected influence relation, focusID included.
// Ids absent from the index are never expanded or returned, except focusID itself.
func Neighborhood(focusID string, depth int, idx catalog.ArtistIndex) IDSet {
	visited := IDSet{focusID: {}}
	frontier := []string{focusID}

	for round := 0; round < depth && len(frontier) > 0; round++ {
		var next []string
		for _, id := range frontier {
			a, ok := idx[id]
			if !ok {
				continue
			}
			for _, n := range neighbors(a) {
				if visited.Has(n) {
					continue
				}
				if _, ok := idx[n]; !ok {
					continue
				}
				visited.Add(n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return visited
}

// ShortestPath finds one shortest chain of artists linking startID to endID
// over the undirected influence relation. It returns nil when either id is
// unknown or no chain exists. Ties go to whichever neighbor is discovered first
// in influences-then-influencedBy order, not the lexicographically smallest.
func ShortestPath(startID, endID string, idx catalog.ArtistIndex) []string {
	if _, ok := idx[startID]; !ok {
		return nil
	}
	if _, ok := idx[endID]; !ok {
		return nil
	}
	if startID == endID {
		return []string{startID}
	}

	parent := map[string]string{}
	visited := IDSet{startID: {}}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		a, ok := idx[current]
		if !ok {
			continue
		}
		for _, n := range neighbors(a) {
			if visited.Has(n) {
				continue
			}
			if _, ok := idx[n]; !ok {
				continue
			}
			visited.Add(n)
			parent[n] = current
			if n == endID {
				return unwind(parent, startID, endID)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func unwind(parent map[string]string, startID, endID string) []string {
	path := []string{endID}
	for id := endID; id != startID; {
		id = parent[id]
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Degrees is the number of hops along path, or -1 when there is no path
func Degrees(path []string) int {
	if len(path) == 0 {
		return -1
	}
	return len(path) - 1
}
