package catalog

import "strings"

// DefaultSearchLimit is the result cap for artist search
const DefaultSearchLimit = 8

// SearchArtists returns artists whose name or any instrument contains query,
// case-insensitively, in store order, at most limit results.
// A blank query matches nothing. limit <= 0 uses DefaultSearchLimit.
func (c *Catalog) SearchArtists(query string, limit int) []Artist {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Artist{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	out := []Artist{}
	for _, a := range c.Artists {
		if len(out) >= limit {
			break
		}
		if matchesArtist(&a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matchesArtist(a *Artist, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(a.Name), lowerQuery) {
		return true
	}
	for _, inst := range a.Instruments {
		if strings.Contains(strings.ToLower(inst), lowerQuery) {
			return true
		}
	}
	return false
}
