// Package listing derives the publication page from a loaded snapshot: free
// text filtering, grouping by year and the International/Domestic sections
// shown under each year. Nothing here mutates its input.
package listing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mlab-site/labpubs/internal/publication"
)

// Filter returns the publications whose title, authors or journal contain
// query (case-insensitive), or whose known year contains it. A blank query
// returns pubs unchanged.
func Filter(pubs []publication.Publication, query string) []publication.Publication {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return pubs
	}

	out := make([]publication.Publication, 0, len(pubs))
	for _, p := range pubs {
		if Matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p matches an already lower-cased query.
func Matches(p publication.Publication, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Authors), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Journal), lowerQuery) ||
		(p.Year > 0 && strings.Contains(strconv.Itoa(p.Year), lowerQuery))
}

// GroupByYear partitions pubs by year, keeping their relative order.
func GroupByYear(pubs []publication.Publication) map[int][]publication.Publication {
	groups := make(map[int][]publication.Publication)
	for _, p := range pubs {
		groups[p.Year] = append(groups[p.Year], p)
	}
	return groups
}

// SortedYears returns the keys of groups, newest first. Year 0 (unknown)
// comes last.
func SortedYears(groups map[int][]publication.Publication) []int {
	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// International holds the international entries of one year by venue kind.
type International struct {
	Journals    []publication.Publication `json:"journals,omitempty"`
	Conferences []publication.Publication `json:"conferences,omitempty"`
	Other       []publication.Publication `json:"other,omitempty"`
}

// Len returns the number of international entries.
func (i International) Len() int {
	return len(i.Journals) + len(i.Conferences) + len(i.Other)
}

// Sections is the per-year split shown on the page.
type Sections struct {
	International International             `json:"international"`
	Domestic      []publication.Publication `json:"domestic,omitempty"`
}

// Bucket splits pubs into sections, keeping relative order in each.
func Bucket(pubs []publication.Publication) Sections {
	var s Sections
	for _, p := range pubs {
		if p.Category == publication.Domestic {
			s.Domestic = append(s.Domestic, p)
			continue
		}
		switch p.SubCategory {
		case publication.Journal:
			s.International.Journals = append(s.International.Journals, p)
		case publication.Conference:
			s.International.Conferences = append(s.International.Conferences, p)
		default:
			s.International.Other = append(s.International.Other, p)
		}
	}
	return s
}
