package listing

import "github.com/mlab-site/labpubs/internal/publication"

// State tells the page what to show.
type State string

const (
	// StateOK means at least one publication matched.
	StateOK State = "ok"
	// StateNoData means the snapshot is empty.
	StateNoData State = "no_data"
	// StateNoResults means the query matched nothing.
	StateNoResults State = "no_results"
)

// YearSection is one year heading and its sections.
type YearSection struct {
	Year int `json:"year"`
	Sections
}

// View is the derived publication page for a query.
type View struct {
	Query   string        `json:"query"`
	Total   int           `json:"total"`
	Matched int           `json:"matched"`
	State   State         `json:"state"`
	Years   []YearSection `json:"years"`
}

// Build filters pubs by query and lays the result out by year.
func Build(pubs []publication.Publication, query string) View {
	v := View{
		Query: query,
		Total: len(pubs),
		Years: []YearSection{},
	}
	if len(pubs) == 0 {
		v.State = StateNoData
		return v
	}

	filtered := Filter(pubs, query)
	v.Matched = len(filtered)
	if len(filtered) == 0 {
		v.State = StateNoResults
		return v
	}

	groups := GroupByYear(filtered)
	for _, y := range SortedYears(groups) {
		v.Years = append(v.Years, YearSection{Year: y, Sections: Bucket(groups[y])})
	}
	v.State = StateOK
	return v
}
