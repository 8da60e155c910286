// Package publication defines the canonical publication record shared by the
// fetch pipeline, the snapshot and the presentation layer.
package publication

import (
	"errors"
	"fmt"
)

// Category is the International/Domestic classification axis.
type Category string

const (
	International Category = "International"
	Domestic      Category = "Domestic"
)

// SubCategory is the venue-kind classification axis.
type SubCategory string

const (
	Journal    SubCategory = "Journal"
	Conference SubCategory = "Conference"
	Other      SubCategory = "Other"
)

// Publication is one normalized entry of the publication list.
//
// The JSON field names are read by the site's page templates and must not
// change.
type Publication struct {
	ID          string      `json:"id"`   // researchmap rm:id
	Type        string      `json:"type"` // raw published_paper_type, kept verbatim
	Category    Category    `json:"category"`
	SubCategory SubCategory `json:"subCategory"`

	Title   string `json:"title"`
	Authors string `json:"authors"`
	Journal string `json:"journal"`

	Volume string `json:"volume"`
	Issue  string `json:"issue"` // "(n)" or empty
	Pages  string `json:"pages"`

	DateDisplay string `json:"dateDisplay"` // "(Aug. 2025)", "(2025)", "(n.d.)"
	Year        int    `json:"year"`        // 0 when unknown

	DOI string `json:"doi,omitempty"`
	URL string `json:"url,omitempty"`
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	return c == International || c == Domestic
}

// Valid reports whether s is one of the enumerated sub-categories.
func (s SubCategory) Valid() bool {
	return s == Journal || s == Conference || s == Other
}

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid publication list")

// Validate checks the collection-level invariants: unique ids, non-negative
// years and enumerated categories. All problems are joined into one error.
func Validate(pubs []Publication) error {
	var errs []error
	seen := make(map[string]int, len(pubs))
	for i, p := range pubs {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%w: entry %d has an empty id", ErrInvalid, i))
		} else if first, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate id %q (entries %d and %d)", ErrInvalid, p.ID, first, i))
		} else {
			seen[p.ID] = i
		}
		if p.Year < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has negative year %d", ErrInvalid, p.ID, p.Year))
		}
		if !p.Category.Valid() {
			errs = append(errs, fmt.Errorf("%w: %s has unknown category %q", ErrInvalid, p.ID, p.Category))
		}
		if !p.SubCategory.Valid() {
			errs = append(errs, fmt.Errorf("%w: %s has unknown subCategory %q", ErrInvalid, p.ID, p.SubCategory))
		}
	}
	return errors.Join(errs...)
}
