// Package normalize maps researchmap records onto the flat Publication shape
// used by the site.
package normalize

import (
	"slices"
	"sort"
	"strings"

	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/researchmap"
)

// CorrespondingMark is appended to the owner's name when the owner is the
// corresponding author.
const CorrespondingMark = "*"

// Config configures a Normalizer.
type Config struct {
	// Owner lists the spellings of the lab owner's name.
	Owner Matchers
	// MissingDate is displayed for records without a date. Defaults to
	// DefaultMissingDate.
	MissingDate string
}

// Normalizer converts raw records into publications. It is stateless after
// construction and safe to reuse.
type Normalizer struct {
	owner       Matchers
	missingDate string
}

// New creates a Normalizer.
func New(cfg Config) *Normalizer {
	missing := cfg.MissingDate
	if missing == "" {
		missing = DefaultMissingDate
	}
	return &Normalizer{
		owner:       slices.Clone(cfg.Owner),
		missingDate: missing,
	}
}

// Normalize converts a single record.
func (n *Normalizer) Normalize(r researchmap.RawRecord) publication.Publication {
	display, year := ParseDate(r.PublicationDate, n.missingDate)

	var issue string
	if r.Number != "" {
		issue = "(" + r.Number.String() + ")"
	}

	return publication.Publication{
		ID:          r.ID,
		Type:        r.Type,
		Category:    Classify(r.Type, r.Languages),
		SubCategory: ClassifySub(r.Type),
		Title:       firstText(&r, titleChain),
		Authors:     n.formatAuthors(&r),
		Journal:     firstText(&r, journalChain),
		Volume:      r.Volume.String(),
		Issue:       issue,
		Pages:       firstText(&r, pagesChain),
		DateDisplay: display,
		Year:        year,
		DOI:         firstDOI(&r),
		URL:         firstText(&r, urlChain),
	}
}

// NormalizeAll converts every record and sorts the result by year, newest
// first. Records sharing a year keep their input order.
func (n *Normalizer) NormalizeAll(records []researchmap.RawRecord) []publication.Publication {
	pubs := make([]publication.Publication, len(records))
	for i, r := range records {
		pubs[i] = n.Normalize(r)
	}
	SortByYear(pubs)
	return pubs
}

// SortByYear stable-sorts pubs by year descending. Year 0 sorts last.
func SortByYear(pubs []publication.Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return pubs[i].Year > pubs[j].Year
	})
}

func (n *Normalizer) formatAuthors(r *researchmap.RawRecord) string {
	authors := firstAuthors(r, authorsChain)
	mark := slices.Contains(r.OwnerRoles, researchmap.RoleCorresponding)

	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
		if mark && n.owner.Match(a.Name) {
			names[i] += CorrespondingMark
		}
	}
	return strings.Join(names, ", ")
}

// Classify derives the category. Japanese-language records are Domestic,
// but an international conference paper is always International.
func Classify(paperType string, languages []string) publication.Category {
	category := publication.International
	if slices.Contains(languages, researchmap.LangJapanese) {
		category = publication.Domestic
	}
	if paperType == researchmap.TypeInternationalConference {
		category = publication.International
	}
	return category
}

// ClassifySub derives the sub-category from the paper type.
func ClassifySub(paperType string) publication.SubCategory {
	switch paperType {
	case researchmap.TypeScientificJournal:
		return publication.Journal
	case researchmap.TypeInternationalConference, researchmap.TypeSymposium:
		return publication.Conference
	default:
		return publication.Other
	}
}
