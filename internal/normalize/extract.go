package normalize

import (
	"github.com/mlab-site/labpubs/internal/researchmap"
)

// Each fallback chain is an ordered list of extractors; the first one that
// yields a non-empty value wins.

type textExtractor func(r *researchmap.RawRecord) string

type authorsExtractor func(r *researchmap.RawRecord) []researchmap.Author

func firstText(r *researchmap.RawRecord, chain []textExtractor) string {
	for _, extract := range chain {
		if v := extract(r); v != "" {
			return v
		}
	}
	return ""
}

func firstAuthors(r *researchmap.RawRecord, chain []authorsExtractor) []researchmap.Author {
	for _, extract := range chain {
		if v := extract(r); len(v) > 0 {
			return v
		}
	}
	return nil
}

var titleChain = []textExtractor{
	func(r *researchmap.RawRecord) string { return r.Title.En },
	func(r *researchmap.RawRecord) string { return r.Title.Ja },
}

var journalChain = []textExtractor{
	func(r *researchmap.RawRecord) string { return r.PublicationName.En },
	func(r *researchmap.RawRecord) string { return r.PublicationName.Ja },
}

var authorsChain = []authorsExtractor{
	func(r *researchmap.RawRecord) []researchmap.Author { return r.Authors.En },
	func(r *researchmap.RawRecord) []researchmap.Author { return r.Authors.Ja },
}

var pagesChain = []textExtractor{
	func(r *researchmap.RawRecord) string {
		if r.StartingPage != "" && r.EndingPage != "" {
			return r.StartingPage.String() + "-" + r.EndingPage.String()
		}
		return ""
	},
	func(r *researchmap.RawRecord) string { return r.StartingPage.String() },
	func(r *researchmap.RawRecord) string { return r.Page.String() },
}

var urlChain = []textExtractor{
	func(r *researchmap.RawRecord) string { return seeAlso(r, researchmap.LinkLabelDOI) },
	func(r *researchmap.RawRecord) string {
		if doi := firstDOI(r); doi != "" {
			return "https://doi.org/" + doi
		}
		return ""
	},
	func(r *researchmap.RawRecord) string { return seeAlso(r, researchmap.LinkLabelURL) },
}

// seeAlso returns the first link carrying the given label.
func seeAlso(r *researchmap.RawRecord, label string) string {
	for _, l := range r.SeeAlso {
		if l.Label == label {
			return l.ID
		}
	}
	return ""
}

func firstDOI(r *researchmap.RawRecord) string {
	if len(r.Identifiers.DOI) == 0 {
		return ""
	}
	return r.Identifiers.DOI[0]
}
