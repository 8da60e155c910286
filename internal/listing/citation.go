package listing

import (
	"strings"

	"github.com/mlab-site/labpubs/internal/publication"
)

// Citation formats p the way the page lists it:
//
//	Authors: Title, Journal, Vol(Issue), Pages (Date).
func Citation(p publication.Publication) string {
	var b strings.Builder
	b.WriteString(p.Authors)
	b.WriteString(": ")
	b.WriteString(p.Title)
	b.WriteString(", ")
	b.WriteString(p.Journal)
	if p.Volume != "" {
		b.WriteString(", ")
		b.WriteString(p.Volume)
	}
	b.WriteString(p.Issue)
	if p.Pages != "" {
		b.WriteString(", ")
		b.WriteString(p.Pages)
	}
	b.WriteString(" ")
	b.WriteString(p.DateDisplay)
	b.WriteString(".")
	return b.String()
}

// Link is an external link rendered after a citation.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Links returns the DOI link, if any, followed by the URL link when it adds
// something the DOI link does not already point at.
func Links(p publication.Publication) []Link {
	var links []Link
	if p.DOI != "" {
		links = append(links, Link{Label: "DOI", Href: "https://doi.org/" + p.DOI})
	}
	if p.URL != "" && !strings.Contains(p.URL, "doi.org") &&
		(p.DOI == "" || !strings.Contains(p.URL, p.DOI)) {
		links = append(links, Link{Label: "URL", Href: p.URL})
	}
	return links
}
