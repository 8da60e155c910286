// Package export writes the publication list to citation and spreadsheet
// formats.
package export

import (
	"fmt"
	"strings"

	"github.com/mlab-site/labpubs/internal/publication"
)

// ToBibTeX converts a publication to a BibTeX entry. The key is the
// researchmap id prefixed with "rm".
func ToBibTeX(p publication.Publication) string {
	entryType := EntryType(p)
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{rm%s,\n", entryType, p.ID)

	if p.Authors != "" {
		fmt.Fprintf(&b, "  author = {%s},\n", formatAuthors(p.Authors))
	}

	fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(p.Title))

	if p.Journal != "" {
		fieldName := "journal"
		switch entryType {
		case "inproceedings":
			fieldName = "booktitle"
		case "misc":
			fieldName = "howpublished"
		}
		fmt.Fprintf(&b, "  %s = {%s},\n", fieldName, escapeLatex(p.Journal))
	}

	if p.Volume != "" {
		fmt.Fprintf(&b, "  volume = {%s},\n", escapeLatex(p.Volume))
	}
	if number := strings.Trim(p.Issue, "()"); number != "" {
		fmt.Fprintf(&b, "  number = {%s},\n", escapeLatex(number))
	}
	if p.Pages != "" {
		fmt.Fprintf(&b, "  pages = {%s},\n", strings.ReplaceAll(escapeLatex(p.Pages), "-", "--"))
	}

	if p.Year > 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", p.Year)
	}

	if p.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", p.DOI)
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", p.URL)
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple publications to BibTeX format.
func ToBibTeXList(pubs []publication.Publication) string {
	entries := make([]string, 0, len(pubs))
	for _, p := range pubs {
		entries = append(entries, ToBibTeX(p))
	}
	return strings.Join(entries, "\n")
}

// EntryType returns the BibTeX entry type for a publication.
func EntryType(p publication.Publication) string {
	switch p.SubCategory {
	case publication.Journal:
		return "article"
	case publication.Conference:
		return "inproceedings"
	default:
		return "misc"
	}
}

// formatAuthors turns the display list into BibTeX "and" form, dropping
// corresponding-author marks.
func formatAuthors(authors string) string {
	parts := strings.Split(authors, ",")
	names := make([]string, 0, len(parts))
	for _, a := range parts {
		a = strings.TrimSuffix(strings.TrimSpace(a), "*")
		if a != "" {
			names = append(names, escapeLatex(a))
		}
	}
	return strings.Join(names, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
