package export

import (
	"strings"
	"testing"

	"github.com/mlab-site/labpubs/internal/publication"
)

func TestToBibTeX_Journal(t *testing.T) {
	p := publication.Publication{
		ID:          "48000001",
		Category:    publication.International,
		SubCategory: publication.Journal,
		Title:       "Real-Time Tracking & Analysis",
		Authors:     "Ryoma Otsuka*, Takuya Maekawa*",
		Journal:     "Ecology and Evolution",
		Volume:      "15",
		Issue:       "(8)",
		Pages:       "100-110",
		Year:        2025,
		DOI:         "10.1002/ece3.71832",
		URL:         "https://doi.org/10.1002/ece3.71832",
	}

	got := ToBibTeX(p)

	for _, want := range []string{
		"@article{rm48000001,\n",
		"  author = {Ryoma Otsuka and Takuya Maekawa},\n",
		`  title = {Real-Time Tracking \& Analysis},` + "\n",
		"  journal = {Ecology and Evolution},\n",
		"  volume = {15},\n",
		"  number = {8},\n",
		"  pages = {100--110},\n",
		"  year = {2025},\n",
		"  doi = {10.1002/ece3.71832},\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() should contain %q, got:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should end with }, got:\n%s", got)
	}
}

func TestToBibTeX_ConferenceAndOther(t *testing.T) {
	conf := ToBibTeX(publication.Publication{ID: "1", SubCategory: publication.Conference, Title: "T", Journal: "UbiComp", Year: 2024})
	if !strings.HasPrefix(conf, "@inproceedings{rm1,") || !strings.Contains(conf, "booktitle = {UbiComp}") {
		t.Errorf("conference entry wrong:\n%s", conf)
	}

	other := ToBibTeX(publication.Publication{ID: "2", SubCategory: publication.Other, Title: "T", Journal: "arXiv"})
	if !strings.HasPrefix(other, "@misc{rm2,") || !strings.Contains(other, "howpublished = {arXiv}") {
		t.Errorf("misc entry wrong:\n%s", other)
	}
	if strings.Contains(other, "year =") {
		t.Errorf("unknown year should be omitted:\n%s", other)
	}
	if strings.Contains(other, "author =") || strings.Contains(other, "number =") {
		t.Errorf("empty fields should be omitted:\n%s", other)
	}
}

func TestToBibTeXList(t *testing.T) {
	got := ToBibTeXList([]publication.Publication{
		{ID: "1", SubCategory: publication.Journal, Title: "A"},
		{ID: "2", SubCategory: publication.Journal, Title: "B"},
	})
	if strings.Count(got, "@article{") != 2 {
		t.Errorf("ToBibTeXList() should contain 2 entries, got:\n%s", got)
	}
	if ToBibTeXList(nil) != "" {
		t.Error("ToBibTeXList(nil) should be empty")
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := map[string]string{
		"50% of $5": `50\% of \$5`,
		"a_b #1":    `a\_b \#1`,
		`{x}`:       `\{x\}`,
		`a\b`:       `a\textbackslash{}b`,
		"~^":        `\textasciitilde{}\textasciicircum{}`,
		"行動認識":      "行動認識",
	}
	for in, want := range tests {
		if got := escapeLatex(in); got != want {
			t.Errorf("escapeLatex(%q) = %q, want %q", in, got, want)
		}
	}
}
