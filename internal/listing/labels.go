package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// Lang is a page language.
type Lang string

const (
	English  Lang = "en"
	Japanese Lang = "ja"
)

// ParseLang accepts "en" or "ja" (case-insensitive). Empty means English.
func ParseLang(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en":
		return English, nil
	case "ja":
		return Japanese, nil
	}
	return "", fmt.Errorf("unknown language %q (valid: en, ja)", s)
}

// LabelSet holds the headings and messages of the publication page.
type LabelSet struct {
	International     string
	Journals          string
	Conferences       string
	Other             string
	Domestic          string
	SearchPlaceholder string
	FilterHint        string
	NoData            string
	NoResults         string
	UnknownYear       string
}

var labels = map[Lang]LabelSet{
	English: {
		International:     "International",
		Journals:          "Journals",
		Conferences:       "Conferences",
		Other:             "Other",
		Domestic:          "Domestic",
		SearchPlaceholder: "Search by title, author, venue...",
		FilterHint:        "Filter by Author, Conference, Title...",
		NoData:            "No publications available.",
		NoResults:         "No publications found matching",
		UnknownYear:       "Undated",
	},
	Japanese: {
		International:     "国際発表",
		Journals:          "学術論文",
		Conferences:       "国際会議",
		Other:             "その他",
		Domestic:          "国内発表",
		SearchPlaceholder: "タイトル、著者、会議名などで検索...",
		FilterHint:        "著者名、会議名、タイトルなどで絞り込み",
		NoData:            "論文データがありません。",
		NoResults:         "一致する論文が見つかりません",
		UnknownYear:       "年不明",
	},
}

// Labels returns the label set for lang, falling back to English.
func Labels(lang Lang) LabelSet {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[English]
}

// YearHeading returns the heading for a year group.
func (l LabelSet) YearHeading(year int) string {
	if year == 0 {
		return l.UnknownYear
	}
	return strconv.Itoa(year)
}
