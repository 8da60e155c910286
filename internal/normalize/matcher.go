package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchMode selects how an owner name is compared with an author name.
type MatchMode string

const (
	// MatchExact compares folded forms for equality.
	MatchExact MatchMode = "exact"
	// MatchContains checks whether the folded author name contains the
	// folded owner name.
	MatchContains MatchMode = "contains"
)

// Matcher identifies one spelling of the lab owner's name.
type Matcher struct {
	Name string    `yaml:"name" json:"name"`
	Mode MatchMode `yaml:"match,omitempty" json:"match,omitempty"`
}

// Matchers is an ordered set of owner name spellings.
type Matchers []Matcher

// Fold returns the comparison form of a name: NFKC (so full-width letters
// and the ideographic space collapse to ASCII), case folded, with runs of
// whitespace reduced to a single space.
func Fold(name string) string {
	s := norm.NFKC.String(name)
	s = cases.Fold().String(s) // a Caser must not be shared between goroutines
	return strings.Join(strings.Fields(s), " ")
}

// Validate rejects empty names and unknown modes.
func (ms Matchers) Validate() error {
	for i, m := range ms {
		if Fold(m.Name) == "" {
			return fmt.Errorf("owner matcher %d: empty name", i)
		}
		switch m.Mode {
		case "", MatchExact, MatchContains:
		default:
			return fmt.Errorf("owner matcher %q: unknown match mode %q (valid: exact, contains)", m.Name, m.Mode)
		}
	}
	return nil
}

// Match reports whether name is one of the owner's spellings. Spaces are
// ignored when either side is written in Japanese script, so "前川卓也"
// matches "前川 卓也".
func (ms Matchers) Match(name string) bool {
	folded := Fold(name)
	if folded == "" {
		return false
	}
	for _, m := range ms {
		got, want := folded, Fold(m.Name)
		if want == "" {
			continue
		}
		if hasJapanese(got) || hasJapanese(want) {
			got, want = dropSpaces(got), dropSpaces(want)
		}
		switch m.Mode {
		case MatchContains:
			if strings.Contains(got, want) {
				return true
			}
		default:
			if got == want {
				return true
			}
		}
	}
	return false
}

func hasJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

func dropSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
