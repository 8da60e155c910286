// Package researchmap provides a client for the researchmap published_papers
// listing and the raw record types it returns.
package researchmap

import (
	"encoding/json"
	"log/slog"
)

// FlexibleString can unmarshal from either string or number JSON values.
// researchmap emits locants such as volume and starting_page either way.
// Values of any other shape decode as empty.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	// Any other shape (object, array, bool) is treated as absent.
	slog.Debug("ignoring unexpected locant value", "value", string(data))
	*f = ""
	return nil
}

func (f FlexibleString) String() string {
	return string(f)
}

// LangText is a field carried in both languages.
type LangText struct {
	En string `json:"en,omitempty"`
	Ja string `json:"ja,omitempty"`
}

// Author is one entry of an author list.
type Author struct {
	Name string `json:"name"`
}

// LangAuthors holds the author list per language.
type LangAuthors struct {
	En []Author `json:"en,omitempty"`
	Ja []Author `json:"ja,omitempty"`
}

// Identifiers holds the identifier block of a record.
type Identifiers struct {
	DOI []string `json:"doi,omitempty"`
}

// Link is an entry of see_also.
type Link struct {
	ID    string `json:"@id"`
	Label string `json:"label"`
}

// RawRecord is a published_papers item as returned by researchmap.
// Only the fields consumed by normalization are decoded.
type RawRecord struct {
	ID              string         `json:"rm:id"`
	Type            string         `json:"published_paper_type"`
	Title           LangText       `json:"paper_title"`
	PublicationName LangText       `json:"publication_name"`
	PublicationDate string         `json:"publication_date"`
	Authors         LangAuthors    `json:"authors"`
	OwnerRoles      []string       `json:"published_paper_owner_roles,omitempty"`
	Volume          FlexibleString `json:"volume,omitempty"`
	Number          FlexibleString `json:"number,omitempty"`
	StartingPage    FlexibleString `json:"starting_page,omitempty"`
	EndingPage      FlexibleString `json:"ending_page,omitempty"`
	Page            FlexibleString `json:"page,omitempty"`
	Identifiers     Identifiers    `json:"identifiers"`
	SeeAlso         []Link         `json:"see_also,omitempty"`
	Languages       []string       `json:"languages,omitempty"`
}

// Paper type values that drive classification.
const (
	TypeScientificJournal       = "scientific_journal"
	TypeInternationalConference = "international_conference_proceedings"
	TypeSymposium               = "symposium"
)

// Other well-known values.
const (
	LangJapanese      = "jpn"
	RoleCorresponding = "corresponding"
	LinkLabelDOI      = "doi"
	LinkLabelURL      = "url"
)

// listResponse is the envelope of the published_papers listing. Items are
// decoded one by one so a malformed record does not discard the others.
type listResponse struct {
	TotalItems int               `json:"total_items,omitempty"`
	Items      []json.RawMessage `json:"items"`
}
