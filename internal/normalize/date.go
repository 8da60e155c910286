package normalize

import (
	"strconv"
	"strings"
)

// DefaultMissingDate is displayed when a record carries no date at all.
const DefaultMissingDate = "(n.d.)"

var monthNames = map[string]string{
	"01": "Jan.", "02": "Feb.", "03": "Mar.", "04": "Apr.",
	"05": "May", "06": "Jun.", "07": "Jul.", "08": "Aug.",
	"09": "Sep.", "10": "Oct.", "11": "Nov.", "12": "Dec.",
}

// ParseDate turns a researchmap date (YYYY, YYYY-MM or YYYY-MM-DD) into the
// parenthesized display string and the numeric year. The year is 0 when it
// does not parse; an unknown month segment is ignored.
func ParseDate(s, missing string) (display string, year int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return missing, 0
	}

	parts := strings.Split(s, "-")
	yearPart := parts[0]
	if y, err := strconv.Atoi(yearPart); err == nil && y >= 0 {
		year = y
	}

	var month string
	if len(parts) > 1 {
		month = monthNames[parts[1]]
	}

	if month != "" {
		return "(" + month + " " + yearPart + ")", year
	}
	return "(" + yearPart + ")", year
}
