// Package filter narrows an already-loaded subject list by free-text search
// and discrete facets, mirroring the behavior of the enlistment table filter
// in the browser. It performs no lookups of its own.
package filter

import (
	"fmt"
	"strings"

	"github.com/plm-dev/enlistment-api/internal/models"
)

// Criteria is one filter evaluation: a case-insensitive search term plus two
// optional exact-match facets. Zero values disable the respective check.
type Criteria struct {
	Search    string
	YearLevel int
	Units     int
}

// YearLevelFromCode derives a year level from the first digit following the
// alphabetic prefix of a subject code: 2, 3 and 4 map to themselves, anything
// else maps to year 1 (e.g. "CS301" is year 3, "MATH101" is year 1).
func YearLevelFromCode(code string) int {
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if ch >= '0' && ch <= '9' {
			switch ch {
			case '2':
				return 2
			case '3':
				return 3
			case '4':
				return 4
			}
			return 1
		}
		if !(ch >= 'A' && ch <= 'Z') && !(ch >= 'a' && ch <= 'z') {
			break
		}
	}
	return 1
}

// searchText builds the searchable blob for a subject: code, name, units and
// the requisite summary, lowercased.
func searchText(s models.EligibleSubject) string {
	parts := []string{
		s.Code,
		s.Name,
		fmt.Sprintf("%d", s.Units),
	}
	for _, pre := range s.Prerequisites {
		parts = append(parts, "pre: "+pre.RequiredCode)
	}
	for _, co := range s.Corequisites {
		parts = append(parts, "co: "+co.RequiredCode)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Matches reports whether a single subject satisfies the criteria.
func (c Criteria) Matches(s models.EligibleSubject) bool {
	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		if !strings.Contains(searchText(s), term) {
			return false
		}
	}
	if c.YearLevel != 0 && YearLevelFromCode(s.Code) != c.YearLevel {
		return false
	}
	if c.Units != 0 && s.Units != c.Units {
		return false
	}
	return true
}

// Apply returns the subjects matching the criteria, preserving input order.
// Applying the same criteria twice yields the same set.
func Apply(subjects []models.EligibleSubject, c Criteria) []models.EligibleSubject {
	out := make([]models.EligibleSubject, 0, len(subjects))
	for _, s := range subjects {
		if c.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
