// Package classify derives a document's type and number from its link and
// title. Both tables are ordered and the first matching entry wins.
package classify

import (
	"regexp"
	"strings"

	"github.com/verge88/api-npa3/internal/domain"
)

// TypeRule maps href substrings to a document type.
type TypeRule struct {
	Substrings []string
	Type       domain.DocumentType
}

// typeRules is checked top to bottom. "/sp" is a prefix of many unrelated
// paths, so it must stay below every more specific rule.
var typeRules = []TypeRule{
	{Substrings: []string{"/gost", "/standart"}, Type: domain.TypeStandard},
	{Substrings: []string{"/federalnyj-zakon"}, Type: domain.TypeFederalLaw},
	{Substrings: []string{"/prikaz"}, Type: domain.TypeOrder},
	{Substrings: []string{"/postanovlenie"}, Type: domain.TypeResolution},
	{Substrings: []string{"/snip"}, Type: domain.TypeBuildNorm},
	{Substrings: []string{"/sp"}, Type: domain.TypePractice},
}

// numberPatterns is applied to "title href". Each has exactly one capture group.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`№\s*(\d+[-/]\d+)`),
	regexp.MustCompile(`(\d{4,5}[-/]\d{4})`),
	regexp.MustCompile(`ГОСТ\s+Р?\s*(\d+(?:\.\d+)*[-/]\d+)`),
	regexp.MustCompile(`СП\s+(\d+(?:\.\d+)*)`),
	regexp.MustCompile(`СНиП\s+(\d+(?:\.\d+)*[-/]\d+)`),
	regexp.MustCompile(`(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(\d+-\d+)`),
}

// TypeRules returns a copy of the type table in priority order.
func TypeRules() []TypeRule {
	out := make([]TypeRule, len(typeRules))
	copy(out, typeRules)
	return out
}

// DocumentType classifies href. Matching is case-insensitive; hrefs that
// match no rule are TypeGeneric.
func DocumentType(href string) domain.DocumentType {
	lower := strings.ToLower(href)
	for _, rule := range typeRules {
		for _, sub := range rule.Substrings {
			if strings.Contains(lower, sub) {
				return rule.Type
			}
		}
	}
	return domain.TypeGeneric
}

// DocumentNumber extracts an identifier such as "12345-67" from the title
// and href, or returns nil.
func DocumentNumber(title, href string) *string {
	return FirstMatch(numberPatterns, title+" "+href)
}

// FirstMatch returns the first capture group of the first pattern that
// matches text, or nil.
func FirstMatch(patterns []*regexp.Regexp, text string) *string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			v := m[1]
			return &v
		}
	}
	return nil
}
