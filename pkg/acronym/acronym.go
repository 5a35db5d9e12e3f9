// Package acronym derives the short statute codes that Singapore Statutes
// Online uses in its Act URLs, e.g. "Arms Offences Act 2006" -> "AOA2006".
package acronym

import (
	"fmt"
	"regexp"
	"strings"
)

// FixedProvisionAcronym is the code the provision links have always been
// built with, regardless of the statute they belong to.
const FixedProvisionAcronym = "AA2004"

var trailingYear = regexp.MustCompile(`\d{4}$`)

var stopWords = map[string]struct{}{
	"of": {}, "and": {}, "the": {}, "in": {}, "for": {},
	"on": {}, "to": {}, "with": {}, "by": {},
}

// Year returns the 4-digit year the trimmed name ends with.
func Year(name string) (string, bool) {
	year := trailingYear.FindString(strings.TrimSpace(name))
	return year, year != ""
}

// HasYear reports whether name ends in a 4-digit year.
func HasYear(name string) bool {
	_, ok := Year(name)
	return ok
}

// Derive builds the statute code: the upper-cased initials of every word
// that is not a stop word, followed by the trailing year if there is one.
func Derive(name string) string {
	trimmed := strings.TrimSpace(name)
	year, _ := Year(trimmed)
	base := strings.TrimSpace(strings.TrimSuffix(trimmed, year))

	var b strings.Builder
	for _, word := range strings.Fields(base) {
		if _, skip := stopWords[strings.ToLower(word)]; skip {
			continue
		}
		first := []rune(word)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	b.WriteString(year)
	return b.String()
}

// DetailURL returns the whole-document page of a statute. The code is used
// verbatim, punctuation included.
func DetailURL(siteURL, code string) string {
	return fmt.Sprintf("%s/Act/%s?WholeDoc=1", strings.TrimRight(siteURL, "/"), code)
}

// ProvisionURL returns a link to a single provision of a statute.
func ProvisionURL(siteURL, code, provID string) string {
	return fmt.Sprintf("%s&ProvIds=%s#%s", DetailURL(siteURL, code), provID, provID)
}
