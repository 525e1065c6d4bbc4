package reference

import (
	"regexp"
	"strings"

	"github.com/TobiSchelling/resextract/internal/textnorm"
)

var (
	parenthesized = regexp.MustCompile(`\(.*?\)`)
	standaloneUN  = regexp.MustCompile(`\bUN\b`)
	entityPunct   = strings.NewReplacer(",", "", ";", "", ":", "", ".", "", `"`, "")
)

// NormalizeCountries trims country names and spells out ampersands.
func NormalizeCountries(raw []string) []string {
	var out []string
	for _, c := range raw {
		c = strings.ReplaceAll(strings.TrimSpace(c), "&", "and")
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// EntityNames merges the published entity lists into the known-entity
// registry: agencies first, then known organizations, cleaned corporate
// names and AdditionalOrganizations. Country names are excluded and the
// result is deduplicated in first-seen order.
func EntityNames(agencies, known, corporate, countries []string) []string {
	isCountry := toSet(countries)

	var all []string
	all = append(all, agencies...)
	all = append(all, known...)
	for _, name := range corporate {
		if _, ok := isCountry[name]; ok {
			continue
		}
		name = parenthesized.ReplaceAllString(name, "")
		name = standaloneUN.ReplaceAllString(name, "United Nations")
		name = strings.TrimSpace(strings.ReplaceAll(name, ".", ""))
		all = append(all, name)
	}
	all = append(all, AdditionalOrganizations...)

	seen := make(map[string]struct{}, len(all))
	var out []string
	for _, name := range all {
		if _, ok := isCountry[name]; ok {
			continue
		}
		name = strings.Join(strings.Fields(textnorm.Printable(entityPunct.Replace(name))), " ")
		if name == "" {
			continue
		}
		if _, ok := isCountry[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
