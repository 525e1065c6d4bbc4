// Package citation finds references to earlier resolutions and the dates
// they were adopted.
package citation

import (
	"regexp"
	"strings"

	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

const (
	number   = `\w*-*\d+[/]*[.]*\d+\s*\(*\w*-*\w*\)*`
	longDate = `[0-9]{1,2} [A-Za-z]{3,9} [0-9]{4}`
)

// phrasePattern lists the citation shapes, most specific first.
var phrasePattern = regexp.MustCompile(strings.Join([]string{
	`resolutions ` + number + ` .* and all subsequent related resolutions`,
	`resolutions ` + number + ` of ` + longDate + `.* and ` + number + ` of ` + longDate,
	`resolutions ` + number + ` and ` + number + ` of ` + longDate,
	`resolution ` + number + ` of ` + longDate,
	`resolutions ` + number + `.* and \w*-*\d+[/]*\d+\s*\(*\w*-*\w*\)* of ` + longDate,
	`resolutions ` + number + `.* and \w*-*\d+[/]*\d+\s*\(*\w*-*\w*\)*`,
	`resolution \w*-*\d+[/]*[.]*\d+ \(\w*-*\w*\)`,
	`resolution \w*-*\d+[/]*[.]*\d+`,
}, "|"))

var months = strings.NewReplacer(
	" January ", "/01/",
	" February ", "/02/",
	" March ", "/03/",
	" April ", "/04/",
	" May ", "/05/",
	" June ", "/06/",
	" July ", "/07/",
	" August ", "/08/",
	" September ", "/09/",
	" October ", "/10/",
	" November ", "/11/",
	" December ", "/12/",
)

var (
	separator = regexp.MustCompile(`,|and`)
	shortDate = regexp.MustCompile(`of ([0-9]{1,2}/[0-9]{2}/[0-9]{4})`)
)

// parseRule turns one mention into an identifier. Rules are tried in order
// and the first whose detector matches wins.
type parseRule struct {
	detect *regexp.Regexp
	id     *regexp.Regexp
	group  int
	dated  bool
}

var parseRules = []parseRule{
	{
		detect: regexp.MustCompile(`resolution\w* (.*) of ([0-9]{1,2}/[0-9]{2}/[0-9]{4})`),
		id:     regexp.MustCompile(`resolution\w* (.*) of`),
		group:  1,
		dated:  true,
	},
	{
		detect: regexp.MustCompile(`\s*(.*) of ([0-9]{1,2}/[0-9]{2}/[0-9]{4})`),
		id:     regexp.MustCompile(`\s*(.*) of`),
		group:  1,
		dated:  true,
	},
	{
		detect: regexp.MustCompile(`resolution\w* (.*)`),
		id:     regexp.MustCompile(`resolution\w* (.*)`),
		group:  1,
	},
	{
		detect: regexp.MustCompile(number),
		id:     regexp.MustCompile(number),
		group:  0,
	},
}

// Result holds the citations found in one paragraph.
type Result struct {
	// Phrases are the raw citation phrases in order of appearance.
	Phrases []string
	// Citations are the parsed identifiers in order of appearance. The same
	// identifier may appear more than once; the last date applies.
	Citations []corpus.Citation
}

// Extract finds citation phrases in raw paragraph content and parses them.
func Extract(content string) Result {
	text := textnorm.Printable(strings.ReplaceAll(content, "\t", " "))

	var res Result
	for _, phrase := range phrasePattern.FindAllString(text, -1) {
		res.Phrases = append(res.Phrases, phrase)
		for _, piece := range separator.Split(months.Replace(phrase), -1) {
			if c, ok := Parse(piece); ok {
				res.Citations = append(res.Citations, c)
			}
		}
	}
	return res
}

// Parse converts a single mention such as "resolution 70/1 of 25/09/2015"
// into an identifier and date. Mentions without a parsable date get
// corpus.DateNA.
func Parse(mention string) (corpus.Citation, bool) {
	for _, r := range parseRules {
		if !r.detect.MatchString(mention) {
			continue
		}
		m := r.id.FindStringSubmatch(mention)
		if m == nil {
			return corpus.Citation{}, false
		}
		id := strings.TrimSpace(m[r.group])
		if id == "" {
			return corpus.Citation{}, false
		}
		date := corpus.DateNA
		if r.dated {
			if d := shortDate.FindStringSubmatch(mention); d != nil {
				date = d[1]
			}
		}
		return corpus.Citation{Resolution: id, Date: date}, true
	}
	return corpus.Citation{}, false
}
