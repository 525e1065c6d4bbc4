package reference

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`\w+`)

// WordCount is a word and how often it occurs.
type WordCount struct {
	Word  string
	Count int
}

// CategoryProfile lists the most frequent words of a category's statements.
type CategoryProfile struct {
	Category string
	Words    []WordCount
}

// Categories returns the taxonomy categories in first-seen order, targets
// before indicators.
func (r *Registry) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range [][]Statement{r.Targets, r.Indicators} {
		for _, s := range list {
			if _, ok := seen[s.Category]; ok || s.Category == "" {
				continue
			}
			seen[s.Category] = struct{}{}
			out = append(out, s.Category)
		}
	}
	return out
}

// CategoryKeywords returns, per category, the n most frequent non-stopword
// words across its targets and indicators. Ties keep first-seen order.
func (r *Registry) CategoryKeywords(n int) []CategoryProfile {
	var out []CategoryProfile
	for _, category := range r.Categories() {
		var texts []string
		for _, list := range [][]Statement{r.Targets, r.Indicators} {
			for _, s := range list {
				if s.Category == category {
					texts = append(texts, s.Text)
				}
			}
		}
		joined := strings.ReplaceAll(strings.ToLower(strings.Join(texts, " ")), "\t", " ")

		counts := make(map[string]int)
		var order []string
		for _, w := range wordPattern.FindAllString(joined, -1) {
			if r.IsStopword(w) {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}

		words := make([]WordCount, len(order))
		for i, w := range order {
			words[i] = WordCount{Word: w, Count: counts[w]}
		}
		sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })
		if n > 0 && len(words) > n {
			words = words[:n]
		}
		out = append(out, CategoryProfile{Category: category, Words: words})
	}
	return out
}
