package entity

// check is one condition an unregistered organization candidate must meet.
// words is the candidate split on whitespace, lower the same lowercased.
type check struct {
	name string
	ok   func(r *Resolver, org string, words, lower []string) bool
}

func defaultChecks() []check {
	return []check{
		{"multi-word", func(_ *Resolver, _ string, words, _ []string) bool {
			return len(words) > 1
		}},
		{"not registered", func(r *Resolver, org string, _, _ []string) bool {
			return !r.reg.IsKnownEntity(org)
		}},
		{"no trailing stopword", func(r *Resolver, _ string, _, lower []string) bool {
			return !r.reg.IsStopword(lower[len(lower)-1])
		}},
		{"organization keywords", func(r *Resolver, org string, _, _ []string) bool {
			return !r.reg.HasNonOrganizationKeyword(org) || r.reg.HasOrganizationKeyword(org)
		}},
		{"not part of a registered name", func(r *Resolver, org string, _, _ []string) bool {
			return !r.reg.WithinKnownEntity(org)
		}},
		{"no leading operative verb", func(r *Resolver, _ string, _, lower []string) bool {
			return !r.reg.IsPluralOperativeVerb(lower[0])
		}},
		{"no introductory verb", func(r *Resolver, _ string, _, lower []string) bool {
			for _, w := range lower {
				if r.reg.IsIntroductoryVerb(w) {
					return false
				}
			}
			return true
		}},
	}
}
