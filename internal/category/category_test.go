package category

import (
	"strings"
	"testing"
)

func text(s string) Text {
	return NewText(strings.Fields(strings.ToLower(s)), s)
}

func TestTagFirstRuleWins(t *testing.T) {
	g := NewTagger(nil)
	tests := []struct {
		content string
		want    string
	}{
		{"Urges States to eradicate poverty and improve health systems", "No Poverty"},
		{"Stresses the importance of food security for all", "Zero Hunger"},
		{"Calls for universal access to health services", "Good Health and Well-Being"},
		{"Promotes gender equality in leadership", "Gender Equality"},
		{"Invites action on child labour in supply chains", "Decent Work and Economic Growth"},
		{"Notes persistent inequality among countries", "Reduced Inequalities"},
		{"Welcomes efforts on climate change adaptation", "Climate Action"},
		{"Protects the oceans and seas from pollution", "Life Below Water"},
		{"Halts degradation of land and forests", "Life on Land"},
		{"Strengthens institutions for justice", "Peace, Justice and Strong Institutions"},
		{"Encourages partnerships with the private sector", "Partnerships for the Goals"},
	}
	for _, tt := range tests {
		got, ok := g.Tag(text(tt.content))
		if !ok {
			t.Errorf("%q: expected category %q, got none", tt.content, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.content, tt.want, got)
		}
	}
}

func TestTagInequalityExcludedByGenderEquality(t *testing.T) {
	g := NewTagger(nil)
	got, ok := g.Tag(text("Addresses inequality and gender equality jointly"))
	if !ok || got != "Gender Equality" {
		t.Errorf("expected 'Gender Equality', got %q", got)
	}

	rules := DefaultRules()
	var reduced Rule
	for _, r := range rules {
		if r.Category == "Reduced Inequalities" {
			reduced = r
		}
	}
	if reduced.Match(text("Addresses inequality and gender equality jointly")) {
		t.Error("expected inequality rule to be suppressed by gender equality")
	}
}

func TestTagLandIsWholeToken(t *testing.T) {
	g := NewTagger(nil)
	if got, ok := g.Tag(text("Welcomes the landmark agreement")); ok {
		t.Errorf("expected no category for 'landmark', got %q", got)
	}
	if got, _ := g.Tag(text("Protects arid land from degradation")); got != "Life on Land" {
		t.Errorf("expected 'Life on Land', got %q", got)
	}
}

func TestTagPeaceNeedsInstitutions(t *testing.T) {
	g := NewTagger(nil)
	if got, ok := g.Tag(text("Calls for lasting peace in the region")); ok {
		t.Errorf("expected no category, got %q", got)
	}
}

func TestTagNoMatch(t *testing.T) {
	g := NewTagger(nil)
	if got, ok := g.Tag(text("Decides to remain seized of the matter")); ok {
		t.Errorf("expected no category, got %q", got)
	}
}

func TestTagCustomRules(t *testing.T) {
	g := NewTagger([]Rule{{Category: "Custom", Match: AnyPhrase("seized")}})
	got, ok := g.Tag(text("Decides to remain seized of the matter"))
	if !ok || got != "Custom" {
		t.Errorf("expected 'Custom', got %q", got)
	}
}
