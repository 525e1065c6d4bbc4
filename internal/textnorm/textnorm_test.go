package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsPunctuationAndDigits(t *testing.T) {
	n := New()
	f := n.Normalize("Recalls\tits resolution 70 (2015), and welcomes.")

	assert.Equal(t, "Recalls its resolution   and welcomes", f.Stripped)
	assert.Equal(t, []string{"recalls", "its", "resolution", "and", "welcomes"}, f.Tokens)
	assert.Equal(t, " recalls its resolution and welcomes ", f.Padded)
}

func TestNormalizeDropsNonPrintable(t *testing.T) {
	f := New().Normalize("Décide de promouvoir")
	assert.Equal(t, "Dcide de promouvoir", f.Stripped)
	assert.True(t, strings.HasPrefix(f.Padded, " dcide "))
}

func TestNormalizeEmpty(t *testing.T) {
	f := New().Normalize("")
	assert.Empty(t, f.Tokens)
	assert.Equal(t, "  ", f.Padded)
}

func TestClean(t *testing.T) {
	got := Clean("Recalls its resolution 70/1 of 25 September 2015,and the\tUnited Nations")
	assert.Equal(t, "Recalls its resolution of September and the United Nations", got)
}

func TestCleanDropsWordsWithDigits(t *testing.T) {
	assert.Equal(t, "Welcomes the report", Clean("Welcomes the report A1"))
	assert.Equal(t, "Welcomes the A/RES/ report", Clean("Welcomes the A/RES/700 report"))
}

func TestAlpha(t *testing.T) {
	text, words := New().Alpha("The 2030 Agenda, a plan for all")
	assert.Equal(t, "the agenda plan for all", text)
	assert.Equal(t, []string{"the", "agenda", "plan", "for", "all"}, words)
}

func TestStartsLowercase(t *testing.T) {
	assert.True(t, StartsLowercase("a recalls"))
	assert.False(t, StartsLowercase("Recalls"))
	assert.False(t, StartsLowercase(" recalls"))
	assert.False(t, StartsLowercase(""))
	assert.True(t, StartsUppercase("United"))
}
