package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docuchat/internal/model"
)

func TestExtractSourcesBracketedName(t *testing.T) {
	docs := []model.Document{
		{Name: "Report.pdf"},
		{Name: "Notes.txt"},
	}

	sources := ExtractSources("See [Report.pdf] for details.", docs)

	assert.Equal(t, []string{"Report.pdf"}, sources)
}

func TestExtractSourcesCaseInsensitiveSubstring(t *testing.T) {
	docs := []model.Document{
		{Name: "Report.pdf"},
		{Name: "Notes.txt"},
	}

	sources := ExtractSources("According to report.pdf and NOTES.TXT the plan changed.", docs)

	assert.Equal(t, []string{"Report.pdf", "Notes.txt"}, sources)
}

func TestExtractSourcesDeduplicates(t *testing.T) {
	docs := []model.Document{{Name: "Report.pdf"}}

	sources := ExtractSources("[Report.pdf] says X. Also report.pdf says Y.", docs)

	assert.Equal(t, []string{"Report.pdf"}, sources)
}

func TestExtractSourcesNoMatch(t *testing.T) {
	docs := []model.Document{{Name: "Report.pdf"}}

	assert.Nil(t, ExtractSources("I couldn't find information about that in your documents.", docs))
	assert.Nil(t, ExtractSources("", docs))
	assert.Nil(t, ExtractSources("anything", nil))
}
