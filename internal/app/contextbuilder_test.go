package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/internal/model"
)

func TestBuildContextVisibleDocuments(t *testing.T) {
	docs := []model.Document{
		{Name: "Notes.txt", Content: "Meeting at 3pm.", FolderID: model.FolderGeneral},
		{Name: "Todo.txt", Content: "Buy milk."},
	}

	got := BuildContext(docs, false)

	assert.Equal(t,
		"--- DOCUMENT: Notes.txt ---\nMeeting at 3pm.\n\n--- DOCUMENT: Todo.txt ---\nBuy milk.\n\n",
		got)
}

func TestBuildContextLockedDocument(t *testing.T) {
	docs := []model.Document{
		{Name: "Salary.txt", Content: "CEO earns 1M.", FolderID: model.FolderConfidential},
	}

	got := BuildContext(docs, false)

	assert.Contains(t, got, "--- DOCUMENT: Salary.txt (folder: confidential) ---")
	assert.Contains(t, got, "[LOCKED] Content withheld")
	assert.NotContains(t, got, "CEO earns 1M.")
}

func TestBuildContextLockedBlockIgnoresContent(t *testing.T) {
	// The locked block must be a pure function of name and folder. Assembling
	// with the real content and with empty content must give identical output,
	// even when the content happens to equal the marker text itself.
	for _, content := range []string{
		"quarterly payroll details",
		"[LOCKED] Content withheld: this document is confidential and requires administrator verification.",
		"--- DOCUMENT: Salary.txt (folder: confidential) ---",
	} {
		withContent := BuildContext([]model.Document{
			{Name: "Salary.txt", Content: content, FolderID: model.FolderConfidential},
		}, false)
		withoutContent := BuildContext([]model.Document{
			{Name: "Salary.txt", Content: "", FolderID: model.FolderConfidential},
		}, false)
		assert.Equal(t, withoutContent, withContent)
	}
}

func TestBuildContextAuthorizedUnlocksConfidential(t *testing.T) {
	docs := []model.Document{
		{Name: "Salary.txt", Content: "CEO earns 1M.", FolderID: model.FolderConfidential},
	}

	got := BuildContext(docs, true)

	assert.Contains(t, got, "CEO earns 1M.")
	assert.NotContains(t, got, "[LOCKED]")
}

func TestBuildContextDeterministicOrder(t *testing.T) {
	docs := []model.Document{
		{Name: "A.txt", Content: "a"},
		{Name: "B.txt", Content: "b"},
		{Name: "C.txt", Content: "c"},
	}

	first := BuildContext(docs, false)
	second := BuildContext(docs, false)
	require.Equal(t, first, second)

	posA := strings.Index(first, "A.txt")
	posB := strings.Index(first, "B.txt")
	posC := strings.Index(first, "C.txt")
	assert.True(t, posA < posB && posB < posC)
}

func TestBuildContextEmptyRegistry(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil, false))
}
