package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docuchat/internal/model"
)

func TestClassify(t *testing.T) {
	general := model.Document{ID: "1", Name: "Notes.txt", FolderID: model.FolderGeneral}
	confidential := model.Document{ID: "2", Name: "Salary.txt", FolderID: model.FolderConfidential}
	unfiled := model.Document{ID: "3", Name: "Todo.txt"}

	assert.Equal(t, Visible, Classify(general, false))
	assert.Equal(t, Visible, Classify(unfiled, false))
	assert.Equal(t, Locked, Classify(confidential, false))

	assert.Equal(t, Visible, Classify(general, true))
	assert.Equal(t, Visible, Classify(confidential, true))
}
