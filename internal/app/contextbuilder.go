package app

import (
	"strings"

	"docuchat/internal/model"
)

// BuildContext assembles the textual context handed to the answer engine.
// Blocks follow registry order so identical inputs always produce an
// identical prompt. Locked documents are announced by name and location only;
// their content must never reach the output, so the locked block is computed
// purely from name and folder.
func BuildContext(docs []model.Document, authorized bool) string {
	var b strings.Builder
	for _, doc := range docs {
		if Classify(doc, authorized) == Locked {
			b.WriteString("--- DOCUMENT: ")
			b.WriteString(doc.Name)
			b.WriteString(" (folder: confidential) ---\n")
			b.WriteString("[LOCKED] Content withheld: this document is confidential and requires administrator verification.\n\n")
			continue
		}
		b.WriteString("--- DOCUMENT: ")
		b.WriteString(doc.Name)
		b.WriteString(" ---\n")
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
