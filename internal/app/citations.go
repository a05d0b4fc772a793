package app

import (
	"strings"

	"docuchat/internal/model"
)

// ExtractSources returns the names of documents the answer appears to cite,
// deduplicated. A document counts as cited when its bracketed name occurs
// literally or its name occurs anywhere case-insensitively. Best effort:
// short names can over-match and paraphrased references under-match.
func ExtractSources(answer string, docs []model.Document) []string {
	if answer == "" || len(docs) == 0 {
		return nil
	}

	lowered := strings.ToLower(answer)
	seen := make(map[string]struct{}, len(docs))
	var sources []string
	for _, doc := range docs {
		if doc.Name == "" {
			continue
		}
		if _, dup := seen[doc.Name]; dup {
			continue
		}
		if strings.Contains(answer, "["+doc.Name+"]") || strings.Contains(lowered, strings.ToLower(doc.Name)) {
			seen[doc.Name] = struct{}{}
			sources = append(sources, doc.Name)
		}
	}
	return sources
}
