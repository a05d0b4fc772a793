package app

import "docuchat/internal/model"

// Visibility is the per-document verdict of the access classifier.
type Visibility int

const (
	Visible Visibility = iota
	Locked
)

// Classify decides whether a document's content may enter the answering
// context. A document is locked iff it sits in the confidential folder and
// the session is not verified. This predicate is the entire access boundary;
// every component consults it instead of re-deriving visibility.
func Classify(doc model.Document, authorized bool) Visibility {
	if doc.Confidential() && !authorized {
		return Locked
	}
	return Visible
}
