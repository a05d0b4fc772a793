package model

import "time"

// Well-known folder ids. Both are seeded at migration and cannot be deleted.
// Documents in the confidential folder are withheld from the answer engine
// until the session is verified.
const (
	FolderGeneral      = "general"
	FolderConfidential = "confidential"
)

type Document struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:256;not null" json:"name"`
	Content    string    `gorm:"type:longtext;not null" json:"content"`
	MediaType  string    `gorm:"size:128" json:"media_type"`
	SizeBytes  int64     `json:"size_bytes"`
	FolderID   string    `gorm:"size:36;index" json:"folder_id,omitempty"` // empty = unfiled
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`
}

// Confidential reports whether the document lives in the access-gated folder.
func (d *Document) Confidential() bool {
	return d.FolderID == FolderConfidential
}
