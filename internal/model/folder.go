package model

import "time"

type Folder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Reserved reports whether the folder is one of the seeded well-known folders.
func (f *Folder) Reserved() bool {
	return f.ID == FolderGeneral || f.ID == FolderConfidential
}
