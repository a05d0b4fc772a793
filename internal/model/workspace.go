package model

import "time"

// Workspace is the export/import envelope for the full document set.
type Workspace struct {
	Documents  []Document `json:"documents"`
	Folders    []Folder   `json:"folders"`
	ExportedAt time.Time  `json:"exported_at"`
}
