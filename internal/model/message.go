package model

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the session transcript. Sources is stored as a JSON
// array of document names for portability.
//
// Notice marks turns that belong to the visible transcript but must never be
// replayed into the prompt history sent to the answer engine (trigger
// utterances, login prompts, engine-failure messages and similar).
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Sources   string    `gorm:"type:text" json:"-"`
	Notice    bool      `json:"notice,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// SourceNames returns the parsed source list; empty on parse error.
func (m *Message) SourceNames() []string {
	if m.Sources == "" {
		return nil
	}
	var v []string
	_ = json.Unmarshal([]byte(m.Sources), &v)
	return v
}

// SetSourceNames stores the source list as JSON.
func (m *Message) SetSourceNames(names []string) {
	if len(names) == 0 {
		m.Sources = ""
		return
	}
	b, _ := json.Marshal(names)
	m.Sources = string(b)
}
