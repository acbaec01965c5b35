package model

import (
	"bytes"
	"encoding/json"
	"time"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Admin     bool      `json:"admin"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type RosterNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// EntryRequest is the new-entry form.
type EntryRequest struct {
	Date    string `json:"date"`
	Staff   string `json:"staff" binding:"required"`
	Channel string `json:"channel" binding:"required"`
	Title   string `json:"title"`
	Link    string `json:"link"`
}

// EditedEntry is one row of the bulk editor grid.
type EditedEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Staff     string `json:"staff"`
	Channel   string `json:"channel"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Views     Cell   `json:"views"`
	Timestamp string `json:"timestamp"`
}

type SaveEntriesRequest struct {
	Entries []EditedEntry `json:"entries"`
}

// Cell accepts a JSON string, number or bool and keeps its text form, so
// an editor may send views as 120 or "120".
type Cell string

func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
	default:
		*c = Cell(data)
	}
	return nil
}
