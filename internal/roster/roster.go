// Package roster manages the staff and channel lists kept in the config
// worksheet.
package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyName   = errors.New("name is required")
	ErrDuplicate   = errors.New("name already exists")
	ErrNotFound    = errors.New("name not found")
	ErrUnknownKind = errors.New("unknown roster kind")
)

type Kind string

const (
	Staff   Kind = "staff"
	Channel Kind = "channel"
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staff", "employee", "employees":
		return Staff, nil
	case "channel", "channels":
		return Channel, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Roster holds two independent ordered sets of names.
type Roster struct {
	Staff    []string `json:"staff"`
	Channels []string `json:"channels"`
}

var (
	// fallback is used in memory when the worksheet is missing or malformed.
	fallback = Roster{Staff: []string{"EJONG"}, Channels: []string{"Channel 1"}}
	// defaults are written by Reset.
	defaults = Roster{Staff: []string{"EJONG", "Manager"}, Channels: []string{"Shorts Channel", "Review Channel"}}
)

func Fallback() Roster { return fallback.Clone() }
func Defaults() Roster { return defaults.Clone() }

func (r Roster) Clone() Roster {
	return Roster{Staff: slices.Clone(r.Staff), Channels: slices.Clone(r.Channels)}
}

func (r Roster) List(k Kind) []string {
	if k == Channel {
		return r.Channels
	}
	return r.Staff
}

func (r Roster) Contains(k Kind, name string) bool {
	return slices.Contains(r.List(k), name)
}

func (r *Roster) set(k Kind, names []string) {
	if k == Channel {
		r.Channels = names
		return
	}
	r.Staff = names
}

// Dedupe drops empty names and repeats, keeping first appearance order.
func Dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
