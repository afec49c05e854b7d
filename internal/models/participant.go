package models

import "strings"

// ParticipantID is a stable handle for a participant row.
// It survives removal of other rows, unlike the row's position.
type ParticipantID string

// Participant is one row of the attendance sheet.
type Participant struct {
	// ID is generated when the row is created (UUID format).
	ID ParticipantID

	// Name is the display name. Two rows may share a name.
	// A blank or whitespace-only name makes the row inactive.
	Name string

	// Bold marks the row for emphasis on printed summaries.
	Bold bool

	// Notes is free text shown next to the row.
	Notes string
}

// Active reports whether the participant has a non-blank name.
// Inactive rows keep their slot but are excluded from every total.
func (p Participant) Active() bool {
	return strings.TrimSpace(p.Name) != ""
}
