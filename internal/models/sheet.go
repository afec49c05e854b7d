package models

// Sheet is an archived export of a ledger.
type Sheet struct {
	// ID is the unique identifier for the sheet (UUID format).
	ID string

	// Tag is the date-location label, e.g. "2024_03_09_Blue_Mountains".
	Tag string

	// Title is a human-readable name. Defaults to the tag.
	Title string

	// Snapshot is the exported JSON document, stored verbatim.
	Snapshot []byte

	// CreatedAt is the Unix timestamp when the sheet was saved.
	CreatedAt int64
}
