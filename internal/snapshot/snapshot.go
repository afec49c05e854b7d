// Package snapshot converts a ledger to and from its persisted JSON form.
//
// Export always writes the full shape. Import accepts any subset of fields:
// anything missing or unparsable falls back to a default, and only a payload
// that is not a JSON object is rejected.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmynk/tripsheet/internal/ledger"
	"github.com/mmynk/tripsheet/internal/models"
)

// ErrMalformedSnapshot is returned when the payload is not a JSON object.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Trip is the sheet header.
type Trip struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Leader   string `json:"leader"`
	Clerk    string `json:"clerk"`
}

// BaseExpense is a persisted base expense column.
type BaseExpense struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Enabled   *bool           `json:"enabled"`
	Amounts   []models.Amount `json:"amounts"`
	Consumers []bool          `json:"consumers"`
}

// CustomExpense is a persisted custom expense column. Ids are not persisted.
type CustomExpense struct {
	Name      string          `json:"name"`
	Enabled   *bool           `json:"enabled"`
	Amounts   []models.Amount `json:"amounts"`
	Consumers []bool          `json:"consumers"`
}

// Participant is a persisted row.
type Participant struct {
	Name  string `json:"name"`
	Bold  bool   `json:"bold"`
	Notes string `json:"notes"`
}

// Snapshot is the complete persisted ledger.
type Snapshot struct {
	Trip                  Trip                     `json:"trip"`
	BaseExpenseRates      map[string]models.Amount `json:"baseExpenseRates"`
	BaseExpenses          []BaseExpense            `json:"baseExpenses"`
	CustomExpenses        []CustomExpense          `json:"customExpenses"`
	Participants          []Participant            `json:"participants"`
	SharedGearAllSelected bool                     `json:"sharedGearAllSelected"`
}

// Serialize captures the full state of a ledger.
func Serialize(s *ledger.State) Snapshot {
	n := s.Len()
	snap := Snapshot{
		Trip: Trip{
			Date:     s.Trip.Date,
			Location: s.Trip.Location,
			Leader:   s.Trip.Leader,
			Clerk:    s.Trip.Clerk,
		},
		BaseExpenseRates:      s.Rates(),
		BaseExpenses:          []BaseExpense{},
		CustomExpenses:        []CustomExpense{},
		Participants:          make([]Participant, 0, n),
		SharedGearAllSelected: s.Toggle().Checked,
	}

	for _, e := range s.BaseExpenses() {
		enabled := e.Enabled
		snap.BaseExpenses = append(snap.BaseExpenses, BaseExpense{
			Key:       e.Key,
			Name:      e.Name,
			Enabled:   &enabled,
			Amounts:   cells(s, e, n),
			Consumers: append([]bool{}, e.Consumers...),
		})
	}
	for _, e := range s.CustomExpenses() {
		enabled := e.Enabled
		snap.CustomExpenses = append(snap.CustomExpenses, CustomExpense{
			Name:      e.Name,
			Enabled:   &enabled,
			Amounts:   cells(s, e, n),
			Consumers: append([]bool{}, e.Consumers...),
		})
	}
	for _, p := range s.Participants() {
		snap.Participants = append(snap.Participants, Participant{Name: p.Name, Bold: p.Bold, Notes: p.Notes})
	}
	return snap
}

func cells(s *ledger.State, e *models.Expense, n int) []models.Amount {
	out := make([]models.Amount, n)
	for i := range out {
		out[i] = s.AmountCell(e, i)
	}
	return out
}

// Encode writes the snapshot as indented JSON.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Export serializes and encodes a ledger in one step.
func Export(s *ledger.State) ([]byte, error) {
	return Encode(Serialize(s))
}

// Apply replaces the live ledger with the snapshot contents.
func Apply(s *ledger.State, snap Snapshot) {
	c := ledger.Contents{
		Trip: models.Trip{
			Date:     snap.Trip.Date,
			Location: snap.Trip.Location,
			Leader:   snap.Trip.Leader,
			Clerk:    snap.Trip.Clerk,
		},
		Rates: snap.BaseExpenseRates,
	}
	for _, p := range snap.Participants {
		c.Participants = append(c.Participants, models.Participant{Name: p.Name, Bold: p.Bold, Notes: p.Notes})
	}
	for _, e := range snap.BaseExpenses {
		c.Base = append(c.Base, ledger.ExpenseContents{
			Key:       e.Key,
			Enabled:   e.Enabled,
			Amounts:   e.Amounts,
			Consumers: e.Consumers,
		})
	}
	for _, e := range snap.CustomExpenses {
		c.Custom = append(c.Custom, ledger.ExpenseContents{
			Name:      e.Name,
			Enabled:   e.Enabled,
			Amounts:   e.Amounts,
			Consumers: e.Consumers,
		})
	}
	s.Replace(c)
}

// Deserialize builds a fresh ledger from a snapshot.
func Deserialize(snap Snapshot, opts ...ledger.Option) *ledger.State {
	s := ledger.New(opts...)
	Apply(s, snap)
	return s
}

// Import decodes data and replaces the live ledger with it.
// On ErrMalformedSnapshot the ledger is left untouched.
func Import(s *ledger.State, data []byte) error {
	snap, err := Decode(data)
	if err != nil {
		return err
	}
	Apply(s, snap)
	return nil
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Tag builds the "YYYY_MM_DD_Location" label used for file names and
// payment references. An invalid date falls back to today, a blank location
// to "Unknown".
func Tag(trip models.Trip) string {
	date := trip.Date
	if !isoDate.MatchString(date) {
		date = time.Now().UTC().Format(time.DateOnly)
	}
	location := strings.Trim(nonAlnum.ReplaceAllString(strings.TrimSpace(trip.Location), "_"), "_")
	if location == "" {
		location = "Unknown"
	}
	return strings.ReplaceAll(date, "-", "_") + "_" + location
}

// FileName returns the export file name for a trip, e.g. "2024_03_09_Blue_Mountains.json".
func FileName(trip models.Trip) string {
	return Tag(trip) + ".json"
}
