package ledger

import (
	"strings"

	"github.com/mmynk/tripsheet/internal/models"
)

// ExpenseContents is the restorable part of one expense column.
// Nil fields mean "not supplied" and fall back to the expense's defaults.
type ExpenseContents struct {
	// Key matches a base expense. Ignored for custom expenses.
	Key string

	// Name is used for custom expenses only; base names are fixed.
	Name string

	Enabled *bool

	// Amounts is ignored for direct-charge expenses, which always take
	// their amounts from the rate.
	Amounts []models.Amount

	// Consumers supplies leading flags; missing slots take the default.
	Consumers []bool
}

// Contents is a complete ledger as restored from a snapshot.
type Contents struct {
	Trip         models.Trip
	Participants []models.Participant

	// Rates holds only the rates to overwrite; absent keys keep their value.
	Rates map[string]models.Amount

	Base   []ExpenseContents
	Custom []ExpenseContents
}

// Replace swaps the whole ledger for c and recomputes.
// It never fails: missing parts are filled with defaults, and an empty
// roster becomes a single blank row.
func (s *State) Replace(c Contents) {
	s.Trip = c.Trip

	s.participants = make(map[models.ParticipantID]*models.Participant, len(c.Participants))
	s.order = nil
	for _, p := range c.Participants {
		s.appendParticipant(models.Participant{Name: p.Name, Bold: p.Bold, Notes: p.Notes})
	}
	if len(s.order) == 0 {
		s.appendParticipant(models.Participant{})
	}
	n := len(s.order)

	for key, rate := range c.Rates {
		if _, ok := s.rates[key]; ok && (!rate.Set || rate.Finite()) {
			s.rates[key] = rate
		}
	}

	for _, e := range s.base {
		var entry *ExpenseContents
		for i := range c.Base {
			if c.Base[i].Key == e.Key {
				entry = &c.Base[i]
				break
			}
		}
		restoreExpense(e, entry, n)
	}

	s.custom = nil
	s.nextCustomID = 0
	for i := range c.Custom {
		entry := c.Custom[i]
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = models.DefaultCustomName
		}
		e := s.newCustom(name)
		restoreExpense(e, &entry, n)
	}

	s.recalculate()
}

func restoreExpense(e *models.Expense, entry *ExpenseContents, n int) {
	e.Amounts = nil
	e.Consumers = nil
	if entry != nil {
		if entry.Enabled != nil {
			e.Enabled = *entry.Enabled
		}
		if e.Kind == models.KindFreeAmount {
			e.Amounts = append([]models.Amount(nil), entry.Amounts...)
		}
		e.Consumers = append([]bool(nil), entry.Consumers...)
	}
	e.Resize(n)
}
