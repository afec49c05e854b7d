// Package ledger owns the live trip ledger: the participant table, the
// expense catalog and the base-rate registry. Every mutation recomputes the
// allocation and the shared-gear toggle before returning.
//
// A State is not safe for concurrent use. Callers that share one across
// goroutines must serialise access.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsheet/internal/calculator"
	"github.com/mmynk/tripsheet/internal/models"
)

var (
	// ErrNotFound is returned when an expense, rate key or row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBlankName is returned when a custom expense is given no name.
	ErrBlankName = errors.New("expense name required")
)

// DefaultRows is the number of blank rows a new sheet starts with.
const DefaultRows = 10

// State is the complete ledger.
type State struct {
	Trip models.Trip

	participants map[models.ParticipantID]*models.Participant
	order        []models.ParticipantID

	base   []*models.Expense
	custom []*models.Expense
	rates  map[string]models.Amount

	nextCustomID int

	result calculator.Result
	toggle calculator.ToggleState
}

// Option configures a new State.
type Option func(*State)

// WithRows sets the number of blank rows the sheet starts with.
func WithRows(n int) Option {
	return func(s *State) {
		if n < 0 {
			n = 0
		}
		s.order = s.order[:0]
		s.participants = make(map[models.ParticipantID]*models.Participant, n)
		for i := 0; i < n; i++ {
			s.appendParticipant(models.Participant{})
		}
	}
}

// WithRate overrides the starting rate of a direct-charge expense.
func WithRate(key string, rate models.Amount) Option {
	return func(s *State) {
		if _, ok := s.rates[key]; ok {
			s.rates[key] = rate
		}
	}
}

// WithDate sets the trip date. The default is today.
func WithDate(date string) Option {
	return func(s *State) {
		s.Trip.Date = date
	}
}

// New creates a ledger with the base expenses, default rates and
// DefaultRows blank participants.
func New(opts ...Option) *State {
	s := &State{
		Trip:         models.Trip{Date: time.Now().Format(time.DateOnly)},
		participants: make(map[models.ParticipantID]*models.Participant),
		rates:        make(map[string]models.Amount, len(models.DefaultRates)),
	}
	for k, v := range models.DefaultRates {
		s.rates[k] = v
	}
	for _, def := range models.BaseExpenses {
		s.base = append(s.base, &models.Expense{
			ID:              "base-" + def.Key,
			Key:             def.Key,
			Name:            def.Name,
			Kind:            def.Kind,
			Base:            true,
			Enabled:         def.Enabled,
			DefaultConsumer: def.DefaultConsumer,
		})
	}

	WithRows(DefaultRows)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.recalculate()
	return s
}

func (s *State) appendParticipant(p models.Participant) models.ParticipantID {
	if p.ID == "" {
		p.ID = models.ParticipantID(uuid.New().String())
	}
	s.participants[p.ID] = &p
	s.order = append(s.order, p.ID)
	return p.ID
}

// Participants returns a copy of the roster in display order.
func (s *State) Participants() []models.Participant {
	out := make([]models.Participant, len(s.order))
	for i, id := range s.order {
		out[i] = *s.participants[id]
	}
	return out
}

// Len returns the number of participant rows.
func (s *State) Len() int {
	return len(s.order)
}

// IndexOf returns the current position of a participant, or -1.
func (s *State) IndexOf(id models.ParticipantID) int {
	for i, pid := range s.order {
		if pid == id {
			return i
		}
	}
	return -1
}

// Expenses returns every expense, base first, in display order.
// The returned expenses are owned by the ledger and must not be modified.
func (s *State) Expenses() []*models.Expense {
	out := make([]*models.Expense, 0, len(s.base)+len(s.custom))
	out = append(out, s.base...)
	return append(out, s.custom...)
}

// BaseExpenses returns the fixed expenses.
func (s *State) BaseExpenses() []*models.Expense {
	return append([]*models.Expense(nil), s.base...)
}

// CustomExpenses returns the user-added expenses.
func (s *State) CustomExpenses() []*models.Expense {
	return append([]*models.Expense(nil), s.custom...)
}

// ActiveExpenses returns the expenses that take part in computation.
func (s *State) ActiveExpenses() []*models.Expense {
	var out []*models.Expense
	for _, e := range s.Expenses() {
		if e.Active() {
			out = append(out, e)
		}
	}
	return out
}

// Expense looks up an expense by id.
func (s *State) Expense(id string) (*models.Expense, error) {
	for _, e := range s.Expenses() {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("expense %q: %w", id, ErrNotFound)
}

func (s *State) baseByKey(key string) *models.Expense {
	for _, e := range s.base {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// SharedGear returns the shared-gear expense.
func (s *State) SharedGear() *models.Expense {
	return s.baseByKey(models.KeySharedGear)
}

// Rates returns a copy of the base-rate registry.
func (s *State) Rates() map[string]models.Amount {
	out := make(map[string]models.Amount, len(s.rates))
	for k, v := range s.rates {
		out[k] = v
	}
	return out
}

// Result returns the allocation computed after the last mutation.
func (s *State) Result() calculator.Result {
	return s.result
}

// Toggle returns the shared-gear master toggle state.
func (s *State) Toggle() calculator.ToggleState {
	return s.toggle
}

// AddParticipant appends a blank row and returns its handle.
// When the shared-gear toggle is checked, the new row is marked as a consumer.
func (s *State) AddParticipant() models.ParticipantID {
	shareAll := s.toggle.Checked
	id := s.appendParticipant(models.Participant{})
	s.syncSizes()
	if shareAll {
		sg := s.SharedGear()
		sg.Consumers[len(sg.Consumers)-1] = true
	}
	s.recalculate()
	slog.Debug("Participant added", "participant_id", id, "rows", len(s.order))
	return id
}

// RemoveLastParticipant drops the final row. It is a no-op on an empty roster.
func (s *State) RemoveLastParticipant() {
	if len(s.order) == 0 {
		return
	}
	last := s.order[len(s.order)-1]
	delete(s.participants, last)
	s.order = s.order[:len(s.order)-1]
	s.recalculate()
	slog.Debug("Participant removed", "participant_id", last, "rows", len(s.order))
}

// UpdateParticipant replaces the name, bold flag and notes of a row.
func (s *State) UpdateParticipant(index int, name string, bold bool, notes string) error {
	p, err := s.at(index)
	if err != nil {
		return err
	}
	p.Name = name
	p.Bold = bold
	p.Notes = notes
	s.recalculate()
	return nil
}

func (s *State) at(index int) (*models.Participant, error) {
	if index < 0 || index >= len(s.order) {
		return nil, fmt.Errorf("participant %d: %w", index, ErrNotFound)
	}
	return s.participants[s.order[index]], nil
}

// DuplicateNames returns names used by more than one row, compared
// case-insensitively after trimming, in first-seen order.
func (s *State) DuplicateNames() []string {
	counts := make(map[string]int)
	var firstSeen []string
	labels := make(map[string]string)
	for _, id := range s.order {
		name := strings.TrimSpace(s.participants[id].Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if counts[key] == 0 {
			firstSeen = append(firstSeen, key)
			labels[key] = name
		}
		counts[key]++
	}
	var dups []string
	for _, key := range firstSeen {
		if counts[key] > 1 {
			dups = append(dups, labels[key])
		}
	}
	return dups
}

// AddCustomExpense appends a free-amount expense. Blank names are rejected.
func (s *State) AddCustomExpense(name string) (*models.Expense, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrBlankName
	}
	e := s.newCustom(trimmed)
	s.recalculate()
	slog.Debug("Custom expense added", "expense_id", e.ID, "name", e.Name)
	return e, nil
}

func (s *State) newCustom(name string) *models.Expense {
	e := &models.Expense{
		ID:              fmt.Sprintf("custom-%d", s.nextCustomID),
		Name:            name,
		Kind:            models.KindFreeAmount,
		Enabled:         true,
		DefaultConsumer: true,
	}
	s.nextCustomID++
	e.Resize(len(s.order))
	s.custom = append(s.custom, e)
	return e
}

// RemoveCustomExpense removes the first custom expense whose name matches,
// ignoring case and surrounding whitespace.
func (s *State) RemoveCustomExpense(name string) error {
	target := strings.ToLower(strings.TrimSpace(name))
	for i, e := range s.custom {
		if strings.ToLower(e.Name) == target {
			s.custom = append(s.custom[:i], s.custom[i+1:]...)
			s.recalculate()
			slog.Debug("Custom expense removed", "expense_id", e.ID, "name", e.Name)
			return nil
		}
	}
	return fmt.Errorf("expense named %q: %w", name, ErrNotFound)
}

// SetExpenseEnabled enables or disables a base expense by key.
func (s *State) SetExpenseEnabled(key string, enabled bool) error {
	e := s.baseByKey(key)
	if e == nil {
		return fmt.Errorf("base expense %q: %w", key, ErrNotFound)
	}
	e.Enabled = enabled
	s.recalculate()
	return nil
}

// SetBaseRate sets the uniform rate of a direct-charge expense.
// Non-finite rates are ignored and the prior rate is kept.
func (s *State) SetBaseRate(key string, rate models.Amount) error {
	if _, ok := s.rates[key]; !ok {
		return fmt.Errorf("rate %q: %w", key, ErrNotFound)
	}
	if rate.Set && !rate.Finite() {
		slog.Debug("Ignoring non-finite rate", "key", key)
		return nil
	}
	s.rates[key] = rate
	s.recalculate()
	return nil
}

// Cell resolves an expense column and checks that index addresses a row.
func (s *State) Cell(expenseID string, index int) (*models.Expense, error) {
	e, err := s.Expense(expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.at(index); err != nil {
		return nil, err
	}
	return e, nil
}

// EditAmount sets one participant's amount cell of a free-amount expense.
// Non-finite values and direct-charge cells are ignored.
func (s *State) EditAmount(expenseID string, index int, amount models.Amount) error {
	e, err := s.Cell(expenseID, index)
	if err != nil {
		return err
	}
	if e.Kind != models.KindFreeAmount {
		slog.Debug("Ignoring amount edit on direct-charge expense", "expense_id", expenseID)
		return nil
	}
	if amount.Set && !amount.Finite() {
		slog.Debug("Ignoring non-finite amount", "expense_id", expenseID, "index", index)
		return nil
	}
	e.Amounts[index] = amount
	s.recalculate()
	return nil
}

// EditConsumer sets whether a participant shares in an expense.
func (s *State) EditConsumer(expenseID string, index int, consumer bool) error {
	e, err := s.Cell(expenseID, index)
	if err != nil {
		return err
	}
	e.Consumers[index] = consumer
	s.recalculate()
	return nil
}

// SetSharedGearAll writes the shared-gear consumer flag of every row,
// named or not. It is a no-op while shared gear is disabled.
func (s *State) SetSharedGearAll(consumer bool) {
	sg := s.SharedGear()
	if sg == nil || !sg.Active() {
		return
	}
	for i := range sg.Consumers {
		sg.Consumers[i] = consumer
	}
	s.recalculate()
}

// AmountCell returns the value shown in an amount cell. Direct-charge
// cells show the current rate.
func (s *State) AmountCell(e *models.Expense, index int) models.Amount {
	if e.Kind == models.KindDirectCharge {
		return s.rates[e.Key]
	}
	if index < 0 || index >= len(e.Amounts) {
		return models.Empty()
	}
	return e.Amounts[index]
}

func (s *State) syncSizes() {
	n := len(s.order)
	for _, e := range s.Expenses() {
		e.Resize(n)
	}
}

func (s *State) recalculate() {
	s.syncSizes()
	participants := s.Participants()
	s.result = calculator.Compute(participants, s.Expenses(), s.rates)
	s.toggle = calculator.Reconcile(s.SharedGear(), participants)
}
