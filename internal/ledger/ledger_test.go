package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/tripsheet/internal/models"
)

func checkSizes(t *testing.T, s *State) {
	t.Helper()
	n := s.Len()
	for _, e := range s.Expenses() {
		if len(e.Consumers) != n {
			t.Errorf("%s: len(Consumers) = %d, want %d", e.ID, len(e.Consumers), n)
		}
		if e.Kind == models.KindFreeAmount && len(e.Amounts) != n {
			t.Errorf("%s: len(Amounts) = %d, want %d", e.ID, len(e.Amounts), n)
		}
		if e.Kind == models.KindDirectCharge && e.Amounts != nil {
			t.Errorf("%s: direct-charge expense stores amounts", e.ID)
		}
	}
}

func name(t *testing.T, s *State, index int, n string) {
	t.Helper()
	if err := s.UpdateParticipant(index, n, false, ""); err != nil {
		t.Fatalf("UpdateParticipant(%d) failed: %v", index, err)
	}
}

func TestNew(t *testing.T) {
	s := New()
	if s.Len() != DefaultRows {
		t.Errorf("Len() = %d, want %d", s.Len(), DefaultRows)
	}
	if len(s.BaseExpenses()) != 3 {
		t.Fatalf("expected 3 base expenses, got %d", len(s.BaseExpenses()))
	}
	if r := s.Rates()[models.KeySharedGear]; r != models.Some(5) {
		t.Errorf("shared gear rate = %+v, want 5", r)
	}
	if s.Trip.Date == "" {
		t.Error("expected trip date to default to today")
	}
	petrol, err := s.Expense("base-petrol")
	if err != nil {
		t.Fatalf("Expense(base-petrol) failed: %v", err)
	}
	if !petrol.Consumers[0] {
		t.Error("petrol should default to consuming")
	}
	if s.SharedGear().Consumers[0] {
		t.Error("shared gear should default to not consuming")
	}
	checkSizes(t, s)
}

func TestResizingInvariant(t *testing.T) {
	s := New(WithRows(2))
	if _, err := s.AddCustomExpense("Food"); err != nil {
		t.Fatalf("AddCustomExpense failed: %v", err)
	}
	checkSizes(t, s)

	for i := 0; i < 4; i++ {
		s.AddParticipant()
		checkSizes(t, s)
	}
	for i := 0; i < 8; i++ {
		s.RemoveLastParticipant()
		checkSizes(t, s)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	s.AddParticipant()
	checkSizes(t, s)

	food := s.CustomExpenses()[0]
	if food.Amounts[0].Set || !food.Consumers[0] {
		t.Errorf("new slot = %+v / %v, want empty amount and default consumer", food.Amounts[0], food.Consumers[0])
	}
}

func TestRemoveLastParticipantTruncatesTail(t *testing.T) {
	s := New(WithRows(3))
	e, _ := s.AddCustomExpense("Food")
	for i, v := range []float64{1, 2, 3} {
		if err := s.EditAmount(e.ID, i, models.Some(v)); err != nil {
			t.Fatalf("EditAmount failed: %v", err)
		}
	}
	first := s.Participants()[0].ID
	s.RemoveLastParticipant()

	if got := e.Amounts; len(got) != 2 || got[0].Value != 1 || got[1].Value != 2 {
		t.Errorf("Amounts = %+v, want [1 2]", got)
	}
	if s.IndexOf(first) != 0 {
		t.Errorf("IndexOf(first) = %d, want 0", s.IndexOf(first))
	}
}

func TestRatePropagation(t *testing.T) {
	s := New(WithRows(3))
	for _, rate := range []models.Amount{models.Some(12.5), models.Empty(), models.Some(0)} {
		if err := s.SetBaseRate(models.KeyPersonalGear, rate); err != nil {
			t.Fatalf("SetBaseRate failed: %v", err)
		}
		pg, _ := s.Expense("base-personal-gear")
		for i := 0; i < s.Len(); i++ {
			if got := s.AmountCell(pg, i); got != rate {
				t.Errorf("cell %d = %+v, want %+v", i, got, rate)
			}
		}
	}

	if err := s.SetBaseRate("petrol", models.Some(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetBaseRate(petrol) error = %v, want ErrNotFound", err)
	}

	if err := s.SetBaseRate(models.KeySharedGear, models.Some(math.Inf(1))); err != nil {
		t.Fatalf("SetBaseRate(inf) failed: %v", err)
	}
	if got := s.Rates()[models.KeySharedGear]; got != models.Some(5) {
		t.Errorf("non-finite rate replaced prior value: %+v", got)
	}
}

func TestCampFeeScenario(t *testing.T) {
	s := New(WithRows(2))
	name(t, s, 0, "A")
	name(t, s, 1, "B")
	if err := s.SetExpenseEnabled(models.KeyPetrol, false); err != nil {
		t.Fatalf("SetExpenseEnabled failed: %v", err)
	}
	e, err := s.AddCustomExpense("Camp Fee")
	if err != nil {
		t.Fatalf("AddCustomExpense failed: %v", err)
	}
	_ = s.EditAmount(e.ID, 0, models.Some(30))
	_ = s.EditAmount(e.ID, 1, models.Some(10))

	r := s.Result()
	a, b := r.Participants[0], r.Participants[1]
	if math.Abs(a.Balance+10) > 0.01 || math.Abs(b.Balance-10) > 0.01 {
		t.Errorf("balances = %v, %v, want -10, 10", a.Balance, b.Balance)
	}
	if math.Abs(a.Fee-20) > 0.01 || math.Abs(b.Fee-20) > 0.01 {
		t.Errorf("fees = %v, %v, want 20, 20", a.Fee, b.Fee)
	}
	if math.Abs(r.TotalBalance) > 0.01 {
		t.Errorf("TotalBalance = %v, want 0", r.TotalBalance)
	}
}

func TestSharedGearScenario(t *testing.T) {
	s := New(WithRows(3))
	for i, n := range []string{"A", "B", "C"} {
		name(t, s, i, n)
	}
	_ = s.EditConsumer("base-shared-gear", 0, true)
	_ = s.EditConsumer("base-shared-gear", 2, true)

	r := s.Result()
	var total float64
	var count int
	for _, e := range r.Expenses {
		if e.ExpenseID == "base-shared-gear" {
			total, count = e.Total, e.ConsumerCount
		}
	}
	if math.Abs(total-10) > 0.01 || count != 2 {
		t.Errorf("shared gear total = %v count = %d, want 10 and 2", total, count)
	}
	if math.Abs(r.ClubIncome-10) > 0.01 {
		t.Errorf("ClubIncome = %v, want 10", r.ClubIncome)
	}
	if !s.Toggle().Indeterminate || s.Toggle().Checked {
		t.Errorf("Toggle() = %+v, want indeterminate", s.Toggle())
	}

	s.SetSharedGearAll(true)
	if tg := s.Toggle(); !tg.Checked || tg.Indeterminate {
		t.Errorf("after SetSharedGearAll(true) Toggle() = %+v", tg)
	}

	s.AddParticipant()
	if sg := s.SharedGear(); !sg.Consumers[3] {
		t.Error("row added while toggle checked should consume shared gear")
	}

	s.SetSharedGearAll(false)
	for i, c := range s.SharedGear().Consumers {
		if c {
			t.Errorf("slot %d still consuming after SetSharedGearAll(false)", i)
		}
	}

	_ = s.SetExpenseEnabled(models.KeySharedGear, false)
	if tg := s.Toggle(); !tg.Disabled || tg.Checked {
		t.Errorf("disabled shared gear Toggle() = %+v", tg)
	}
}

func TestCustomExpenses(t *testing.T) {
	s := New(WithRows(1))
	a, _ := s.AddCustomExpense("Food")
	b, _ := s.AddCustomExpense("  Hut  ")
	if a.ID != "custom-0" || b.ID != "custom-1" || b.Name != "Hut" {
		t.Errorf("ids = %s %s name = %q", a.ID, b.ID, b.Name)
	}

	if err := s.RemoveCustomExpense("FOOD"); err != nil {
		t.Fatalf("RemoveCustomExpense failed: %v", err)
	}
	c, _ := s.AddCustomExpense("Food")
	if c.ID != "custom-2" {
		t.Errorf("id reused: %s", c.ID)
	}

	if err := s.RemoveCustomExpense("Nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveCustomExpense(Nope) error = %v, want ErrNotFound", err)
	}
	if len(s.CustomExpenses()) != 2 {
		t.Errorf("expected 2 custom expenses, got %d", len(s.CustomExpenses()))
	}
	if _, err := s.AddCustomExpense("   "); err == nil {
		t.Error("expected error for blank expense name")
	}
}

func TestEditAmount(t *testing.T) {
	s := New(WithRows(1))
	name(t, s, 0, "A")
	e, _ := s.AddCustomExpense("Food")

	if err := s.EditAmount(e.ID, 0, models.Some(4)); err != nil {
		t.Fatalf("EditAmount failed: %v", err)
	}
	if err := s.EditAmount(e.ID, 0, models.Some(math.NaN())); err != nil {
		t.Fatalf("EditAmount(NaN) failed: %v", err)
	}
	if e.Amounts[0] != models.Some(4) {
		t.Errorf("NaN overwrote prior amount: %+v", e.Amounts[0])
	}

	if err := s.EditAmount(e.ID, 5, models.Some(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("out of range error = %v, want ErrNotFound", err)
	}
	if err := s.EditAmount("custom-99", 0, models.Some(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown expense error = %v, want ErrNotFound", err)
	}

	if err := s.EditAmount("base-personal-gear", 0, models.Some(99)); err != nil {
		t.Fatalf("EditAmount(direct charge) failed: %v", err)
	}
	pg, _ := s.Expense("base-personal-gear")
	if s.AmountCell(pg, 0) != models.Some(5) {
		t.Errorf("direct-charge cell changed: %+v", s.AmountCell(pg, 0))
	}
}

func TestDuplicateNames(t *testing.T) {
	s := New(WithRows(4))
	name(t, s, 0, "Sam")
	name(t, s, 1, " sam ")
	name(t, s, 2, "Alex")
	got := s.DuplicateNames()
	if len(got) != 1 || got[0] != "Sam" {
		t.Errorf("DuplicateNames() = %v, want [Sam]", got)
	}
}

func TestReplace(t *testing.T) {
	s := New(WithRows(3))
	_, _ = s.AddCustomExpense("Old")

	enabled := false
	s.Replace(Contents{
		Trip:         models.Trip{Location: "Hut"},
		Participants: []models.Participant{{Name: "X"}, {Name: "Y"}},
		Rates:        map[string]models.Amount{models.KeyPersonalGear: models.Some(8)},
		Base: []ExpenseContents{
			{Key: models.KeySharedGear, Enabled: &enabled, Consumers: []bool{true}},
		},
		Custom: []ExpenseContents{
			{Name: "", Amounts: []models.Amount{models.Some(3), models.Some(4), models.Some(5)}},
		},
	})

	if s.Len() != 2 || s.Participants()[0].Name != "X" {
		t.Fatalf("participants = %+v", s.Participants())
	}
	if s.Rates()[models.KeyPersonalGear] != models.Some(8) || s.Rates()[models.KeySharedGear] != models.Some(5) {
		t.Errorf("rates = %+v", s.Rates())
	}
	sg := s.SharedGear()
	if sg.Enabled || !sg.Consumers[0] || sg.Consumers[1] {
		t.Errorf("shared gear = %+v", sg)
	}
	custom := s.CustomExpenses()
	if len(custom) != 1 || custom[0].Name != models.DefaultCustomName || custom[0].ID != "custom-0" {
		t.Fatalf("custom = %+v", custom)
	}
	if len(custom[0].Amounts) != 2 || !custom[0].Consumers[1] {
		t.Errorf("custom vectors = %+v %+v", custom[0].Amounts, custom[0].Consumers)
	}
	checkSizes(t, s)

	s.Replace(Contents{})
	if s.Len() != 1 || s.Participants()[0].Name != "" {
		t.Errorf("empty contents should leave one blank row, got %+v", s.Participants())
	}
}
