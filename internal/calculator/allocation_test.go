package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tripsheet/internal/models"
)

func people(names ...string) []models.Participant {
	out := make([]models.Participant, len(names))
	for i, n := range names {
		out[i] = models.Participant{ID: models.ParticipantID(n + "-id"), Name: n}
	}
	return out
}

func freeExpense(id, name string, amounts []models.Amount, consumers []bool) *models.Expense {
	return &models.Expense{
		ID:        id,
		Name:      name,
		Kind:      models.KindFreeAmount,
		Enabled:   true,
		Amounts:   amounts,
		Consumers: consumers,
	}
}

func gearExpense(key string, consumers []bool) *models.Expense {
	return &models.Expense{
		ID:        "base-" + key,
		Key:       key,
		Name:      key,
		Kind:      models.KindDirectCharge,
		Base:      true,
		Enabled:   true,
		Consumers: consumers,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 0.01
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []*models.Expense
		rates        map[string]models.Amount
		validateFunc func(t *testing.T, r Result)
	}{
		{
			name:         "custom expense split between two contributors",
			participants: people("A", "B"),
			expenses: []*models.Expense{
				freeExpense("custom-0", "Camp Fee",
					[]models.Amount{models.Some(30), models.Some(10)},
					[]bool{true, true}),
			},
			validateFunc: func(t *testing.T, r Result) {
				if len(r.Expenses) != 1 {
					t.Fatalf("expected 1 expense result, got %d", len(r.Expenses))
				}
				e := r.Expenses[0]
				if !approx(e.Total, 40) || !approx(e.Share, 20) || e.ConsumerCount != 2 {
					t.Errorf("expense = %+v, want total 40 share 20 consumers 2", e)
				}
				a, b := r.Participants[0], r.Participants[1]
				if !approx(a.Fee, 20) || !approx(a.Contributions, 30) || !approx(a.Balance, -10) {
					t.Errorf("A = %+v, want fee 20 contribution 30 balance -10", a)
				}
				if !approx(b.Fee, 20) || !approx(b.Contributions, 10) || !approx(b.Balance, 10) {
					t.Errorf("B = %+v, want fee 20 contribution 10 balance 10", b)
				}
				if !approx(r.TotalBalance, 0) {
					t.Errorf("TotalBalance = %v, want 0", r.TotalBalance)
				}
				if !approx(r.TotalFees, 40) {
					t.Errorf("TotalFees = %v, want 40", r.TotalFees)
				}
				if len(a.Breakdown) != 1 || a.Breakdown[0].Expense != "Camp Fee" || !approx(a.Breakdown[0].Amount, 20) {
					t.Errorf("A breakdown = %+v", a.Breakdown)
				}
			},
		},
		{
			name:         "shared gear direct charge counts named consumers only",
			participants: people("A", "B", "C"),
			expenses: []*models.Expense{
				gearExpense(models.KeySharedGear, []bool{true, false, true}),
			},
			rates: map[string]models.Amount{models.KeySharedGear: models.Some(5)},
			validateFunc: func(t *testing.T, r Result) {
				e := r.Expenses[0]
				if !approx(e.Total, 10) || e.ConsumerCount != 2 {
					t.Errorf("expense = %+v, want total 10 consumers 2", e)
				}
				if !approx(r.ClubIncome, 10) {
					t.Errorf("ClubIncome = %v, want 10", r.ClubIncome)
				}
				if !approx(r.Participants[0].Fee, 5) || r.Participants[1].Fee != 0 || !approx(r.Participants[2].Fee, 5) {
					t.Errorf("fees = %v %v %v", r.Participants[0].Fee, r.Participants[1].Fee, r.Participants[2].Fee)
				}
				if len(r.Participants[1].Breakdown) != 0 {
					t.Errorf("non-consumer should have empty breakdown, got %+v", r.Participants[1].Breakdown)
				}
			},
		},
		{
			name:         "unnamed participant owes nothing regardless of flag",
			participants: []models.Participant{{Name: "A"}, {Name: "   "}},
			expenses: []*models.Expense{
				gearExpense(models.KeyPersonalGear, []bool{true, true}),
				freeExpense("base-petrol", "Petrol",
					[]models.Amount{models.Some(12), models.Some(100)},
					[]bool{true, true}),
			},
			rates: map[string]models.Amount{models.KeyPersonalGear: models.Some(7)},
			validateFunc: func(t *testing.T, r Result) {
				blank := r.Participants[1]
				if blank.Active || blank.Fee != 0 || blank.Balance != 0 || blank.Contributions != 0 {
					t.Errorf("blank row = %+v, want inactive and zero", blank)
				}
				// petrol total ignores the blank row's 100
				if !approx(r.Expenses[1].Total, 12) || r.Expenses[1].ConsumerCount != 1 {
					t.Errorf("petrol = %+v, want total 12 consumers 1", r.Expenses[1])
				}
				if !approx(r.Participants[0].Fee, 19) {
					t.Errorf("A fee = %v, want 19", r.Participants[0].Fee)
				}
				if !approx(r.ClubIncome, 7) {
					t.Errorf("ClubIncome = %v, want 7", r.ClubIncome)
				}
			},
		},
		{
			name:         "no consumers leaves total unattributed",
			participants: people("A", "B"),
			expenses: []*models.Expense{
				freeExpense("custom-0", "Food",
					[]models.Amount{models.Some(25), models.Empty()},
					[]bool{false, false}),
			},
			validateFunc: func(t *testing.T, r Result) {
				e := r.Expenses[0]
				if !approx(e.Total, 25) || e.Share != 0 || e.ConsumerCount != 0 {
					t.Errorf("expense = %+v, want total 25 share 0", e)
				}
				a := r.Participants[0]
				if a.Fee != 0 || !approx(a.Contributions, 25) || !approx(a.Balance, -25) {
					t.Errorf("A = %+v, want fee 0 contribution 25 balance -25", a)
				}
			},
		},
		{
			name:         "disabled base expense is skipped, custom always counted",
			participants: people("A"),
			expenses: []*models.Expense{
				func() *models.Expense {
					e := gearExpense(models.KeyPersonalGear, []bool{true})
					e.Enabled = false
					return e
				}(),
				func() *models.Expense {
					e := freeExpense("custom-0", "Hut", []models.Amount{models.Some(8)}, []bool{true})
					e.Enabled = false
					return e
				}(),
			},
			rates: map[string]models.Amount{models.KeyPersonalGear: models.Some(5)},
			validateFunc: func(t *testing.T, r Result) {
				if len(r.Expenses) != 1 || r.Expenses[0].ExpenseID != "custom-0" {
					t.Fatalf("expenses = %+v, want only custom-0", r.Expenses)
				}
				if !approx(r.Participants[0].Fee, 8) || r.ClubIncome != 0 {
					t.Errorf("fee = %v income = %v, want 8 and 0", r.Participants[0].Fee, r.ClubIncome)
				}
			},
		},
		{
			name:         "empty rate charges nothing",
			participants: people("A"),
			expenses: []*models.Expense{
				gearExpense(models.KeySharedGear, []bool{true}),
			},
			rates: map[string]models.Amount{models.KeySharedGear: models.Empty()},
			validateFunc: func(t *testing.T, r Result) {
				if r.Participants[0].Fee != 0 || r.ClubIncome != 0 {
					t.Errorf("fee = %v income = %v, want 0", r.Participants[0].Fee, r.ClubIncome)
				}
				if r.Expenses[0].ConsumerCount != 1 {
					t.Errorf("ConsumerCount = %d, want 1", r.Expenses[0].ConsumerCount)
				}
				if len(r.Participants[0].Breakdown) != 0 {
					t.Errorf("zero charge must not appear in breakdown")
				}
			},
		},
		{
			name:         "short vectors read as empty",
			participants: people("A", "B"),
			expenses: []*models.Expense{
				freeExpense("custom-0", "Food", []models.Amount{models.Some(6)}, []bool{true}),
			},
			validateFunc: func(t *testing.T, r Result) {
				if !approx(r.Participants[0].Fee, 6) || r.Participants[1].Fee != 0 {
					t.Errorf("fees = %v %v, want 6 0", r.Participants[0].Fee, r.Participants[1].Fee)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.participants, tt.expenses, tt.rates)
			if len(r.Participants) != len(tt.participants) {
				t.Fatalf("got %d participant results, want %d", len(r.Participants), len(tt.participants))
			}
			tt.validateFunc(t, r)
		})
	}
}

func TestCompute_SplitCorrectness(t *testing.T) {
	for c := 1; c <= 5; c++ {
		names := make([]string, 5)
		amounts := make([]models.Amount, 5)
		consumers := make([]bool, 5)
		for i := range names {
			names[i] = string(rune('A' + i))
			amounts[i] = models.Some(float64(i + 1))
			consumers[i] = i < c
		}
		r := Compute(people(names...), []*models.Expense{freeExpense("custom-0", "X", amounts, consumers)}, nil)
		want := 15.0 / float64(c)
		for i := 0; i < c; i++ {
			if !approx(r.Participants[i].Fee, want) {
				t.Errorf("c=%d participant %d fee = %v, want %v", c, i, r.Participants[i].Fee, want)
			}
		}
		for i := c; i < 5; i++ {
			if r.Participants[i].Fee != 0 {
				t.Errorf("c=%d non-consumer %d fee = %v, want 0", c, i, r.Participants[i].Fee)
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	ps := people("A", "B")
	expenses := []*models.Expense{
		freeExpense("custom-0", "Food", []models.Amount{models.Some(10), models.Some(4)}, []bool{true, true}),
		gearExpense(models.KeySharedGear, []bool{true, true}),
	}
	rates := map[string]models.Amount{models.KeySharedGear: models.Some(5)}

	first := Compute(ps, expenses, rates)
	second := Compute(ps, expenses, rates)
	if first.TotalFees != second.TotalFees || first.ClubIncome != second.ClubIncome || first.TotalBalance != second.TotalBalance {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}
