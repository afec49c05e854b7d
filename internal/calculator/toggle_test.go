package calculator

import (
	"testing"

	"github.com/mmynk/tripsheet/internal/models"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name         string
		expense      *models.Expense
		participants []models.Participant
		want         ToggleState
	}{
		{
			name:         "missing expense disables toggle",
			expense:      nil,
			participants: people("A"),
			want:         ToggleState{Disabled: true},
		},
		{
			name: "disabled expense disables toggle",
			expense: func() *models.Expense {
				e := gearExpense(models.KeySharedGear, []bool{true})
				e.Enabled = false
				return e
			}(),
			participants: people("A"),
			want:         ToggleState{Disabled: true},
		},
		{
			name:         "partial selection is indeterminate",
			expense:      gearExpense(models.KeySharedGear, []bool{true, false, true}),
			participants: people("A", "B", "C"),
			want:         ToggleState{Indeterminate: true},
		},
		{
			name:         "all named participants selected",
			expense:      gearExpense(models.KeySharedGear, []bool{true, false}),
			participants: []models.Participant{{Name: "A"}, {Name: ""}},
			want:         ToggleState{Checked: true},
		},
		{
			name:         "none selected",
			expense:      gearExpense(models.KeySharedGear, []bool{false, false}),
			participants: people("A", "B"),
			want:         ToggleState{},
		},
		{
			name:         "unnamed roster falls back to all slots",
			expense:      gearExpense(models.KeySharedGear, []bool{true, false}),
			participants: []models.Participant{{}, {}},
			want:         ToggleState{Indeterminate: true},
		},
		{
			name:         "empty roster is unchecked",
			expense:      gearExpense(models.KeySharedGear, nil),
			participants: nil,
			want:         ToggleState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.expense, tt.participants)
			if got != tt.want {
				t.Errorf("Reconcile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
