package calculator

import "github.com/mmynk/tripsheet/internal/models"

// ToggleState is the tri-state "everyone shares this expense" control.
type ToggleState struct {
	Checked       bool
	Indeterminate bool
	Disabled      bool
}

// Reconcile derives the master toggle state from the shared-gear consumer flags.
//
// Only named participants are counted; when nobody is named, every slot is
// counted so an empty roster still has a defined state. A missing or
// disabled expense yields a disabled, unchecked toggle.
func Reconcile(sharedGear *models.Expense, participants []models.Participant) ToggleState {
	if sharedGear == nil || !sharedGear.Active() {
		return ToggleState{Disabled: true}
	}

	var relevant []int
	for i, p := range participants {
		if p.Active() {
			relevant = append(relevant, i)
		}
	}
	if len(relevant) == 0 {
		for i := range participants {
			relevant = append(relevant, i)
		}
	}
	if len(relevant) == 0 {
		return ToggleState{}
	}

	checked := 0
	for _, i := range relevant {
		if consumes(sharedGear, i) {
			checked++
		}
	}

	return ToggleState{
		Checked:       checked == len(relevant),
		Indeterminate: checked > 0 && checked < len(relevant),
	}
}
