package calculator

import (
	"github.com/mmynk/tripsheet/internal/models"
)

// BreakdownEntry is one line of a participant's fee breakdown.
type BreakdownEntry struct {
	Expense string
	Amount  float64
}

// ParticipantResult is the computed fee and balance for one row.
type ParticipantResult struct {
	Index         int
	ParticipantID models.ParticipantID
	Name          string
	Active        bool

	// Fee is the sum of this participant's shares and direct charges.
	Fee float64

	// Contributions is the sum of amounts this participant entered across
	// all active free-amount expenses, whether or not they consume them.
	Contributions float64

	// Balance is Fee - Contributions.
	// Positive: owed to the club. Negative: the club owes the participant.
	Balance float64

	Breakdown []BreakdownEntry
}

// ExpenseResult is the computed footer for one active expense.
type ExpenseResult struct {
	ExpenseID     string
	Name          string
	Kind          models.ExpenseKind
	Total         float64
	ConsumerCount int

	// Share is the per-consumer amount: the rate for direct charges,
	// Total/ConsumerCount for free amounts (0 when nobody consumes).
	Share float64
}

// Result is the output of one allocation pass.
type Result struct {
	Participants []ParticipantResult
	Expenses     []ExpenseResult

	// TotalFees sums Fee over active participants.
	TotalFees float64

	// TotalBalance sums Balance over active participants and is shown as
	// club gear depreciation.
	TotalBalance float64

	// ClubIncome is the money retained by the club from gear charges.
	ClubIncome float64
}

// Compute allocates every active expense across the participants.
// Inactive expenses are skipped. Every call starts from zero and depends only
// on its arguments. Expense vectors are expected to be sized to the roster;
// missing slots read as empty / not consuming.
func Compute(participants []models.Participant, expenses []*models.Expense, rates map[string]models.Amount) Result {
	n := len(participants)
	fees := make([]float64, n)
	contributions := make([]float64, n)
	breakdowns := make([][]BreakdownEntry, n)
	active := make([]bool, n)
	for i, p := range participants {
		active[i] = p.Active()
	}

	var result Result
	for _, expense := range expenses {
		if !expense.Active() {
			continue
		}

		er := ExpenseResult{
			ExpenseID: expense.ID,
			Name:      expense.Name,
			Kind:      expense.Kind,
		}

		if expense.Kind == models.KindDirectCharge {
			charge := rates[expense.Key].OrZero()
			er.Share = charge
			for i := 0; i < n; i++ {
				if !active[i] || !consumes(expense, i) {
					continue
				}
				er.ConsumerCount++
				er.Total += charge
				fees[i] += charge
				if charge > 0 {
					breakdowns[i] = append(breakdowns[i], BreakdownEntry{Expense: expense.Name, Amount: charge})
					result.ClubIncome += charge
				}
			}
			result.Expenses = append(result.Expenses, er)
			continue
		}

		var consumers []int
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			if i < len(expense.Amounts) && expense.Amounts[i].Finite() {
				er.Total += expense.Amounts[i].Value
				contributions[i] += expense.Amounts[i].Value
			}
			if consumes(expense, i) {
				consumers = append(consumers, i)
			}
		}

		er.ConsumerCount = len(consumers)
		if er.ConsumerCount > 0 {
			er.Share = er.Total / float64(er.ConsumerCount)
		}
		for _, i := range consumers {
			fees[i] += er.Share
			if er.Share > 0 {
				breakdowns[i] = append(breakdowns[i], BreakdownEntry{Expense: expense.Name, Amount: er.Share})
			}
		}
		result.Expenses = append(result.Expenses, er)
	}

	result.Participants = make([]ParticipantResult, n)
	for i, p := range participants {
		pr := ParticipantResult{
			Index:         i,
			ParticipantID: p.ID,
			Name:          p.Name,
			Active:        active[i],
		}
		if active[i] {
			pr.Fee = fees[i]
			pr.Contributions = contributions[i]
			pr.Balance = pr.Fee - pr.Contributions
			pr.Breakdown = breakdowns[i]
			result.TotalFees += pr.Fee
			result.TotalBalance += pr.Balance
		}
		result.Participants[i] = pr
	}

	return result
}

func consumes(expense *models.Expense, i int) bool {
	return i < len(expense.Consumers) && expense.Consumers[i]
}
