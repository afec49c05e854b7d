package service

import (
	"github.com/mmynk/tripsheet/internal/calculator"
	"github.com/mmynk/tripsheet/internal/ledger"
	"github.com/mmynk/tripsheet/internal/snapshot"
)

// buildView renders the ledger's current state and computed result.
func buildView(s *ledger.State) *LedgerView {
	result := s.Result()
	toggle := s.Toggle()

	view := &LedgerView{
		Trip: TripView{
			Date:     s.Trip.Date,
			Location: s.Trip.Location,
			Leader:   s.Trip.Leader,
			Clerk:    s.Trip.Clerk,
			Tag:      snapshot.Tag(s.Trip),
			FileName: snapshot.FileName(s.Trip),
		},
		Rates:        s.Rates(),
		TotalFees:    result.TotalFees,
		TotalBalance: result.TotalBalance,
		ClubIncome:   result.ClubIncome,
		SharedGearToggle: ToggleView{
			Checked:       toggle.Checked,
			Indeterminate: toggle.Indeterminate,
			Disabled:      toggle.Disabled,
		},
		DuplicateNames: s.DuplicateNames(),
	}
	if result.TotalFees != 0 {
		view.TotalFeesText = calculator.Dollars(result.TotalFees)
	}
	if result.ClubIncome != 0 {
		view.ClubIncomeText = calculator.Dollars(result.ClubIncome)
	}
	view.DepreciationText = calculator.BalanceLabel(result.TotalBalance)

	participants := s.Participants()
	for i, pr := range result.Participants {
		p := participants[i]
		pv := ParticipantView{
			ID:            string(p.ID),
			Name:          p.Name,
			Bold:          p.Bold,
			Notes:         p.Notes,
			Active:        pr.Active,
			Fee:           pr.Fee,
			Contributions: pr.Contributions,
			Balance:       pr.Balance,
			BalanceText:   calculator.BalanceLabel(pr.Balance),
			BalanceStatus: calculator.Status(pr.Balance).String(),
		}
		if pr.Active && pr.Fee != 0 {
			pv.FeeText = calculator.Dollars(pr.Fee)
		}
		for _, b := range pr.Breakdown {
			pv.Breakdown = append(pv.Breakdown, BreakdownView{
				Expense: b.Expense,
				Amount:  b.Amount,
				Text:    b.Expense + ": " + calculator.Dollars(b.Amount),
			})
		}
		view.Participants = append(view.Participants, pv)
	}

	totals := make(map[string]calculator.ExpenseResult, len(result.Expenses))
	for _, er := range result.Expenses {
		totals[er.ExpenseID] = er
	}
	for _, e := range s.Expenses() {
		ev := ExpenseView{
			ID:        e.ID,
			Key:       e.Key,
			Name:      e.Name,
			Kind:      e.Kind.String(),
			Base:      e.Base,
			Enabled:   e.Enabled,
			Active:    e.Active(),
			Consumers: append([]bool{}, e.Consumers...),
		}
		for i := range e.Consumers {
			ev.Amounts = append(ev.Amounts, s.AmountCell(e, i))
		}
		if er, ok := totals[e.ID]; ok {
			ev.Total = er.Total
			ev.ConsumerCount = er.ConsumerCount
			ev.Share = er.Share
			ev.TotalText = calculator.Dollars(er.Total)
			ev.ShareText = calculator.Dollars(er.Share)
		}
		view.Expenses = append(view.Expenses, ev)
	}
	return view
}
