package service

import "github.com/mmynk/tripsheet/internal/models"

// Requests. Indexes address participant rows by position.

type GetLedgerRequest struct{}

type AddParticipantRequest struct{}

type RemoveLastParticipantRequest struct{}

type UpdateParticipantRequest struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Bold  bool   `json:"bold"`
	Notes string `json:"notes"`
}

type SetTripRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Leader   string `json:"leader"`
	Clerk    string `json:"clerk"`
}

type AddCustomExpenseRequest struct {
	Name string `json:"name"`
}

type RemoveCustomExpenseRequest struct {
	Name string `json:"name"`
}

type SetExpenseEnabledRequest struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// SetBaseRateRequest carries the rate as typed text; "" clears the rate.
type SetBaseRateRequest struct {
	Key  string `json:"key"`
	Rate string `json:"rate"`
}

// EditAmountRequest carries the amount as typed text; "" clears the cell.
type EditAmountRequest struct {
	ExpenseID string `json:"expenseId"`
	Index     int    `json:"index"`
	Amount    string `json:"amount"`
}

type EditConsumerRequest struct {
	ExpenseID string `json:"expenseId"`
	Index     int    `json:"index"`
	Consumer  bool   `json:"consumer"`
}

type SetSharedGearAllRequest struct {
	Selected bool `json:"selected"`
}

type ExportSnapshotRequest struct{}

type GetRosterRequest struct{}

type GetBankingDetailsRequest struct{}

type SaveSheetRequest struct {
	Title string `json:"title"`
}

type ListSheetsRequest struct{}

type LoadSheetRequest struct {
	ID string `json:"id"`
}

type DeleteSheetRequest struct {
	ID string `json:"id"`
}

// Responses.

type TripView struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Leader   string `json:"leader"`
	Clerk    string `json:"clerk"`
	Tag      string `json:"tag"`
	FileName string `json:"fileName"`
}

type BreakdownView struct {
	Expense string  `json:"expense"`
	Amount  float64 `json:"amount"`
	Text    string  `json:"text"`
}

type ParticipantView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Bold          bool            `json:"bold"`
	Notes         string          `json:"notes"`
	Active        bool            `json:"active"`
	Fee           float64         `json:"fee"`
	Contributions float64         `json:"contributions"`
	Balance       float64         `json:"balance"`
	FeeText       string          `json:"feeText"`
	BalanceText   string          `json:"balanceText"`
	BalanceStatus string          `json:"balanceStatus"`
	Breakdown     []BreakdownView `json:"breakdown"`
}

type ExpenseView struct {
	ID            string          `json:"id"`
	Key           string          `json:"key,omitempty"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	Base          bool            `json:"base"`
	Enabled       bool            `json:"enabled"`
	Active        bool            `json:"active"`
	Amounts       []models.Amount `json:"amounts"`
	Consumers     []bool          `json:"consumers"`
	Total         float64         `json:"total"`
	ConsumerCount int             `json:"consumerCount"`
	Share         float64         `json:"share"`
	TotalText     string          `json:"totalText"`
	ShareText     string          `json:"shareText"`
}

type ToggleView struct {
	Checked       bool `json:"checked"`
	Indeterminate bool `json:"indeterminate"`
	Disabled      bool `json:"disabled"`
}

// LedgerView is the full ledger after a call, recomputed.
type LedgerView struct {
	Trip             TripView                 `json:"trip"`
	Rates            map[string]models.Amount `json:"rates"`
	Participants     []ParticipantView        `json:"participants"`
	Expenses         []ExpenseView            `json:"expenses"`
	TotalFees        float64                  `json:"totalFees"`
	TotalBalance     float64                  `json:"totalBalance"`
	ClubIncome       float64                  `json:"clubIncome"`
	TotalFeesText    string                   `json:"totalFeesText"`
	DepreciationText string                   `json:"depreciationText"`
	ClubIncomeText   string                   `json:"clubIncomeText"`
	SharedGearToggle ToggleView               `json:"sharedGearToggle"`
	DuplicateNames   []string                 `json:"duplicateNames"`
}

type RosterResponse struct {
	Names []string `json:"names"`
}

type BankingLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type BankingDetailsResponse struct {
	Lines []BankingLine `json:"lines"`
}

type SheetView struct {
	ID        string `json:"id"`
	Tag       string `json:"tag"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"`
}

type SaveSheetResponse struct {
	Sheet SheetView `json:"sheet"`
}

type ListSheetsResponse struct {
	Sheets []SheetView `json:"sheets"`
}

type DeleteSheetResponse struct{}
