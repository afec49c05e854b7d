package calculator

import (
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code used for display.
const Currency = money.AUD

// BalanceStatus classifies a balance for display.
type BalanceStatus int

const (
	Settled BalanceStatus = iota
	OwedToClub
	OwedByClub
)

func (s BalanceStatus) String() string {
	switch s {
	case OwedToClub:
		return "owed to club"
	case OwedByClub:
		return "owed by club"
	default:
		return "settled"
	}
}

// FormatCurrency renders v with two decimals. Non-finite values render as "".
// A value that rounds to zero always renders as "0.00", never "-0.00".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	d := exact(v).Round(2)
	if d.IsZero() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// exact returns the binary value of v to 20 places rather than its shortest
// decimal form, so 2.675 (stored as 2.67499...) rounds down to 2.67.
// Exact halves such as 0.125 still round away from zero.
func exact(v float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 20, 64))
}

// Dollars renders the absolute value of v with the currency symbol, e.g. "$10.00".
func Dollars(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	cents := exact(math.Abs(v)).Shift(2).Round(0).IntPart()
	return money.New(cents, Currency).Display()
}

// Status returns how a balance should be presented.
// Only the displayed two-decimal value decides: a tiny float residue is Settled.
func Status(balance float64) BalanceStatus {
	d := exact(balance).Round(2)
	switch {
	case d.IsPositive():
		return OwedToClub
	case d.IsNegative():
		return OwedByClub
	default:
		return Settled
	}
}

// BalanceLabel renders a balance the way the sheet shows it:
// "($10.00)" when owed to the club, "$10.00" when the club owes, "" when settled.
func BalanceLabel(balance float64) string {
	switch Status(balance) {
	case OwedToClub:
		return "(" + Dollars(balance) + ")"
	case OwedByClub:
		return Dollars(balance)
	default:
		return ""
	}
}
