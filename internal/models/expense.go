package models

// ExpenseKind discriminates how an expense is costed.
type ExpenseKind int

const (
	// KindFreeAmount expenses have a free-text amount per participant.
	// The total is shared equally among consumers.
	KindFreeAmount ExpenseKind = iota

	// KindDirectCharge expenses charge every consumer a uniform rate.
	// They store no amounts; the amount is derived from the rate.
	KindDirectCharge
)

func (k ExpenseKind) String() string {
	switch k {
	case KindDirectCharge:
		return "direct-charge"
	default:
		return "free-amount"
	}
}

// Base expense keys.
const (
	KeyPersonalGear = "personal-gear"
	KeySharedGear   = "shared-gear"
	KeyPetrol       = "petrol"
)

// DefaultCustomName is used for imported custom expenses that carry no name.
const DefaultCustomName = "Custom Expense"

// ExpenseDefinition describes a base expense created once at startup.
type ExpenseDefinition struct {
	Key             string
	Name            string
	Kind            ExpenseKind
	Enabled         bool
	DefaultConsumer bool
}

// BaseExpenses lists the fixed expense categories in display order.
var BaseExpenses = []ExpenseDefinition{
	{Key: KeyPersonalGear, Name: "Personal Gear", Kind: KindDirectCharge, Enabled: true, DefaultConsumer: false},
	{Key: KeySharedGear, Name: "Shared Gear", Kind: KindDirectCharge, Enabled: true, DefaultConsumer: false},
	{Key: KeyPetrol, Name: "Petrol", Kind: KindFreeAmount, Enabled: true, DefaultConsumer: true},
}

// DefaultRates are the per-consumer rates for direct-charge expenses.
var DefaultRates = map[string]Amount{
	KeyPersonalGear: Some(5),
	KeySharedGear:   Some(5),
}

// Expense is one column of the attendance sheet.
type Expense struct {
	// ID is "base-<key>" for base expenses and "custom-<n>" for custom ones.
	ID string

	// Key identifies a base expense. Empty for custom expenses.
	Key string

	// Name is the column heading and the label used in fee breakdowns.
	Name string

	Kind ExpenseKind

	// Base is true for the fixed categories, which can be disabled but never removed.
	Base bool

	// Enabled controls whether a base expense takes part in computation.
	// Custom expenses always take part; their flag is only persisted.
	Enabled bool

	// DefaultConsumer is the consumer flag given to newly added rows.
	DefaultConsumer bool

	// Amounts holds one cell per participant for free-amount expenses.
	// It is nil for direct-charge expenses.
	Amounts []Amount

	// Consumers holds one flag per participant: whether that participant
	// shares in this expense.
	Consumers []bool
}

// Active reports whether the expense is included in computation.
func (e *Expense) Active() bool {
	return !e.Base || e.Enabled
}

// Resize truncates or extends the per-participant vectors to n slots.
// New amount cells are empty; new consumer flags take DefaultConsumer.
func (e *Expense) Resize(n int) {
	if e.Kind == KindFreeAmount {
		e.Amounts = resize(e.Amounts, n, Empty())
	} else {
		e.Amounts = nil
	}
	e.Consumers = resize(e.Consumers, n, e.DefaultConsumer)
}

func resize[T any](s []T, n int, fill T) []T {
	if len(s) >= n {
		return s[:n:n]
	}
	out := make([]T, n)
	copy(out, s)
	for i := len(s); i < n; i++ {
		out[i] = fill
	}
	return out
}
