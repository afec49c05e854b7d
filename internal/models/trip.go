package models

// Trip holds the free-text metadata printed on the sheet header.
// None of the fields are validated.
type Trip struct {
	// Date is normally YYYY-MM-DD but any text is accepted.
	Date     string
	Location string
	Leader   string
	Clerk    string
}
