// Package models defines the core domain models for a trip sheet.
//
// # Models
//
//   - Participant: one row of the attendance sheet, addressed by a stable ID
//   - Expense: a base or custom expense with per-row amounts and consumer flags
//   - Amount: a typed cell value that distinguishes "empty" from zero
//   - Trip: free-text sheet header (date, location, leader, clerk)
//   - Sheet: an archived export of a whole ledger
//
// # Expense kinds
//
// Direct-charge expenses (personal gear, shared gear) charge a single rate to
// every named consumer and keep no amounts of their own. Free-amount
// expenses (petrol and every custom expense) record what each participant
// paid and split the total evenly across consumers.
//
// Rows are addressed by position in the public API; the ID only keeps a
// participant's identity stable across removals.
package models
