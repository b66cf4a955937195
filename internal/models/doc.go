// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - User: a registered person who can pay for or share expenses
//   - SplitSpec: one participant's entry in an expense's split rule
//   - Expense: an immutable ledger record with its computed split amounts
//   - BalanceEntry: one user's net position on the balance sheet
//   - UserExpense: one line of a user's expense history
//
// # Design Principles
//
// 1. **Integer identities**: Users and expenses are identified by sequential int64 IDs
// 2. **Exact money**: Every amount is a decimal.Decimal, never a float
// 3. **Avoid circular references**: Expenses reference users by ID only
// 4. **Derived balances**: Balances are never stored, only recomputed from the ledger
//
// The error taxonomy shared by every layer (ValidationError, InvalidSplitError,
// NotFoundError) also lives here so the calculator, the service and the HTTP
// layer agree on it without importing each other.
package models
