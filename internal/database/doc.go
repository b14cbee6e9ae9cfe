// Package database provides the storage handles for the mini-app API: a
// bounded Postgres connection pool (sqlx over lib/pq) and a pooled Redis
// client.
//
// Handles are constructed once at process start and injected into every
// component that needs them; there are no ambient globals.
//
// # Error Handling
//
// Sentinel errors cover the two failure cases callers branch on:
//
//	if errors.Is(err, database.ErrNotFound) { ... }
//	if errors.Is(err, database.ErrDuplicate) { ... }
//
// # Transactions
//
// Multi-statement work runs through Transaction, which commits on success
// and rolls back on any error with guaranteed cleanup. Single-statement
// operations (including the player upsert) rely on Postgres statement
// atomicity and need no explicit transaction.
package database
