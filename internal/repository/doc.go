// Package repository implements player data access over the Postgres
// pool. The get-or-create race is resolved database-side with a single
// conflict-aware statement; no application-level check-then-insert exists
// anywhere in this package.
package repository
