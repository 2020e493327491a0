// Package store defines the persistence boundary for the review deck.
// The interfaces abstract the underlying storage mechanism from the session
// logic, so the review rules stay independent of whether the deck lives in a
// YAML file, SQLite or PostgreSQL.
package store
