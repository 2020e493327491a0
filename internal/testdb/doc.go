// Package testdb provides helpers for tests that exercise the SQL deck
// stores: locating an integration database, isolating statements in a
// rolled-back transaction, and a shared sample deck.
//
// Postgres tests read the connection URL from HANZI_TEST_DATABASE_URL and
// are skipped when it is unset:
//
//	func TestSomething(t *testing.T) {
//		url := testdb.DatabaseURL(t)
//		...
//	}
package testdb
