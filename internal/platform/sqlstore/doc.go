// Package sqlstore implements store.DeckStore on database/sql. The SQLite and
// PostgreSQL packages open the connection and supply a Dialect; the schema,
// migrations and row mapping live here so both backends share one layout.
package sqlstore
