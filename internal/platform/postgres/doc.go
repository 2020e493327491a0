// Package postgres provides the PostgreSQL deck store. It opens a pgx
// connection through database/sql, applies the shared schema migrations, and
// maps PostgreSQL error codes onto the errors defined in internal/store.
package postgres
