// Package db defines the storage collaborator contract: opening
// connections to named catalogs on named servers and running
// positionally parametrized queries against them.
//
// All caller-supplied values are bound as parameters; the only
// identifiers ever interpolated into SQL text are catalog and function
// names, and those come exclusively from the discovery probes, never
// from untrusted input.
package db

import (
	"context"

	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/jackc/pgx/v5"
)

// Login identifies a database principal.
type Login struct {
	User     string
	Password string
}

// LoginOf converts the public API credential type into a storage login.
// The conversion is explicit on purpose; the credential model and the
// database principal are different things that happen to share fields.
func LoginOf(creds ent.UserCredentials) Login {
	return Login{User: creds.LoginName, Password: creds.Password}
}

// Conn is one open connection to a catalog on a server.
type Conn interface {
	// Query runs a parametrized query and returns the raw rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Begin opens a transaction scope on this connection.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Server, Catalog and User name the connection coordinates; they
	// also key the discovery cache.
	Server() string
	Catalog() string
	User() string

	Close()
}

// Connector opens catalog connections.
type Connector interface {
	Open(ctx context.Context, login Login, server, catalog string) (Conn, error)
}
