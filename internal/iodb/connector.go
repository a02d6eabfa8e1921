// Package iodb implements the storage collaborator contract over
// pgx connection pools. One Conn wraps one pool bound to a catalog on a
// server; the prober and taxon source open short-lived per-catalog
// connections on top of it during discovery scans.
package iodb

import (
	"context"
	"net/url"

	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxConnector struct{}

// NewConnector creates the pgx-backed connector.
func NewConnector() db.Connector {
	return &pgxConnector{}
}

func (pc *pgxConnector) Open(
	ctx context.Context,
	login db.Login,
	server, catalog string,
) (db.Conn, error) {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(login.User, login.Password),
		Host:   server,
		Path:   "/" + catalog,
	}

	poolCfg, err := pgxpool.ParseConfig(u.String())
	if err != nil {
		return nil, NewConnectionError(server, catalog, login.User, err)
	}

	// Catalog connections are short-lived request companions; a small
	// pool is enough.
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, NewConnectionError(server, catalog, login.User, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, NewConnectionError(server, catalog, login.User, err)
	}

	return &conn{
		pool:    pool,
		server:  server,
		catalog: catalog,
		user:    login.User,
	}, nil
}

type conn struct {
	pool    *pgxpool.Pool
	server  string
	catalog string
	user    string
}

func (c *conn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.pool.Query(ctx, sql, args...)
}

func (c *conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *conn) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.pool.Begin(ctx)
}

func (c *conn) Server() string  { return c.server }
func (c *conn) Catalog() string { return c.catalog }
func (c *conn) User() string    { return c.user }

func (c *conn) Close() { c.pool.Close() }
