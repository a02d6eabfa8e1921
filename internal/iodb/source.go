package iodb

import (
	"context"
	"fmt"
	"sync"

	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/diversityworkbench/divservice/pkg/discovery"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/taxa"
)

// source probes one server as one login. The home connection (to the
// repository's default catalog) serves the catalog directory and access
// checks; per-catalog connections are opened lazily for the probes that
// must run inside a catalog.
type source struct {
	connector db.Connector
	login     db.Login
	home      db.Conn

	mu       sync.Mutex
	catalogs map[string]db.Conn
}

// NewSource opens the home connection of a discovery/aggregation source.
func NewSource(
	ctx context.Context,
	connector db.Connector,
	login db.Login,
	server, catalog string,
) (taxa.Source, error) {
	home, err := connector.Open(ctx, login, server, catalog)
	if err != nil {
		return nil, err
	}
	return &source{
		connector: connector,
		login:     login,
		home:      home,
		catalogs:  make(map[string]db.Conn),
	}, nil
}

func (s *source) ServerID() string { return s.home.Server() }
func (s *source) UserID() string   { return s.home.User() }

func (s *source) CatalogNames(ctx context.Context) ([]string, error) {
	return db.Select[string](
		ctx, s.home,
		`SELECT datname FROM pg_database
		 WHERE NOT datistemplate AND datallowconn
		 ORDER BY datname`,
	)
}

func (s *source) HasAccess(ctx context.Context, catalog string) (bool, error) {
	return db.Scalar[bool](
		ctx, s.home,
		"SELECT has_database_privilege($1, $2, 'CONNECT')",
		s.login.User, catalog,
	)
}

func (s *source) FunctionExists(
	ctx context.Context,
	catalog, function string,
) (bool, error) {
	c, err := s.catalogConn(ctx, catalog)
	if err != nil {
		return false, err
	}
	return db.Scalar[bool](
		ctx, c,
		`SELECT EXISTS (
			SELECT 1 FROM pg_proc p
			JOIN pg_namespace n ON n.oid = p.pronamespace
			WHERE n.nspname = 'public' AND p.proname = $1
		)`,
		function,
	)
}

func (s *source) ModuleType(ctx context.Context, catalog string) (string, error) {
	c, err := s.catalogConn(ctx, catalog)
	if err != nil {
		return "", err
	}
	// The function name comes from the discovery constant, never from
	// caller input.
	return db.Scalar[string](
		ctx, c,
		fmt.Sprintf(`SELECT "%s"()`, discovery.MarkerFunction),
	)
}

func (s *source) TaxonLists(
	ctx context.Context,
	catalog, loginName string,
) ([]ent.TaxonList, error) {
	c, err := s.catalogConn(ctx, catalog)
	if err != nil {
		return nil, err
	}
	return db.Select[ent.TaxonList](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, taxa.ListFunction),
		loginName,
	)
}

// catalogConn returns the lazily opened connection into a catalog.
func (s *source) catalogConn(ctx context.Context, catalog string) (db.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.catalogs[catalog]; ok {
		return c, nil
	}
	c, err := s.connector.Open(ctx, s.login, s.home.Server(), catalog)
	if err != nil {
		return nil, err
	}
	s.catalogs[catalog] = c
	return c, nil
}

func (s *source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.catalogs {
		c.Close()
	}
	s.catalogs = make(map[string]db.Conn)
	s.home.Close()
}

// opener creates sources from caller credentials and from the
// configured public-taxa target.
type opener struct {
	connector db.Connector
	cfg       *config.Config
}

// NewOpener creates the taxa.Opener backed by configuration.
func NewOpener(connector db.Connector, cfg *config.Config) taxa.Opener {
	return &opener{connector: connector, cfg: cfg}
}

func (o *opener) OpenPrivate(
	ctx context.Context,
	creds ent.UserCredentials,
) (taxa.Source, error) {
	repo := o.cfg.RepositoryByName(creds.Repository)
	if repo == nil {
		return nil, NewUnknownRepositoryError(creds.Repository)
	}
	return NewSource(ctx, o.connector, db.LoginOf(creds), repo.Server, repo.Catalog)
}

func (o *opener) OpenPublic(ctx context.Context) (taxa.Source, error) {
	pt := o.cfg.PublicTaxa
	login := db.Login{User: pt.User, Password: pt.Password}
	return NewSource(ctx, o.connector, login, pt.Server, pt.Catalog)
}
