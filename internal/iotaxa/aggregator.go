// Package iotaxa aggregates the taxon lists a user may read across
// their own repository and the shared public taxon server.
package iotaxa

import (
	"context"
	"log/slog"
	"time"

	"github.com/diversityworkbench/divservice/pkg/cache"
	"github.com/diversityworkbench/divservice/pkg/discovery"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/taxa"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// cacheTagTaxonLists tags the per-(login, repository) aggregate cache
// entries.
const cacheTagTaxonLists = "TAXONLISTS"

type aggregator struct {
	opener taxa.Opener
	disc   discovery.Discoverer
	cache  cache.Cache
	ttl    time.Duration
	enc    gnfmt.Encoder
}

// New creates the aggregator.
func New(
	opener taxa.Opener,
	disc discovery.Discoverer,
	c cache.Cache,
	ttl time.Duration,
) taxa.Aggregator {
	return &aggregator{
		opener: opener,
		disc:   disc,
		cache:  c,
		ttl:    ttl,
		enc:    gnfmt.GNjson{},
	}
}

// branch is the outcome of one of the two concurrent fetches. The
// barrier below collects branches instead of failing the whole join on
// the first error.
type branch struct {
	lists []ent.TaxonList
	err   error
}

func (a *aggregator) TaxonListsForUser(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.TaxonList, error) {
	key := cache.Key(creds.LoginName, creds.Repository, cacheTagTaxonLists)

	if cached, err := a.cache.Get(ctx, key); err == nil && cached != nil {
		var lists []ent.TaxonList
		if err := a.enc.Decode(cached, &lists); err == nil {
			return lists, nil
		}
		slog.Warn("Discarding undecodable taxon-list cache entry", "key", key)
	}

	// The private and public sources live on different servers with
	// different credentials and have no data dependency; fetch them
	// concurrently.
	var private, public branch
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		private.lists, private.err = a.fetch(gctx, privateSource{creds: creds, opener: a.opener})
		return nil
	})
	g.Go(func() error {
		public.lists, public.err = a.fetch(gctx, publicSource{opener: a.opener})
		return nil
	})
	// The goroutines record their outcomes instead of returning errors,
	// so Wait only acts as a barrier.
	_ = g.Wait()

	if private.err != nil {
		slog.Error("Private taxon-list fetch failed",
			"login", creds.LoginName,
			"repository", creds.Repository,
			"error", private.err,
		)
	}
	if public.err != nil {
		slog.Error("Public taxon-list fetch failed", "error", public.err)
	}

	merged := make([]ent.TaxonList, 0, len(private.lists)+len(public.lists))
	merged = append(merged, private.lists...)
	merged = append(merged, public.lists...)

	// A partial result must never masquerade as a complete cached one.
	if private.err != nil || public.err != nil {
		return merged, nil
	}

	if data, err := a.enc.Encode(merged); err == nil {
		if err := a.cache.Add(ctx, key, data, time.Now().Add(a.ttl)); err != nil {
			slog.Warn("Cannot cache taxon lists", "key", key, "error", err)
		}
	}
	return merged, nil
}

// sourceSpec abstracts over the two fetch branches: how to open the
// source, the repository label for logs, and the public flag to tag
// results with.
type sourceSpec interface {
	open(ctx context.Context) (taxa.Source, error)
	repository() string
	loginName(src taxa.Source) string
	isPublic() bool
}

type privateSource struct {
	creds  ent.UserCredentials
	opener taxa.Opener
}

func (p privateSource) open(ctx context.Context) (taxa.Source, error) {
	return p.opener.OpenPrivate(ctx, p.creds)
}
func (p privateSource) repository() string           { return p.creds.Repository }
func (p privateSource) loginName(taxa.Source) string { return p.creds.LoginName }
func (p privateSource) isPublic() bool               { return false }

type publicSource struct {
	opener taxa.Opener
}

func (p publicSource) open(ctx context.Context) (taxa.Source, error) {
	return p.opener.OpenPublic(ctx)
}
func (p publicSource) repository() string               { return "PublicTaxa" }
func (p publicSource) loginName(src taxa.Source) string { return src.UserID() }
func (p publicSource) isPublic() bool                   { return true }

// fetch opens one source and enumerates its taxon lists.
func (a *aggregator) fetch(
	ctx context.Context,
	spec sourceSpec,
) ([]ent.TaxonList, error) {
	src, err := spec.open(ctx)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return a.enumerate(ctx, src, spec)
}

// enumerate lists the taxon lists of every taxonomy catalog the source
// login can see. Per-catalog failures are logged and skipped; only the
// module scan itself can fail the enumeration.
func (a *aggregator) enumerate(
	ctx context.Context,
	src taxa.Source,
	spec sourceSpec,
) ([]ent.TaxonList, error) {
	modules, err := a.disc.Modules(ctx, src)
	if err != nil {
		return nil, err
	}

	catalogs := modules[discovery.ModuleTaxonNames]
	loginName := spec.loginName(src)

	var result []ent.TaxonList
	for _, catalog := range catalogs {
		ok, err := src.FunctionExists(ctx, catalog, taxa.ListFunction)
		if err != nil || !ok {
			slog.Warn("Taxonomy catalog lacks the listing function",
				"catalog", catalog,
				"repository", spec.repository(),
				"function", taxa.ListFunction,
				"error", err,
			)
			continue
		}

		lists, err := src.TaxonLists(ctx, catalog, loginName)
		if err != nil {
			slog.Warn("Cannot list taxon lists",
				"catalog", catalog,
				"repository", spec.repository(),
				"error", err,
			)
			continue
		}

		for _, l := range lists {
			l.Catalog = catalog
			l.IsPublicList = spec.isPublic()
			if !l.Valid() {
				// Catalogs occasionally contain garbage rows; drop
				// them before they reach the cache or the caller.
				slog.Warn("Dropping invalid taxon list",
					"id", l.ID,
					"displayText", l.DisplayText,
					"catalog", catalog,
					"repository", spec.repository(),
				)
				continue
			}
			result = append(result, l)
		}
	}
	return result, nil
}
