// Package iodiscovery scans the catalog namespace of a Diversity server
// and classifies each accessible catalog by its module-marker function.
package iodiscovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diversityworkbench/divservice/pkg/cache"
	"github.com/diversityworkbench/divservice/pkg/discovery"
	"github.com/diversityworkbench/divservice/pkg/errcode"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// cacheTagModules tags the per-(server, user) module cache entries.
const cacheTagModules = "MODULES"

type discoverer struct {
	cache cache.Cache
	ttl   time.Duration
	enc   gnfmt.Encoder
}

// New creates a Discoverer memoizing scans in the given cache for the
// given validity window.
func New(c cache.Cache, ttl time.Duration) discovery.Discoverer {
	return &discoverer{
		cache: c,
		ttl:   ttl,
		enc:   gnfmt.GNjson{},
	}
}

// probeOutcome is the per-catalog result of one scan step. A catalog
// either maps to a module type or names the reason it was skipped;
// skipping is a normal outcome, not an exception.
type probeOutcome struct {
	catalog string
	module  string
	skip    string
}

func (d *discoverer) Modules(
	ctx context.Context,
	p discovery.Prober,
) (discovery.Modules, error) {
	key := cache.Key(p.ServerID(), p.UserID(), cacheTagModules)

	if cached, err := d.cache.Get(ctx, key); err == nil && cached != nil {
		var mods discovery.Modules
		if err := d.enc.Decode(cached, &mods); err == nil {
			return mods, nil
		}
		slog.Warn("Discarding undecodable module cache entry", "key", key)
	}

	names, err := p.CatalogNames(ctx)
	if err != nil {
		// Without the directory, an empty result would be cached as
		// "no catalogs"; fail the call instead.
		slog.Error("Cannot list catalogs",
			"server", p.ServerID(), "error", err)
		return nil, &gn.Error{
			Code: errcode.DiscoveryCatalogEnumError,
			Msg: fmt.Sprintf(
				"Cannot list catalogs on server %s", p.ServerID(),
			),
			Err: err,
		}
	}

	outcomes := make([]probeOutcome, 0, len(names))
	for _, name := range names {
		outcomes = append(outcomes, d.probeCatalog(ctx, p, name))
	}

	mods := discovery.Modules{}
	var skipped int
	for _, out := range outcomes {
		if out.skip != "" {
			skipped++
			slog.Debug("Skipping catalog",
				"server", p.ServerID(),
				"user", p.UserID(),
				"catalog", out.catalog,
				"reason", out.skip,
			)
			continue
		}
		mods[out.module] = append(mods[out.module], out.catalog)
	}

	slog.Info("Catalog scan complete",
		"server", p.ServerID(),
		"user", p.UserID(),
		"catalogs", humanize.Comma(int64(len(names))),
		"modules", len(mods),
		"skipped", skipped,
	)

	if data, err := d.enc.Encode(mods); err == nil {
		if err := d.cache.Add(ctx, key, data, time.Now().Add(d.ttl)); err != nil {
			slog.Warn("Cannot cache module scan", "key", key, "error", err)
		}
	} else {
		slog.Warn("Cannot encode module scan", "key", key, "error", err)
	}

	return mods, nil
}

// probeCatalog runs the per-catalog probe chain. Every failure is
// contained here: one unreachable or malformed catalog must not fail
// the scan of all others.
func (d *discoverer) probeCatalog(
	ctx context.Context,
	p discovery.Prober,
	catalog string,
) probeOutcome {
	out := probeOutcome{catalog: catalog}

	hasAccess, err := p.HasAccess(ctx, catalog)
	if err != nil {
		out.skip = "access check failed: " + err.Error()
		return out
	}
	if !hasAccess {
		out.skip = "no access"
		return out
	}

	isModule, err := p.FunctionExists(ctx, catalog, discovery.MarkerFunction)
	if err != nil {
		out.skip = "marker probe failed: " + err.Error()
		return out
	}
	if !isModule {
		out.skip = "not a module"
		return out
	}

	moduleType, err := p.ModuleType(ctx, catalog)
	if err != nil {
		out.skip = "marker invocation failed: " + err.Error()
		return out
	}
	moduleType = strings.TrimSpace(moduleType)
	if moduleType == "" {
		out.skip = "blank module type"
		return out
	}

	out.module = moduleType
	return out
}
