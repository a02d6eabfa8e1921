// Package discovery classifies the catalogs of a Diversity server into
// Workbench modules.
//
// There is no registry of catalogs: every catalog on a server must be
// probed for the module-marker function to learn whether - and which
// kind of - Workbench module it implements. The scan is an N-probe pass
// over the whole catalog namespace; its cost is amortized through a
// per-(server, user) time-bounded cache.
package discovery

import (
	"context"
)

// Module type labels returned by the marker function.
const (
	ModuleTaxonNames = "DiversityTaxonNames"
	ModuleCollection = "DiversityCollection"
)

// MarkerFunction is the database function whose presence marks a
// catalog as a Workbench module; invoking it yields the module type.
const MarkerFunction = "DiversityWorkbenchModule"

// Modules maps a module type label to the catalogs implementing it, in
// scan order.
type Modules map[string][]string

// Prober enumerates and probes the catalogs of one server as one login.
// ServerID and UserID identify the scan scope for caching.
type Prober interface {
	ServerID() string
	UserID() string

	// CatalogNames lists every catalog on the server. A failure here is
	// fatal for a scan: without the directory no partial result can be
	// distinguished from "no catalogs".
	CatalogNames(ctx context.Context) ([]string, error)

	// HasAccess reports whether the login may open the catalog.
	HasAccess(ctx context.Context, catalog string) (bool, error)

	// FunctionExists reports whether the named function exists in the
	// catalog's system objects.
	FunctionExists(ctx context.Context, catalog, function string) (bool, error)

	// ModuleType invokes the marker function of the catalog.
	ModuleType(ctx context.Context, catalog string) (string, error)
}

// Discoverer finds the Workbench modules visible to a login.
type Discoverer interface {
	// Modules returns the catalogs of the prober's server grouped by
	// module type. Results are served from cache within the TTL window;
	// individual unreachable or malformed catalogs are skipped, never
	// failing the scan.
	Modules(ctx context.Context, p Prober) (Modules, error)
}
