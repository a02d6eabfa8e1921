// Package taxa defines the taxon-list aggregation contract: collecting
// the taxon catalogs a user may read across their own repository and the
// shared public taxon server.
package taxa

import (
	"context"

	"github.com/diversityworkbench/divservice/pkg/discovery"
	"github.com/diversityworkbench/divservice/pkg/ent"
)

// ListFunction is the per-user listing function a taxonomy catalog must
// provide to expose its taxon lists.
const ListFunction = "DiversityMobile_TaxonListsForUser"

// Source is one server reachable with one login, able to be probed for
// modules and to list taxon lists per catalog.
type Source interface {
	discovery.Prober

	// TaxonLists invokes the listing function of a taxonomy catalog for
	// a login name.
	TaxonLists(ctx context.Context, catalog, loginName string) ([]ent.TaxonList, error)

	Close()
}

// Opener opens the two sources the aggregation draws from.
type Opener interface {
	// OpenPrivate connects with the caller's own credentials to their
	// configured repository. An unknown repository name is an error.
	OpenPrivate(ctx context.Context, creds ent.UserCredentials) (Source, error)

	// OpenPublic connects with the statically configured public-taxa
	// credentials.
	OpenPublic(ctx context.Context) (Source, error)
}

// Aggregator merges private and public taxon lists for a user.
type Aggregator interface {
	// TaxonListsForUser returns every valid taxon list the user may
	// read. The private and public fetches run concurrently; if one of
	// them fails the other's results are still returned, but such a
	// partial result is never cached.
	TaxonListsForUser(ctx context.Context, creds ent.UserCredentials) ([]ent.TaxonList, error)
}
