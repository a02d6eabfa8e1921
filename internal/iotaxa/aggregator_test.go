package iotaxa_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/internal/iocache"
	"github.com/diversityworkbench/divservice/internal/iotaxa"
	"github.com/diversityworkbench/divservice/pkg/discovery"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves taxon lists for one server from fixed data.
type fakeSource struct {
	server    string
	user      string
	lists     map[string][]ent.TaxonList
	listFn    map[string]bool
	listErr   error
	listCalls int
}

func (f *fakeSource) ServerID() string { return f.server }
func (f *fakeSource) UserID() string   { return f.user }

func (f *fakeSource) CatalogNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(f.lists))
	for name := range f.lists {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeSource) HasAccess(context.Context, string) (bool, error) {
	return true, nil
}

func (f *fakeSource) FunctionExists(
	_ context.Context, catalog, function string,
) (bool, error) {
	if function == taxa.ListFunction {
		return f.listFn[catalog], nil
	}
	return true, nil
}

func (f *fakeSource) ModuleType(context.Context, string) (string, error) {
	return discovery.ModuleTaxonNames, nil
}

func (f *fakeSource) TaxonLists(
	_ context.Context, catalog, _ string,
) ([]ent.TaxonList, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[catalog], nil
}

func (f *fakeSource) Close() {}

// fakeOpener hands out the prepared private and public sources.
type fakeOpener struct {
	private    *fakeSource
	public     *fakeSource
	privateErr error
	publicErr  error
}

func (f *fakeOpener) OpenPrivate(
	_ context.Context, _ ent.UserCredentials,
) (taxa.Source, error) {
	if f.privateErr != nil {
		return nil, f.privateErr
	}
	return f.private, nil
}

func (f *fakeOpener) OpenPublic(_ context.Context) (taxa.Source, error) {
	if f.publicErr != nil {
		return nil, f.publicErr
	}
	return f.public, nil
}

// fakeDiscoverer marks every catalog of the source as a taxonomy
// module, bypassing the probe chain.
type fakeDiscoverer struct{}

func (fakeDiscoverer) Modules(
	ctx context.Context, p discovery.Prober,
) (discovery.Modules, error) {
	names, err := p.CatalogNames(ctx)
	if err != nil {
		return nil, err
	}
	return discovery.Modules{discovery.ModuleTaxonNames: names}, nil
}

func creds() ent.UserCredentials {
	return ent.UserCredentials{
		LoginName:  "meyer",
		Password:   "secret",
		Repository: "Diversity Collection",
	}
}

func newOpener() *fakeOpener {
	return &fakeOpener{
		private: &fakeSource{
			server: "db1",
			user:   "meyer",
			lists: map[string][]ent.TaxonList{
				"DiversityTaxonNames_Plants": {
					{ID: 1, DisplayText: "Plants of Bavaria",
						TaxonomicGroup: "plant", Table: "TaxonListPlants"},
				},
			},
			listFn: map[string]bool{"DiversityTaxonNames_Plants": true},
		},
		public: &fakeSource{
			server: "tnt.diversityworkbench.de",
			user:   "taxareader",
			lists: map[string][]ent.TaxonList{
				"DiversityTaxonNames_Fungi": {
					{ID: 7, DisplayText: "Fungi of Europe",
						TaxonomicGroup: "fungus", Table: "TaxonListFungi"},
				},
			},
			listFn: map[string]bool{"DiversityTaxonNames_Fungi": true},
		},
	}
}

func TestTaxonListsForUser(t *testing.T) {
	ctx := context.Background()
	opener := newOpener()
	agg := iotaxa.New(opener, fakeDiscoverer{}, iocache.NewMemory(), 5*time.Minute)

	lists, err := agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	require.Len(t, lists, 2)

	byID := map[int]ent.TaxonList{}
	for _, l := range lists {
		byID[l.ID] = l
	}

	private := byID[1]
	assert.Equal(t, "DiversityTaxonNames_Plants", private.Catalog)
	assert.False(t, private.IsPublicList)

	public := byID[7]
	assert.Equal(t, "DiversityTaxonNames_Fungi", public.Catalog)
	assert.True(t, public.IsPublicList)
}

func TestTaxonListsDropInvalidRows(t *testing.T) {
	ctx := context.Background()
	opener := newOpener()
	opener.public.lists = nil
	opener.private.lists = map[string][]ent.TaxonList{
		"DiversityTaxonNames_Plants": {
			{ID: 1, DisplayText: "Plants of Bavaria", TaxonomicGroup: "plant"},
			{ID: 0, DisplayText: "Zero ID", TaxonomicGroup: "plant"},
			{ID: 2, DisplayText: "", TaxonomicGroup: "plant"},
			{ID: 3, DisplayText: "No Group", TaxonomicGroup: ""},
		},
	}
	agg := iotaxa.New(opener, fakeDiscoverer{}, iocache.NewMemory(), 5*time.Minute)

	lists, err := agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, 1, lists[0].ID)
}

func TestTaxonListsSkipCatalogWithoutListFunction(t *testing.T) {
	ctx := context.Background()
	opener := newOpener()
	opener.private.listFn = nil
	agg := iotaxa.New(opener, fakeDiscoverer{}, iocache.NewMemory(), 5*time.Minute)

	lists, err := agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.True(t, lists[0].IsPublicList)
	assert.Zero(t, opener.private.listCalls)
}

func TestPartialResultIsReturnedButNotCached(t *testing.T) {
	ctx := context.Background()
	opener := newOpener()
	opener.publicErr = errors.New("public server gone")
	agg := iotaxa.New(opener, fakeDiscoverer{}, iocache.NewMemory(), 5*time.Minute)

	lists, err := agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	require.Len(t, lists, 1, "private results survive the public failure")
	assert.False(t, lists[0].IsPublicList)

	// The second call must hit the source again: partial results are
	// never cached.
	_, err = agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	assert.Equal(t, 2, opener.private.listCalls)
}

func TestCompleteResultIsCached(t *testing.T) {
	ctx := context.Background()
	opener := newOpener()
	agg := iotaxa.New(opener, fakeDiscoverer{}, iocache.NewMemory(), 5*time.Minute)

	_, err := agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	_, err = agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)

	assert.Equal(t, 1, opener.private.listCalls)
	assert.Equal(t, 1, opener.public.listCalls)
}

func TestBothBranchesFailing(t *testing.T) {
	ctx := context.Background()
	opener := newOpener()
	opener.privateErr = errors.New("bad credentials")
	opener.publicErr = errors.New("public server gone")
	agg := iotaxa.New(opener, fakeDiscoverer{}, iocache.NewMemory(), 5*time.Minute)

	lists, err := agg.TaxonListsForUser(ctx, creds())
	require.NoError(t, err)
	assert.Empty(t, lists)
}
