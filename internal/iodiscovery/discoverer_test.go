package iodiscovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/internal/iocache"
	"github.com/diversityworkbench/divservice/internal/iodiscovery"
	"github.com/diversityworkbench/divservice/pkg/discovery"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber enumerates a fixed catalog directory and answers probes
// from maps. Catalogs missing from a map read as false/empty.
type fakeProber struct {
	server   string
	user     string
	catalogs []string
	enumErr  error

	access  map[string]bool
	marker  map[string]bool
	modules map[string]string

	probeErrs map[string]error

	enumCalls int
}

func (f *fakeProber) ServerID() string { return f.server }
func (f *fakeProber) UserID() string   { return f.user }

func (f *fakeProber) CatalogNames(context.Context) ([]string, error) {
	f.enumCalls++
	if f.enumErr != nil {
		return nil, f.enumErr
	}
	return f.catalogs, nil
}

func (f *fakeProber) HasAccess(_ context.Context, catalog string) (bool, error) {
	if err := f.probeErrs[catalog]; err != nil {
		return false, err
	}
	return f.access[catalog], nil
}

func (f *fakeProber) FunctionExists(_ context.Context, catalog, _ string) (bool, error) {
	return f.marker[catalog], nil
}

func (f *fakeProber) ModuleType(_ context.Context, catalog string) (string, error) {
	return f.modules[catalog], nil
}

func newFakeProber() *fakeProber {
	return &fakeProber{
		server: "db1",
		user:   "meyer",
		catalogs: []string{
			"DiversityCollection",
			"DiversityTaxonNames_Plants",
			"DiversityTaxonNames_Locked",
			"NotAModule",
			"BlankMarker",
			"Broken",
		},
		access: map[string]bool{
			"DiversityCollection":        true,
			"DiversityTaxonNames_Plants": true,
			"NotAModule":                 true,
			"BlankMarker":                true,
			"Broken":                     true,
		},
		marker: map[string]bool{
			"DiversityCollection":        true,
			"DiversityTaxonNames_Plants": true,
			"DiversityTaxonNames_Locked": true,
			"BlankMarker":                true,
			"Broken":                     true,
		},
		modules: map[string]string{
			"DiversityCollection":        discovery.ModuleCollection,
			"DiversityTaxonNames_Plants": discovery.ModuleTaxonNames,
			"DiversityTaxonNames_Locked": discovery.ModuleTaxonNames,
			"BlankMarker":                "   ",
		},
		probeErrs: map[string]error{
			"Broken": errors.New("connection refused"),
		},
	}
}

func TestModules(t *testing.T) {
	ctx := context.Background()
	p := newFakeProber()
	disc := iodiscovery.New(iocache.NewMemory(), 5*time.Minute)

	mods, err := disc.Modules(ctx, p)
	require.NoError(t, err)

	// Accessible catalogs with a marker and a non-blank label map to
	// their module; everything else is skipped without failing the scan.
	assert.Equal(t, discovery.Modules{
		discovery.ModuleCollection: {"DiversityCollection"},
		discovery.ModuleTaxonNames: {"DiversityTaxonNames_Plants"},
	}, mods)
}

func TestModulesEnumFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	p := newFakeProber()
	p.enumErr = errors.New("server gone")
	disc := iodiscovery.New(iocache.NewMemory(), 5*time.Minute)

	_, err := disc.Modules(ctx, p)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
}

func TestModulesCaching(t *testing.T) {
	ctx := context.Background()
	p := newFakeProber()
	disc := iodiscovery.New(iocache.NewMemory(), 5*time.Minute)

	first, err := disc.Modules(ctx, p)
	require.NoError(t, err)
	require.Equal(t, 1, p.enumCalls)

	second, err := disc.Modules(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, p.enumCalls, "second call must be served from cache")
	assert.Equal(t, first, second)
}

func TestModulesCacheExpiry(t *testing.T) {
	ctx := context.Background()
	p := newFakeProber()
	now := time.Now()
	clock := func() time.Time { return now }
	disc := iodiscovery.New(iocache.NewMemoryWithClock(clock), 5*time.Minute)

	_, err := disc.Modules(ctx, p)
	require.NoError(t, err)

	now = now.Add(4 * time.Minute)
	_, err = disc.Modules(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, p.enumCalls, "within the window the scan is cached")

	now = now.Add(2 * time.Minute)
	_, err = disc.Modules(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, p.enumCalls, "past the window the scan runs again")
}

func TestModulesCacheIsPerServerAndUser(t *testing.T) {
	ctx := context.Background()
	disc := iodiscovery.New(iocache.NewMemory(), 5*time.Minute)

	p1 := newFakeProber()
	_, err := disc.Modules(ctx, p1)
	require.NoError(t, err)

	p2 := newFakeProber()
	p2.user = "schmidt"
	_, err = disc.Modules(ctx, p2)
	require.NoError(t, err)

	assert.Equal(t, 1, p2.enumCalls, "a different user is a different scope")
}
