package ioservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diversityworkbench/divservice/internal/ioservice"
	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAggregator serves a fixed set of taxon lists.
type fakeAggregator struct {
	lists []ent.TaxonList
	err   error
}

func (f *fakeAggregator) TaxonListsForUser(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.TaxonList, error) {
	return f.lists, f.err
}

func creds() ent.UserCredentials {
	return ent.UserCredentials{
		LoginName:  "meyer",
		Password:   "secret",
		Repository: "Diversity Collection",
	}
}

func TestTaxonNamesUnknownLegacyTable(t *testing.T) {
	agg := &fakeAggregator{
		lists: []ent.TaxonList{
			{ID: 1, DisplayText: "Plants", Table: "TaxRef_Plants"},
		},
	}
	svc := ioservice.New(config.New(), nil, agg, nil)

	// Legacy clients identify a list only by its backing table. A table
	// no current list is backed by downloads as empty, not as an error.
	names, err := svc.TaxonNames(
		context.Background(), creds(),
		ent.TaxonList{Table: "TaxRef_Gone"}, 1,
	)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)
}

func TestTaxonNamesLegacyResolveFailure(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("server unreachable")}
	svc := ioservice.New(config.New(), nil, agg, nil)

	_, err := svc.TaxonNames(
		context.Background(), creds(),
		ent.TaxonList{Table: "TaxRef_Plants"}, 1,
	)
	assert.Error(t, err)
}
