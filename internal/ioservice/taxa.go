package ioservice

import (
	"context"
	"fmt"

	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/diversityworkbench/divservice/pkg/ent"
)

// TaxonLists returns every valid taxon list the caller may read, merged
// across their own repository and the public taxon server.
func (s *divservice) TaxonLists(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.TaxonList, error) {
	return s.agg.TaxonListsForUser(ctx, creds)
}

// TaxonNames returns one page of a taxon list. Pages are 1-based and
// sized by the configured page size; a page past the end is empty.
//
// Legacy clients send a zero list id with only the backing table name
// set. Those are resolved against the caller's current lists, first
// match on the table name wins; a table no list is backed by anymore
// downloads as empty.
func (s *divservice) TaxonNames(
	ctx context.Context,
	creds ent.UserCredentials,
	list ent.TaxonList,
	page int,
) ([]ent.TaxonName, error) {
	if list.ID == 0 {
		resolved, ok, err := s.resolveLegacyList(ctx, creds, list.Table)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []ent.TaxonName{}, nil
		}
		list = resolved
	}

	var c db.Conn
	var err error
	if list.IsPublicList {
		c, err = s.openPublicCatalog(ctx, list.Catalog)
	} else {
		c, err = s.openRepoCatalog(ctx, creds, list.Catalog)
	}
	if err != nil {
		return nil, err
	}
	defer c.Close()

	// The table name comes from the catalog's own list function, not
	// from the client.
	res, err := db.Page[ent.TaxonName](
		ctx, c, page, s.cfg.PageSize,
		fmt.Sprintf(
			`SELECT "NameURI", "TaxonomicName", "TaxonomicGroup", "Synonymy"
			 FROM "%s" ORDER BY "TaxonomicName"`,
			list.Table,
		),
	)
	if err != nil {
		return nil, queryErr("taxon names", err)
	}
	return res.Items, nil
}

// resolveLegacyList finds the caller's taxon list backed by the given
// table name.
func (s *divservice) resolveLegacyList(
	ctx context.Context,
	creds ent.UserCredentials,
	table string,
) (ent.TaxonList, bool, error) {
	lists, err := s.agg.TaxonListsForUser(ctx, creds)
	if err != nil {
		return ent.TaxonList{}, false, err
	}
	for _, l := range lists {
		if l.Table == table {
			return l, true, nil
		}
	}
	return ent.TaxonList{}, false, nil
}

// Properties lists the scientific-term lists the caller may download.
func (s *divservice) Properties(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.PropertyList, error) {
	c, err := s.openTerms(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	props, err := db.Select[ent.PropertyList](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, fnPropertyLists),
		creds.LoginName,
	)
	if err != nil {
		return nil, queryErr("property lists", err)
	}
	return props, nil
}

// PropertyValues returns one page of a scientific-term list.
func (s *divservice) PropertyValues(
	ctx context.Context,
	creds ent.UserCredentials,
	propertyID, page int,
) ([]ent.PropertyValue, error) {
	c, err := s.openTerms(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	res, err := db.Page[ent.PropertyValue](
		ctx, c, page, s.cfg.PageSize,
		fmt.Sprintf(
			`SELECT "PropertyID", "PropertyURI", "DisplayText"
			 FROM "%s"($1) ORDER BY "DisplayText"`,
			fnPropertyValues,
		),
		propertyID,
	)
	if err != nil {
		return nil, queryErr("property values", err)
	}
	return res.Items, nil
}
