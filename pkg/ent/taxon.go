package ent

// TaxonList is a named catalog of taxonomic names a user may browse and
// download page by page. The numeric ID is only unique within one
// catalog; lookups therefore key on (Catalog, ID), or on the backing
// table for legacy clients that do not send the ID.
type TaxonList struct {
	ID             int    `db:"ListID"          json:"id"`
	DisplayText    string `db:"DisplayText"     json:"displayText"`
	TaxonomicGroup string `db:"TaxonomicGroup"  json:"taxonomicGroup"`
	Table          string `db:"DataSource"      json:"table"`
	Catalog        string `db:"-"               json:"catalog"`
	IsPublicList   bool   `db:"-"               json:"isPublicList"`
}

// Valid reports whether a list row returned by a catalog is usable.
// Catalogs occasionally contain garbage rows with missing display text,
// missing taxonomic group or a zero ID; those must never reach clients.
func (l TaxonList) Valid() bool {
	return l.DisplayText != "" && l.TaxonomicGroup != "" && l.ID != 0
}

// TaxonName is one row of a taxon list.
type TaxonName struct {
	URI            string `db:"NameURI"        json:"uri"`
	TaxonomicName  string `db:"TaxonomicName"  json:"taxonomicName"`
	TaxonomicGroup string `db:"TaxonomicGroup" json:"taxonomicGroup"`
	Synonymy       string `db:"Synonymy"       json:"synonymy"`
}
