package ent

import "time"

// IdentificationUnit is one identified organism on a specimen. Units can
// nest via RelatedUnitID. Coordinates are plain fields here; the
// geometry column of the geo-analysis row is written on upload.
type IdentificationUnit struct {
	UnitID                  int        `db:"IdentificationUnitID" json:"unitId"`
	CollectionSpecimenID    int        `db:"CollectionSpecimenID" json:"collectionSpecimenId"`
	RelatedUnitID           *int       `db:"RelatedUnitID"        json:"relatedUnitId,omitempty"`
	TaxonomicGroup          string     `db:"TaxonomicGroup"       json:"taxonomicGroup"`
	OnlyObserved            bool       `db:"OnlyObserved"         json:"onlyObserved"`
	IdentificationURI       string     `db:"-"                    json:"identificationUri"`
	LastIdentificationCache string     `db:"LastIdentificationCache" json:"lastIdentificationCache"`
	Qualification           string     `db:"-"                    json:"qualification"`
	AnalysisDate            *time.Time `db:"-"                    json:"analysisDate,omitempty"`
	Latitude                *float64   `db:"-"                    json:"latitude,omitempty"`
	Longitude               *float64   `db:"-"                    json:"longitude,omitempty"`
	Altitude                *float64   `db:"-"                    json:"altitude,omitempty"`
}

// Identification is the determination row backing a unit.
type Identification struct {
	CollectionSpecimenID    int    `db:"CollectionSpecimenID"    json:"collectionSpecimenId"`
	UnitID                  int    `db:"IdentificationUnitID"    json:"unitId"`
	TaxonomicName           string `db:"TaxonomicName"           json:"taxonomicName"`
	NameURI                 string `db:"NameURI"                 json:"nameUri"`
	IdentificationQualifier string `db:"IdentificationQualifier" json:"identificationQualifier"`
	IdentificationYear      *int   `db:"IdentificationYear"      json:"identificationYear,omitempty"`
	IdentificationMonth     *int   `db:"IdentificationMonth"     json:"identificationMonth,omitempty"`
	IdentificationDay       *int   `db:"IdentificationDay"       json:"identificationDay,omitempty"`
}

// UnitGeoAnalysis is the geo-analysis row of a unit. The geometry column
// itself is not part of the struct; it is set by a separate update.
type UnitGeoAnalysis struct {
	UnitID               int        `db:"IdentificationUnitID" json:"unitId"`
	CollectionSpecimenID int        `db:"CollectionSpecimenID" json:"collectionSpecimenId"`
	AnalysisDate         *time.Time `db:"AnalysisDate"         json:"analysisDate,omitempty"`
	ResponsibleName      string     `db:"ResponsibleName"      json:"responsibleName"`
}

// UnitAnalysis is one measured analysis value of a unit.
type UnitAnalysis struct {
	CollectionSpecimenID int        `db:"CollectionSpecimenID" json:"collectionSpecimenId"`
	UnitID               int        `db:"IdentificationUnitID" json:"unitId"`
	AnalysisID           int        `db:"AnalysisID"           json:"analysisId"`
	AnalysisNumber       string     `db:"AnalysisNumber"       json:"analysisNumber"`
	AnalysisResult       string     `db:"AnalysisResult"       json:"analysisResult"`
	AnalysisDate         *time.Time `db:"AnalysisDate"         json:"analysisDate,omitempty"`
}

// Identification derives the determination row for a freshly uploaded
// unit.
func (iu IdentificationUnit) Identification(creds UserCredentials) Identification {
	var y, m, d *int
	if iu.AnalysisDate != nil {
		yy, mm, dd := iu.AnalysisDate.Date()
		mi, di := int(mm), dd
		y, m, d = &yy, &mi, &di
	}
	return Identification{
		CollectionSpecimenID:    iu.CollectionSpecimenID,
		UnitID:                  iu.UnitID,
		TaxonomicName:           iu.LastIdentificationCache,
		NameURI:                 iu.IdentificationURI,
		IdentificationQualifier: iu.Qualification,
		IdentificationYear:      y,
		IdentificationMonth:     m,
		IdentificationDay:       d,
	}
}

// GeoAnalysis derives the geo-analysis row for a freshly uploaded unit.
func (iu IdentificationUnit) GeoAnalysis(creds UserCredentials) UnitGeoAnalysis {
	return UnitGeoAnalysis{
		UnitID:               iu.UnitID,
		CollectionSpecimenID: iu.CollectionSpecimenID,
		AnalysisDate:         iu.AnalysisDate,
		ResponsibleName:      creds.LoginName,
	}
}
