package ioservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/wkt"
)

// maxLocalityEvents caps a locality search; the clients page through
// series, not events, so a broad search stays bounded.
const maxLocalityEvents = 50

// EventSeriesByQuery finds event series whose code or description
// contains the query string.
func (s *divservice) EventSeriesByQuery(
	ctx context.Context,
	creds ent.UserCredentials,
	query string,
) ([]ent.EventSeries, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	series, err := db.Select[ent.EventSeries](
		ctx, c,
		`SELECT "SeriesID", "SeriesCode", "Description",
		        "DateStart", "DateEnd"
		 FROM "CollectionEventSeries"
		 WHERE "SeriesCode" ILIKE $1 OR "Description" ILIKE $1
		 ORDER BY "SeriesID"`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, queryErr("event series", err)
	}
	return series, nil
}

// EventSeriesByID returns one event series, or nil when it does not
// exist.
func (s *divservice) EventSeriesByID(
	ctx context.Context,
	creds ent.UserCredentials,
	seriesID int,
) (*ent.EventSeries, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	series, err := db.One[ent.EventSeries](
		ctx, c,
		`SELECT "SeriesID", "SeriesCode", "Description",
		        "DateStart", "DateEnd"
		 FROM "CollectionEventSeries" WHERE "SeriesID" = $1`,
		seriesID,
	)
	if err != nil {
		return nil, queryErr("event series", err)
	}
	return series, nil
}

// LocalizationsForSeries decodes the stored path geometry of a series
// into its points. A series without a geometry has no points.
func (s *divservice) LocalizationsForSeries(
	ctx context.Context,
	creds ent.UserCredentials,
	seriesID int,
) ([]ent.Localization, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	geo, err := db.ScalarOrNil[string](
		ctx, c,
		`SELECT ST_AsText("Geography")
		 FROM "CollectionEventSeries" WHERE "SeriesID" = $1`,
		seriesID,
	)
	if err != nil {
		return nil, queryErr("series geometry", err)
	}
	if geo == nil {
		return []ent.Localization{}, nil
	}
	return wkt.ParsePoints(*geo), nil
}

// coordRow carries the decimal coordinate columns of a localisation row
// as text; the text round-trip keeps the stored scale out of the float
// conversion.
type coordRow struct {
	Lat *string `db:"Lat"`
	Lon *string `db:"Lon"`
	Alt *string `db:"Alt"`
}

// EventsByLocality finds events by locality description, with their
// WGS84 coordinates and altitude attached. The result is capped at
// maxLocalityEvents rows.
func (s *divservice) EventsByLocality(
	ctx context.Context,
	creds ent.UserCredentials,
	locality string,
) ([]ent.Event, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	events, err := db.Select[ent.Event](
		ctx, c,
		fmt.Sprintf(
			`SELECT "CollectionEventID", "SeriesID", "CollectionDate",
			        "LocalityDescription", "HabitatDescription"
			 FROM "CollectionEvent"
			 WHERE "LocalityDescription" ILIKE $1
			 ORDER BY "CollectionEventID"
			 LIMIT %d`, maxLocalityEvents,
		),
		"%"+locality+"%",
	)
	if err != nil {
		return nil, queryErr("events", err)
	}

	for i := range events {
		if err := s.attachCoordinates(ctx, c, &events[i]); err != nil {
			// An event with broken localisation rows is still worth
			// returning without coordinates.
			slog.Warn("Cannot read event coordinates",
				"eventID", events[i].CollectionEventID, "error", err)
		}
	}
	return events, nil
}

// attachCoordinates fills the plain coordinate fields of an event from
// its WGS84 and altitude localisation rows.
func (s *divservice) attachCoordinates(
	ctx context.Context,
	c db.Conn,
	ev *ent.Event,
) error {
	wgs, err := db.One[coordRow](
		ctx, c,
		`SELECT CAST("AverageLatitudeCache" AS TEXT) AS "Lat",
		        CAST("AverageLongitudeCache" AS TEXT) AS "Lon",
		        CAST(NULL AS TEXT) AS "Alt"
		 FROM "CollectionEventLocalisation"
		 WHERE "CollectionEventID" = $1 AND "LocalisationSystemID" = $2`,
		ev.CollectionEventID, ent.LocSysWGS84,
	)
	if err != nil {
		return err
	}
	if wgs != nil {
		ev.Latitude = wkt.FloatFromDecimal(wgs.Lat)
		ev.Longitude = wkt.FloatFromDecimal(wgs.Lon)
	}

	alt, err := db.One[coordRow](
		ctx, c,
		`SELECT CAST("AverageAltitudeCache" AS TEXT) AS "Alt",
		        CAST(NULL AS TEXT) AS "Lat", CAST(NULL AS TEXT) AS "Lon"
		 FROM "CollectionEventLocalisation"
		 WHERE "CollectionEventID" = $1 AND "LocalisationSystemID" = $2`,
		ev.CollectionEventID, ent.LocSysAltitude,
	)
	if err != nil {
		return err
	}
	if alt != nil {
		ev.Altitude = wkt.FloatFromDecimal(alt.Alt)
	}
	return nil
}

// PropertiesForEvent lists the property rows of an event.
func (s *divservice) PropertiesForEvent(
	ctx context.Context,
	creds ent.UserCredentials,
	eventID int,
) ([]ent.EventProperty, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	props, err := db.Select[ent.EventProperty](
		ctx, c,
		`SELECT "CollectionEventID", "PropertyID",
		        "DisplayText", "PropertyURI"
		 FROM "CollectionEventProperty"
		 WHERE "CollectionEventID" = $1`,
		eventID,
	)
	if err != nil {
		return nil, queryErr("event properties", err)
	}
	return props, nil
}

// SpecimensForEvent lists the specimens of an event.
func (s *divservice) SpecimensForEvent(
	ctx context.Context,
	creds ent.UserCredentials,
	eventID int,
) ([]ent.Specimen, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	specimens, err := db.Select[ent.Specimen](
		ctx, c,
		`SELECT "CollectionSpecimenID", "CollectionEventID",
		        "DepositorsAccessionNumber", "AccessionDate"
		 FROM "CollectionSpecimen"
		 WHERE "CollectionEventID" = $1
		 ORDER BY "CollectionSpecimenID"`,
		eventID,
	)
	if err != nil {
		return nil, queryErr("specimens", err)
	}
	return specimens, nil
}

// UnitsForSpecimen lists the top-level identification units of a
// specimen with their identification and coordinates attached.
func (s *divservice) UnitsForSpecimen(
	ctx context.Context,
	creds ent.UserCredentials,
	specimenID int,
) ([]ent.IdentificationUnit, error) {
	return s.units(
		ctx, creds,
		`SELECT "IdentificationUnitID", "CollectionSpecimenID",
		        "RelatedUnitID", "TaxonomicGroup", "OnlyObserved",
		        "LastIdentificationCache"
		 FROM "IdentificationUnit"
		 WHERE "CollectionSpecimenID" = $1 AND "RelatedUnitID" IS NULL
		 ORDER BY "IdentificationUnitID"`,
		specimenID,
	)
}

// SubUnits lists the direct child units of a unit, enriched the same
// way as top-level units.
func (s *divservice) SubUnits(
	ctx context.Context,
	creds ent.UserCredentials,
	unitID int,
) ([]ent.IdentificationUnit, error) {
	return s.units(
		ctx, creds,
		`SELECT "IdentificationUnitID", "CollectionSpecimenID",
		        "RelatedUnitID", "TaxonomicGroup", "OnlyObserved",
		        "LastIdentificationCache"
		 FROM "IdentificationUnit"
		 WHERE "RelatedUnitID" = $1
		 ORDER BY "IdentificationUnitID"`,
		unitID,
	)
}

func (s *divservice) units(
	ctx context.Context,
	creds ent.UserCredentials,
	sql string,
	arg any,
) ([]ent.IdentificationUnit, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	units, err := db.Select[ent.IdentificationUnit](ctx, c, sql, arg)
	if err != nil {
		return nil, queryErr("identification units", err)
	}
	for i := range units {
		if err := s.enrichUnit(ctx, c, &units[i]); err != nil {
			slog.Warn("Cannot enrich identification unit",
				"unitID", units[i].UnitID, "error", err)
		}
	}
	return units, nil
}

// enrichUnit attaches the latest identification and the geo-analysis
// point of a unit.
func (s *divservice) enrichUnit(
	ctx context.Context,
	c db.Conn,
	iu *ent.IdentificationUnit,
) error {
	id, err := db.One[ent.Identification](
		ctx, c,
		`SELECT "CollectionSpecimenID", "IdentificationUnitID",
		        "TaxonomicName", "NameURI", "IdentificationQualifier",
		        "IdentificationYear", "IdentificationMonth",
		        "IdentificationDay"
		 FROM "Identification"
		 WHERE "CollectionSpecimenID" = $1
		 AND "IdentificationUnitID" = $2
		 ORDER BY "IdentificationSequence" DESC
		 LIMIT 1`,
		iu.CollectionSpecimenID, iu.UnitID,
	)
	if err != nil {
		return err
	}
	if id != nil {
		iu.IdentificationURI = id.NameURI
		iu.Qualification = id.IdentificationQualifier
	}

	// Coordinates go through a fixed-scale decimal cast, the same way
	// attachCoordinates reads event localisations; ST_AsText renders at
	// default precision and would drift stored values.
	geo, err := db.One[coordRow](
		ctx, c,
		`SELECT CAST(CAST(ST_Y("Geography"::geometry) AS DECIMAL(25,20)) AS TEXT) AS "Lat",
		        CAST(CAST(ST_X("Geography"::geometry) AS DECIMAL(25,20)) AS TEXT) AS "Lon",
		        CAST(CAST(ST_Z("Geography"::geometry) AS DECIMAL(25,20)) AS TEXT) AS "Alt"
		 FROM "IdentificationUnitGeoAnalysis"
		 WHERE "CollectionSpecimenID" = $1
		 AND "IdentificationUnitID" = $2`,
		iu.CollectionSpecimenID, iu.UnitID,
	)
	if err != nil {
		return err
	}
	if geo != nil {
		iu.Latitude = wkt.FloatFromDecimal(geo.Lat)
		iu.Longitude = wkt.FloatFromDecimal(geo.Lon)
		iu.Altitude = wkt.FloatFromDecimal(geo.Alt)
	}
	return nil
}

// AnalysesForUnit lists the analysis values measured on a unit.
func (s *divservice) AnalysesForUnit(
	ctx context.Context,
	creds ent.UserCredentials,
	unitID int,
) ([]ent.UnitAnalysis, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	res, err := db.Select[ent.UnitAnalysis](
		ctx, c,
		`SELECT "CollectionSpecimenID", "IdentificationUnitID",
		        "AnalysisID", "AnalysisNumber", "AnalysisResult",
		        "AnalysisDate"
		 FROM "IdentificationUnitAnalysis"
		 WHERE "IdentificationUnitID" = $1
		 ORDER BY "AnalysisID"`,
		unitID,
	)
	if err != nil {
		return nil, queryErr("unit analyses", err)
	}
	return res, nil
}
