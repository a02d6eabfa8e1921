// Package ioupload performs the transactional inserts of the upload
// path. Each root entity (series, event, specimen, identification unit)
// is one all-or-nothing transaction: the primary row, its generated id,
// the dependent rows, and - where coordinates were supplied - the
// geometry column.
//
// The geometry column cannot be filled through a plain insert because
// the dialect requires a constructor function call; it is applied with
// a secondary update against the just-inserted row instead.
package ioupload

import (
	"context"
	"errors"
	"fmt"

	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/errcode"
	"github.com/diversityworkbench/divservice/pkg/wkt"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE of a duplicate-key insert.
const pgUniqueViolation = "23505"

// srid prefixes geometry literals so the geography rows always carry
// WGS84 coordinates.
const srid = "SRID=4326;"

// Coordinator shapes the upload transactions.
type Coordinator struct{}

// New creates the coordinator.
func New() *Coordinator { return &Coordinator{} }

// withTx runs fn inside one transaction scope on the connection.
func withTx(
	ctx context.Context,
	c db.Conn,
	fn func(tx pgx.Tx) error,
) error {
	tx, err := c.Begin(ctx)
	if err != nil {
		return &gn.Error{
			Code: errcode.DBTransactionError,
			Msg:  "Cannot begin upload transaction",
			Err:  err,
		}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertErr(entity string, err error) error {
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  fmt.Sprintf("Cannot insert %s", entity),
		Err:  err,
	}
}

// InsertEventSeries inserts a series and, when at least two distinct
// path points were supplied, its path geometry.
func (u *Coordinator) InsertEventSeries(
	ctx context.Context,
	c db.Conn,
	series ent.EventSeries,
	locs []ent.Localization,
) (int, error) {
	var seriesID int
	err := withTx(ctx, c, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO "CollectionEventSeries"
			 ("SeriesCode", "Description", "DateStart", "DateEnd")
			 VALUES ($1, $2, $3, $4)
			 RETURNING "SeriesID"`,
			series.SeriesCode, series.Description,
			series.SeriesStart, series.SeriesEnd,
		).Scan(&seriesID)
		if err != nil {
			return insertErr("event series", err)
		}

		if geo := wkt.EncodeLineString(locs); geo != "" {
			_, err = tx.Exec(ctx,
				`UPDATE "CollectionEventSeries"
				 SET "Geography" = ST_GeographyFromText($1)
				 WHERE "SeriesID" = $2`,
				srid+geo, seriesID,
			)
			if err != nil {
				return insertErr("event series geometry", err)
			}
		}
		return nil
	})
	return seriesID, err
}

// InsertEvent inserts an event with its localisation and property rows.
func (u *Coordinator) InsertEvent(
	ctx context.Context,
	c db.Conn,
	creds ent.UserCredentials,
	ev ent.Event,
	props []ent.EventProperty,
) (int, error) {
	var eventID int
	err := withTx(ctx, c, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO "CollectionEvent"
			 ("SeriesID", "CollectionDate",
			  "LocalityDescription", "HabitatDescription")
			 VALUES ($1, $2, $3, $4)
			 RETURNING "CollectionEventID"`,
			ev.CollectionSeriesID, ev.CollectionDate,
			ev.LocalityDescription, ev.HabitatDescription,
		).Scan(&eventID)
		if err != nil {
			return insertErr("event", err)
		}
		ev.CollectionEventID = eventID

		geo := wkt.EncodePoint(ev.Latitude, ev.Longitude, ev.Altitude)
		for _, loc := range ev.Localisations(creds.LoginName) {
			_, err = tx.Exec(ctx,
				`INSERT INTO "CollectionEventLocalisation"
				 ("CollectionEventID", "LocalisationSystemID",
				  "Location1", "Location2", "ResponsibleName")
				 VALUES ($1, $2, $3, $4, $5)`,
				loc.CollectionEventID, loc.LocalisationSystemID,
				loc.Location1, loc.Location2, loc.ResponsibleName,
			)
			if err != nil {
				return insertErr("event localisation", err)
			}

			if geo != "" {
				_, err = tx.Exec(ctx,
					`UPDATE "CollectionEventLocalisation"
					 SET "Geography" = ST_GeographyFromText($1)
					 WHERE "CollectionEventID" = $2
					 AND "LocalisationSystemID" = $3`,
					srid+geo, loc.CollectionEventID, loc.LocalisationSystemID,
				)
				if err != nil {
					return insertErr("event geometry", err)
				}
			}
		}

		for _, p := range props {
			p.CollectionEventID = eventID
			_, err = tx.Exec(ctx,
				`INSERT INTO "CollectionEventProperty"
				 ("CollectionEventID", "PropertyID",
				  "DisplayText", "PropertyURI")
				 VALUES ($1, $2, $3, $4)`,
				p.CollectionEventID, p.PropertyID,
				p.DisplayText, p.PropertyURI,
			)
			if err != nil {
				return insertErr("event property", err)
			}
		}
		return nil
	})
	return eventID, err
}

// InsertSpecimen inserts a specimen with its project link and collector
// rows.
func (u *Coordinator) InsertSpecimen(
	ctx context.Context,
	c db.Conn,
	creds ent.UserCredentials,
	s ent.Specimen,
) (int, error) {
	var specimenID int
	err := withTx(ctx, c, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO "CollectionSpecimen"
			 ("CollectionEventID", "DepositorsAccessionNumber",
			  "AccessionDate")
			 VALUES ($1, $2, $3)
			 RETURNING "CollectionSpecimenID"`,
			s.CollectionEventID, s.AccessionNumber, s.AccessionDate,
		).Scan(&specimenID)
		if err != nil {
			return insertErr("specimen", err)
		}
		s.CollectionSpecimenID = specimenID

		proj := s.Project(creds.ProjectID)
		_, err = tx.Exec(ctx,
			`INSERT INTO "CollectionProject"
			 ("CollectionSpecimenID", "ProjectID")
			 VALUES ($1, $2)`,
			proj.CollectionSpecimenID, proj.ProjectID,
		)
		if err != nil {
			return insertErr("specimen project", err)
		}

		agent := s.Agent(creds)
		_, err = tx.Exec(ctx,
			`INSERT INTO "CollectionAgent"
			 ("CollectionSpecimenID", "CollectorsName",
			  "CollectorsAgentURI")
			 VALUES ($1, $2, $3)`,
			agent.CollectionSpecimenID, agent.CollectorsName,
			agent.CollectorsAgentURI,
		)
		if err != nil {
			return insertErr("specimen agent", err)
		}
		return nil
	})
	return specimenID, err
}

// InsertUnit inserts an identification unit with its identification,
// geo-analysis, geometry and analysis rows.
func (u *Coordinator) InsertUnit(
	ctx context.Context,
	c db.Conn,
	creds ent.UserCredentials,
	iu ent.IdentificationUnit,
	analyses []ent.UnitAnalysis,
) (int, error) {
	var unitID int
	err := withTx(ctx, c, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO "IdentificationUnit"
			 ("CollectionSpecimenID", "RelatedUnitID",
			  "TaxonomicGroup", "OnlyObserved",
			  "LastIdentificationCache")
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING "IdentificationUnitID"`,
			iu.CollectionSpecimenID, iu.RelatedUnitID,
			iu.TaxonomicGroup, iu.OnlyObserved,
			iu.LastIdentificationCache,
		).Scan(&unitID)
		if err != nil {
			return insertErr("identification unit", err)
		}
		iu.UnitID = unitID

		id := iu.Identification(creds)
		_, err = tx.Exec(ctx,
			`INSERT INTO "Identification"
			 ("CollectionSpecimenID", "IdentificationUnitID",
			  "TaxonomicName", "NameURI", "IdentificationQualifier",
			  "IdentificationYear", "IdentificationMonth",
			  "IdentificationDay")
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id.CollectionSpecimenID, id.UnitID,
			id.TaxonomicName, id.NameURI, id.IdentificationQualifier,
			id.IdentificationYear, id.IdentificationMonth,
			id.IdentificationDay,
		)
		if err != nil {
			return insertErr("identification", err)
		}

		geoRow := iu.GeoAnalysis(creds)
		_, err = tx.Exec(ctx,
			`INSERT INTO "IdentificationUnitGeoAnalysis"
			 ("IdentificationUnitID", "CollectionSpecimenID",
			  "AnalysisDate", "ResponsibleName")
			 VALUES ($1, $2, $3, $4)`,
			geoRow.UnitID, geoRow.CollectionSpecimenID,
			geoRow.AnalysisDate, geoRow.ResponsibleName,
		)
		if err != nil {
			return insertErr("unit geo-analysis", err)
		}

		if geo := wkt.EncodePoint(iu.Latitude, iu.Longitude, iu.Altitude); geo != "" {
			_, err = tx.Exec(ctx,
				`UPDATE "IdentificationUnitGeoAnalysis"
				 SET "Geography" = ST_GeographyFromText($1)
				 WHERE "CollectionSpecimenID" = $2
				 AND "IdentificationUnitID" = $3`,
				srid+geo, iu.CollectionSpecimenID, unitID,
			)
			if err != nil {
				return insertErr("unit geometry", err)
			}
		}

		for _, a := range analyses {
			a.UnitID = unitID
			a.CollectionSpecimenID = iu.CollectionSpecimenID
			_, err = tx.Exec(ctx,
				`INSERT INTO "IdentificationUnitAnalysis"
				 ("CollectionSpecimenID", "IdentificationUnitID",
				  "AnalysisID", "AnalysisNumber", "AnalysisResult",
				  "AnalysisDate")
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				a.CollectionSpecimenID, a.UnitID, a.AnalysisID,
				a.AnalysisNumber, a.AnalysisResult, a.AnalysisDate,
			)
			if err != nil {
				return insertErr("unit analysis", err)
			}
		}
		return nil
	})
	return unitID, err
}

// InsertMultimedia attaches a multimedia object to its owning entity.
// A duplicate-key failure means the object was uploaded before and is
// treated as success, which makes upload retries idempotent.
func (u *Coordinator) InsertMultimedia(
	ctx context.Context,
	c db.Conn,
	mmo ent.MultimediaObject,
) error {
	var err error
	switch mmo.OwnerType {
	case ent.OwnerEventSeries:
		img := mmo.SeriesImage()
		_, err = c.Exec(ctx,
			`INSERT INTO "CollectionEventSeriesImage"
			 ("SeriesID", "URI", "Description")
			 VALUES ($1, $2, $3)`,
			img.SeriesID, img.URI, img.Description,
		)
	case ent.OwnerEvent:
		img := mmo.EventImage()
		_, err = c.Exec(ctx,
			`INSERT INTO "CollectionEventImage"
			 ("CollectionEventID", "URI", "Description")
			 VALUES ($1, $2, $3)`,
			img.CollectionEventID, img.URI, img.Description,
		)
	case ent.OwnerSpecimen, ent.OwnerIdentificationUnit:
		var img ent.SpecimenImage
		img, err = u.specimenImage(ctx, c, mmo)
		if err != nil {
			break
		}
		_, err = c.Exec(ctx,
			`INSERT INTO "CollectionSpecimenImage"
			 ("CollectionSpecimenID", "IdentificationUnitID",
			  "URI", "Description")
			 VALUES ($1, $2, $3, $4)`,
			img.CollectionSpecimenID, img.UnitID,
			img.URI, img.Description,
		)
	default:
		return insertErr(
			"multimedia object",
			fmt.Errorf("unknown owner type %q", mmo.OwnerType),
		)
	}

	if isUniqueViolation(err) {
		// The object already exists; the retry succeeded before.
		return nil
	}
	if err != nil {
		return insertErr("multimedia object", err)
	}
	return nil
}

// specimenImage resolves the image row for a specimen or unit owner.
// For unit owners the specimen id is looked up from the unit row.
func (u *Coordinator) specimenImage(
	ctx context.Context,
	c db.Conn,
	mmo ent.MultimediaObject,
) (ent.SpecimenImage, error) {
	if mmo.OwnerType == ent.OwnerSpecimen {
		return ent.SpecimenImage{
			CollectionSpecimenID: mmo.OwnerID,
			URI:                  mmo.URI,
			Description:          mmo.Description,
		}, nil
	}

	specimenID, err := db.Scalar[int](
		ctx, c,
		`SELECT "CollectionSpecimenID" FROM "IdentificationUnit"
		 WHERE "IdentificationUnitID" = $1`,
		mmo.OwnerID,
	)
	if err != nil {
		return ent.SpecimenImage{}, err
	}
	unitID := mmo.OwnerID
	return ent.SpecimenImage{
		CollectionSpecimenID: specimenID,
		UnitID:               &unitID,
		URI:                  mmo.URI,
		Description:          mmo.Description,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
