package ioservice

import (
	"context"

	"github.com/diversityworkbench/divservice/pkg/ent"
)

// InsertEventSeries uploads a series with its optional path geometry.
func (s *divservice) InsertEventSeries(
	ctx context.Context,
	creds ent.UserCredentials,
	series ent.EventSeries,
	locs []ent.Localization,
) (int, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return s.upload.InsertEventSeries(ctx, c, series, locs)
}

// InsertEvent uploads an event with its localisations and properties.
func (s *divservice) InsertEvent(
	ctx context.Context,
	creds ent.UserCredentials,
	ev ent.Event,
	props []ent.EventProperty,
) (int, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return s.upload.InsertEvent(ctx, c, creds, ev, props)
}

// InsertSpecimen uploads a specimen with its project and collector rows.
func (s *divservice) InsertSpecimen(
	ctx context.Context,
	creds ent.UserCredentials,
	sp ent.Specimen,
) (int, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return s.upload.InsertSpecimen(ctx, c, creds, sp)
}

// InsertUnit uploads an identification unit with its identification,
// geo-analysis and analysis rows.
func (s *divservice) InsertUnit(
	ctx context.Context,
	creds ent.UserCredentials,
	iu ent.IdentificationUnit,
	analyses []ent.UnitAnalysis,
) (int, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return s.upload.InsertUnit(ctx, c, creds, iu, analyses)
}

// InsertMultimedia attaches a multimedia object to its owning entity.
func (s *divservice) InsertMultimedia(
	ctx context.Context,
	creds ent.UserCredentials,
	mmo ent.MultimediaObject,
) error {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return err
	}
	defer c.Close()
	return s.upload.InsertMultimedia(ctx, c, mmo)
}
