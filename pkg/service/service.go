// Package service defines the operation surface exposed to the mobile
// clients: vocabulary and catalog reads, taxon-list aggregation and
// download, and the transactional upload path.
package service

import (
	"context"

	"github.com/diversityworkbench/divservice/pkg/ent"
)

// Service is the full client-facing operation set. Credentials are
// passed with every call; the service keeps no session state.
type Service interface {
	// Vocabulary and per-project reference data.
	StandardVocabulary(ctx context.Context, creds ent.UserCredentials) ([]ent.Term, error)
	Projects(ctx context.Context, creds ent.UserCredentials) ([]ent.Project, error)
	Analyses(ctx context.Context, creds ent.UserCredentials, projectID int) ([]ent.Analysis, error)
	AnalysisResults(ctx context.Context, creds ent.UserCredentials, projectID int) ([]ent.AnalysisResult, error)
	AnalysisTaxonomicGroups(ctx context.Context, creds ent.UserCredentials, projectID int) ([]ent.AnalysisTaxonomicGroup, error)
	Qualifications(ctx context.Context, creds ent.UserCredentials) ([]ent.Qualification, error)
	UserInfo(ctx context.Context, creds ent.UserCredentials) (*ent.UserProfile, error)

	// Taxon lists and names.
	TaxonLists(ctx context.Context, creds ent.UserCredentials) ([]ent.TaxonList, error)
	TaxonNames(ctx context.Context, creds ent.UserCredentials, list ent.TaxonList, page int) ([]ent.TaxonName, error)

	// Scientific-terms properties.
	Properties(ctx context.Context, creds ent.UserCredentials) ([]ent.PropertyList, error)
	PropertyValues(ctx context.Context, creds ent.UserCredentials, propertyID, page int) ([]ent.PropertyValue, error)

	// Download of existing collection data.
	EventSeriesByQuery(ctx context.Context, creds ent.UserCredentials, query string) ([]ent.EventSeries, error)
	EventSeriesByID(ctx context.Context, creds ent.UserCredentials, seriesID int) (*ent.EventSeries, error)
	LocalizationsForSeries(ctx context.Context, creds ent.UserCredentials, seriesID int) ([]ent.Localization, error)
	EventsByLocality(ctx context.Context, creds ent.UserCredentials, locality string) ([]ent.Event, error)
	PropertiesForEvent(ctx context.Context, creds ent.UserCredentials, eventID int) ([]ent.EventProperty, error)
	SpecimensForEvent(ctx context.Context, creds ent.UserCredentials, eventID int) ([]ent.Specimen, error)
	UnitsForSpecimen(ctx context.Context, creds ent.UserCredentials, specimenID int) ([]ent.IdentificationUnit, error)
	SubUnits(ctx context.Context, creds ent.UserCredentials, unitID int) ([]ent.IdentificationUnit, error)
	AnalysesForUnit(ctx context.Context, creds ent.UserCredentials, unitID int) ([]ent.UnitAnalysis, error)

	// Upload. Each insert is one atomic transaction.
	InsertEventSeries(ctx context.Context, creds ent.UserCredentials, series ent.EventSeries, locs []ent.Localization) (int, error)
	InsertEvent(ctx context.Context, creds ent.UserCredentials, ev ent.Event, props []ent.EventProperty) (int, error)
	InsertSpecimen(ctx context.Context, creds ent.UserCredentials, s ent.Specimen) (int, error)
	InsertUnit(ctx context.Context, creds ent.UserCredentials, iu ent.IdentificationUnit, analyses []ent.UnitAnalysis) (int, error)
	InsertMultimedia(ctx context.Context, creds ent.UserCredentials, mmo ent.MultimediaObject) error

	// Utility.
	Repositories() []ent.Repository
	ValidateLogin(ctx context.Context, creds ent.UserCredentials) bool
}
