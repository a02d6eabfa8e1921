// Package ioservice implements the client-facing operation set on top
// of the catalog connections, the taxon-list aggregator and the upload
// coordinator.
//
// Every operation opens the connections it needs from the caller's
// credentials and closes them before returning; nothing is held between
// requests.
package ioservice

import (
	"context"

	"github.com/diversityworkbench/divservice/internal/iodb"
	"github.com/diversityworkbench/divservice/internal/ioupload"
	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/errcode"
	"github.com/diversityworkbench/divservice/pkg/service"
	"github.com/diversityworkbench/divservice/pkg/taxa"
	"github.com/gnames/gn"
)

// Set-returning functions of the Diversity catalogs consumed by the
// service. List and term functions take the login name; project-scoped
// functions take the project id.
const (
	fnTaxonomicGroups    = "DiversityMobile_TaxonomicGroups"
	fnUnitRelationTypes  = "DiversityMobile_UnitRelationTypes"
	fnProjectList        = "DiversityMobile_ProjectList"
	fnAnalysisList       = "DiversityMobile_AnalysisProjectList"
	fnAnalysisResultList = "DiversityMobile_AnalysisResultList"
	fnAnalysisTaxGroups  = "DiversityMobile_AnalysisTaxonomicGroupList"
	fnQualificationList  = "DiversityMobile_IdentificationQualifierList"
	fnUserInfo           = "DiversityMobile_UserInfo"
	fnPropertyLists      = "DiversityMobile_TermListsForUser"
	fnPropertyValues     = "DiversityMobile_TermsForList"
)

type divservice struct {
	cfg       *config.Config
	connector db.Connector
	agg       taxa.Aggregator
	upload    *ioupload.Coordinator
}

// New wires the service from its collaborators.
func New(
	cfg *config.Config,
	connector db.Connector,
	agg taxa.Aggregator,
	upload *ioupload.Coordinator,
) service.Service {
	return &divservice{
		cfg:       cfg,
		connector: connector,
		agg:       agg,
		upload:    upload,
	}
}

// openRepo connects to the caller's configured repository with the
// caller's own login.
func (s *divservice) openRepo(
	ctx context.Context,
	creds ent.UserCredentials,
) (db.Conn, error) {
	repo := s.cfg.RepositoryByName(creds.Repository)
	if repo == nil {
		return nil, iodb.NewUnknownRepositoryError(creds.Repository)
	}
	return s.connector.Open(ctx, db.LoginOf(creds), repo.Server, repo.Catalog)
}

// openTerms connects to the shared scientific-terms catalog with the
// service credentials.
func (s *divservice) openTerms(ctx context.Context) (db.Conn, error) {
	st := s.cfg.ScientificTerms
	if st.Server == "" {
		return nil, &gn.Error{
			Code: errcode.ConfigMissingScientificTermsError,
			Msg:  "No scientific-terms catalog is configured",
		}
	}
	login := db.Login{User: st.User, Password: st.Password}
	return s.connector.Open(ctx, login, st.Server, st.Catalog)
}

// openPublicCatalog connects to one catalog of the public taxon server
// with the service credentials.
func (s *divservice) openPublicCatalog(
	ctx context.Context,
	catalog string,
) (db.Conn, error) {
	pt := s.cfg.PublicTaxa
	if pt.Server == "" {
		return nil, &gn.Error{
			Code: errcode.ConfigMissingPublicTaxaError,
			Msg:  "No public taxon server is configured",
		}
	}
	login := db.Login{User: pt.User, Password: pt.Password}
	return s.connector.Open(ctx, login, pt.Server, catalog)
}

// openRepoCatalog connects to one catalog on the caller's repository
// server with the caller's own login.
func (s *divservice) openRepoCatalog(
	ctx context.Context,
	creds ent.UserCredentials,
	catalog string,
) (db.Conn, error) {
	repo := s.cfg.RepositoryByName(creds.Repository)
	if repo == nil {
		return nil, iodb.NewUnknownRepositoryError(creds.Repository)
	}
	return s.connector.Open(ctx, db.LoginOf(creds), repo.Server, catalog)
}

func queryErr(op string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Cannot read " + op,
		Err:  err,
	}
}

// Repositories lists the configured repositories in a client-safe
// shape, without connection coordinates.
func (s *divservice) Repositories() []ent.Repository {
	repos := make([]ent.Repository, len(s.cfg.Repositories))
	for i, r := range s.cfg.Repositories {
		repos[i] = ent.Repository{DisplayText: r.Name, Database: r.Catalog}
	}
	return repos
}

// ValidateLogin reports whether the credentials open the repository.
func (s *divservice) ValidateLogin(
	ctx context.Context,
	creds ent.UserCredentials,
) bool {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return false
	}
	c.Close()
	return true
}
