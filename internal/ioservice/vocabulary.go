package ioservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diversityworkbench/divservice/pkg/analysis"
	"github.com/diversityworkbench/divservice/pkg/db"
	"github.com/diversityworkbench/divservice/pkg/ent"
)

// StandardVocabulary returns taxonomic groups and unit relation types of
// the caller's repository as one tagged list.
func (s *divservice) StandardVocabulary(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.Term, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	groups, err := db.Select[ent.Term](
		ctx, c, fmt.Sprintf(`SELECT * FROM "%s"()`, fnTaxonomicGroups),
	)
	if err != nil {
		return nil, queryErr("taxonomic groups", err)
	}
	relTypes, err := db.Select[ent.Term](
		ctx, c, fmt.Sprintf(`SELECT * FROM "%s"()`, fnUnitRelationTypes),
	)
	if err != nil {
		return nil, queryErr("unit relation types", err)
	}

	terms := make([]ent.Term, 0, len(groups)+len(relTypes))
	for _, t := range groups {
		t.Source = ent.TermSourceTaxonomicGroups
		terms = append(terms, t)
	}
	for _, t := range relTypes {
		t.Source = ent.TermSourceRelationshipTypes
		terms = append(terms, t)
	}
	return terms, nil
}

// Projects lists the projects the caller participates in. A failure to
// reach the repository yields an empty list, not an error, so a client
// with a stale repository selection can still finish its sync.
func (s *divservice) Projects(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.Project, error) {
	if creds.Repository == "" {
		return []ent.Project{}, nil
	}
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		slog.Warn("Cannot open repository for project list",
			"repository", creds.Repository, "error", err)
		return []ent.Project{}, nil
	}
	defer c.Close()

	projects, err := db.Select[ent.Project](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, fnProjectList),
		creds.LoginName,
	)
	if err != nil {
		slog.Warn("Cannot read project list",
			"repository", creds.Repository, "error", err)
		return []ent.Project{}, nil
	}

	for i := range projects {
		if projects[i].DisplayText == "" {
			projects[i].DisplayText = "No Description"
		}
	}
	return projects, nil
}

// Analyses lists the analysis types available in a project.
func (s *divservice) Analyses(
	ctx context.Context,
	creds ent.UserCredentials,
	projectID int,
) ([]ent.Analysis, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return s.analyses(ctx, c, projectID)
}

func (s *divservice) analyses(
	ctx context.Context,
	c db.Conn,
	projectID int,
) ([]ent.Analysis, error) {
	res, err := db.Select[ent.Analysis](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, fnAnalysisList),
		projectID,
	)
	if err != nil {
		return nil, queryErr("analyses", err)
	}
	return res, nil
}

// AnalysisResults lists the predefined result values of a project's
// analyses.
func (s *divservice) AnalysisResults(
	ctx context.Context,
	creds ent.UserCredentials,
	projectID int,
) ([]ent.AnalysisResult, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	res, err := db.Select[ent.AnalysisResult](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, fnAnalysisResultList),
		projectID,
	)
	if err != nil {
		return nil, queryErr("analysis results", err)
	}
	return res, nil
}

// AnalysisTaxonomicGroups flattens the analysis hierarchy of a project
// into per-analysis group assignments. Only root analyses carry group
// assignments in the catalog; descendants inherit them here.
func (s *divservice) AnalysisTaxonomicGroups(
	ctx context.Context,
	creds ent.UserCredentials,
	projectID int,
) ([]ent.AnalysisTaxonomicGroup, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	roots, err := db.Select[ent.AnalysisTaxonomicGroup](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, fnAnalysisTaxGroups),
		projectID,
	)
	if err != nil {
		return nil, queryErr("analysis taxonomic groups", err)
	}

	analyses, err := s.analyses(ctx, c, projectID)
	if err != nil {
		return nil, err
	}
	return analysis.Flatten(roots, analysis.ByParent(analyses)), nil
}

// Qualifications lists the identification qualifiers of the caller's
// repository. On failure a single neutral qualifier is returned so the
// client picker is never empty.
func (s *divservice) Qualifications(
	ctx context.Context,
	creds ent.UserCredentials,
) ([]ent.Qualification, error) {
	fallback := []ent.Qualification{{DisplayText: "no qualifier"}}

	c, err := s.openRepo(ctx, creds)
	if err != nil {
		slog.Warn("Cannot open repository for qualifications",
			"repository", creds.Repository, "error", err)
		return fallback, nil
	}
	defer c.Close()

	quals, err := db.Select[ent.Qualification](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"()`, fnQualificationList),
	)
	if err != nil {
		slog.Warn("Cannot read qualifications",
			"repository", creds.Repository, "error", err)
		return fallback, nil
	}
	if len(quals) == 0 {
		return fallback, nil
	}
	return quals, nil
}

// UserInfo returns the agent profile stored for the caller's login, or
// nil when the repository has none.
func (s *divservice) UserInfo(
	ctx context.Context,
	creds ent.UserCredentials,
) (*ent.UserProfile, error) {
	c, err := s.openRepo(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	profile, err := db.One[ent.UserProfile](
		ctx, c,
		fmt.Sprintf(`SELECT * FROM "%s"($1)`, fnUserInfo),
		creds.LoginName,
	)
	if err != nil {
		slog.Warn("Cannot read user profile",
			"login", creds.LoginName, "error", err)
		return nil, nil
	}
	return profile, nil
}
