package ioapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/service"
	"github.com/go-chi/chi/v5"
)

// Handler holds the service behind the HTTP endpoints.
type Handler struct {
	svc     service.Service
	version string
	build   string
}

// NewHandler creates the handler set.
func NewHandler(svc service.Service, version, build string) *Handler {
	return &Handler{svc: svc, version: version, build: build}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// intParam reads a numeric chi URL parameter; a malformed value reads
// as zero and is caught by the queries downstream.
func intParam(r *http.Request, name string) int {
	v, _ := strconv.Atoi(chi.URLParam(r, name))
	return v
}

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version handles GET /version.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
		"build":   h.build,
	})
}

// Repositories handles GET /repositories.
func (h *Handler) Repositories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Repositories())
}

// ValidateLogin handles GET /login.
func (h *Handler) ValidateLogin(w http.ResponseWriter, r *http.Request) {
	creds := CredentialsFrom(r.Context())
	if !h.svc.ValidateLogin(r.Context(), creds) {
		writeJSON(w, http.StatusUnauthorized,
			map[string]string{"error": "login rejected"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"login": creds.LoginName})
}

// UserInfo handles GET /user.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.UserInfo(r.Context(), CredentialsFrom(r.Context()))
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound,
			map[string]string{"error": "no profile for login"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// StandardVocabulary handles GET /vocabulary.
func (h *Handler) StandardVocabulary(w http.ResponseWriter, r *http.Request) {
	terms, err := h.svc.StandardVocabulary(r.Context(), CredentialsFrom(r.Context()))
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, terms)
}

// Qualifications handles GET /qualifications.
func (h *Handler) Qualifications(w http.ResponseWriter, r *http.Request) {
	quals, err := h.svc.Qualifications(r.Context(), CredentialsFrom(r.Context()))
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, quals)
}

// Projects handles GET /projects.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects(r.Context(), CredentialsFrom(r.Context()))
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Analyses handles GET /projects/{projectID}/analyses.
func (h *Handler) Analyses(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Analyses(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "projectID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AnalysisResults handles GET /projects/{projectID}/analysis-results.
func (h *Handler) AnalysisResults(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.AnalysisResults(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "projectID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AnalysisTaxonomicGroups handles GET /projects/{projectID}/analysis-groups.
func (h *Handler) AnalysisTaxonomicGroups(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.AnalysisTaxonomicGroups(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "projectID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TaxonLists handles GET /taxon-lists.
func (h *Handler) TaxonLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.TaxonLists(r.Context(), CredentialsFrom(r.Context()))
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// TaxonNames handles GET /taxon-lists/names. The list is identified by
// the id/catalog/table/public query parameters; legacy clients send
// only the table name.
func (h *Handler) TaxonNames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, _ := strconv.Atoi(q.Get("id"))
	list := ent.TaxonList{
		ID:           id,
		Table:        q.Get("table"),
		Catalog:      q.Get("catalog"),
		IsPublicList: q.Get("public") == "true",
	}

	names, err := h.svc.TaxonNames(
		r.Context(), CredentialsFrom(r.Context()), list, pageParam(r),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// Properties handles GET /properties.
func (h *Handler) Properties(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.Properties(r.Context(), CredentialsFrom(r.Context()))
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// PropertyValues handles GET /properties/{propertyID}/values.
func (h *Handler) PropertyValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.PropertyValues(
		r.Context(), CredentialsFrom(r.Context()),
		intParam(r, "propertyID"), pageParam(r),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}
