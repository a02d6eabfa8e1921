package ioapi

import (
	"encoding/json"
	"net/http"

	"github.com/diversityworkbench/divservice/pkg/ent"
)

// EventSeriesByQuery handles GET /series?query=.
func (h *Handler) EventSeriesByQuery(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.EventSeriesByQuery(
		r.Context(), CredentialsFrom(r.Context()), r.URL.Query().Get("query"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// EventSeriesByID handles GET /series/{seriesID}.
func (h *Handler) EventSeriesByID(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.EventSeriesByID(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "seriesID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	if series == nil {
		writeJSON(w, http.StatusNotFound,
			map[string]string{"error": "no such series"})
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// LocalizationsForSeries handles GET /series/{seriesID}/localizations.
func (h *Handler) LocalizationsForSeries(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.LocalizationsForSeries(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "seriesID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// EventsByLocality handles GET /events?locality=.
func (h *Handler) EventsByLocality(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.EventsByLocality(
		r.Context(), CredentialsFrom(r.Context()), r.URL.Query().Get("locality"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// PropertiesForEvent handles GET /events/{eventID}/properties.
func (h *Handler) PropertiesForEvent(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.PropertiesForEvent(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "eventID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// SpecimensForEvent handles GET /events/{eventID}/specimens.
func (h *Handler) SpecimensForEvent(w http.ResponseWriter, r *http.Request) {
	specimens, err := h.svc.SpecimensForEvent(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "eventID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, specimens)
}

// UnitsForSpecimen handles GET /specimens/{specimenID}/units.
func (h *Handler) UnitsForSpecimen(w http.ResponseWriter, r *http.Request) {
	units, err := h.svc.UnitsForSpecimen(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "specimenID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

// SubUnits handles GET /units/{unitID}/subunits.
func (h *Handler) SubUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.svc.SubUnits(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "unitID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

// AnalysesForUnit handles GET /units/{unitID}/analyses.
func (h *Handler) AnalysesForUnit(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.AnalysesForUnit(
		r.Context(), CredentialsFrom(r.Context()), intParam(r, "unitID"),
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SeriesUpload is the request body for POST /series.
type SeriesUpload struct {
	Series        ent.EventSeries    `json:"series"`
	Localizations []ent.Localization `json:"localizations,omitempty"`
}

// InsertEventSeries handles POST /series.
func (h *Handler) InsertEventSeries(w http.ResponseWriter, r *http.Request) {
	var req SeriesUpload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	id, err := h.svc.InsertEventSeries(
		r.Context(), CredentialsFrom(r.Context()), req.Series, req.Localizations,
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"seriesId": id})
}

// EventUpload is the request body for POST /events.
type EventUpload struct {
	Event      ent.Event           `json:"event"`
	Properties []ent.EventProperty `json:"properties,omitempty"`
}

// InsertEvent handles POST /events.
func (h *Handler) InsertEvent(w http.ResponseWriter, r *http.Request) {
	var req EventUpload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	id, err := h.svc.InsertEvent(
		r.Context(), CredentialsFrom(r.Context()), req.Event, req.Properties,
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"collectionEventId": id})
}

// InsertSpecimen handles POST /specimens.
func (h *Handler) InsertSpecimen(w http.ResponseWriter, r *http.Request) {
	var sp ent.Specimen
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	id, err := h.svc.InsertSpecimen(r.Context(), CredentialsFrom(r.Context()), sp)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"collectionSpecimenId": id})
}

// UnitUpload is the request body for POST /units.
type UnitUpload struct {
	Unit     ent.IdentificationUnit `json:"unit"`
	Analyses []ent.UnitAnalysis     `json:"analyses,omitempty"`
}

// InsertUnit handles POST /units.
func (h *Handler) InsertUnit(w http.ResponseWriter, r *http.Request) {
	var req UnitUpload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	id, err := h.svc.InsertUnit(
		r.Context(), CredentialsFrom(r.Context()), req.Unit, req.Analyses,
	)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"unitId": id})
}

// InsertMultimedia handles POST /multimedia.
func (h *Handler) InsertMultimedia(w http.ResponseWriter, r *http.Request) {
	var mmo ent.MultimediaObject
	if err := json.NewDecoder(r.Body).Decode(&mmo); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	err := h.svc.InsertMultimedia(r.Context(), CredentialsFrom(r.Context()), mmo)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
}
