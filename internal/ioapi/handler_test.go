package ioapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/internal/ioapi"
	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/diversityworkbench/divservice/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService overrides the operations a test needs; everything else
// panics through the embedded nil interface.
type fakeService struct {
	service.Service

	repositories []ent.Repository
	taxonLists   func(creds ent.UserCredentials) ([]ent.TaxonList, error)
	insertEvent  func(creds ent.UserCredentials, ev ent.Event,
		props []ent.EventProperty) (int, error)
	validLogin bool
}

func (f *fakeService) Repositories() []ent.Repository { return f.repositories }

func (f *fakeService) ValidateLogin(context.Context, ent.UserCredentials) bool {
	return f.validLogin
}

func (f *fakeService) TaxonLists(
	_ context.Context, creds ent.UserCredentials,
) ([]ent.TaxonList, error) {
	return f.taxonLists(creds)
}

func (f *fakeService) InsertEvent(
	_ context.Context, creds ent.UserCredentials,
	ev ent.Event, props []ent.EventProperty,
) (int, error) {
	return f.insertEvent(creds, ev, props)
}

func newServer(svc service.Service) *ioapi.Server {
	cfg := config.APIConfig{
		Addr:         ":0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	return ioapi.NewServer(cfg, svc, "test", "2026-01-01")
}

func TestHealth(t *testing.T) {
	srv := newServer(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestVersionReportsBuild(t *testing.T) {
	srv := newServer(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"version":"test","build":"2026-01-01"}`,
		rec.Body.String())
}

func TestRepositoriesNeedsNoCredentials(t *testing.T) {
	srv := newServer(&fakeService{
		repositories: []ent.Repository{
			{DisplayText: "Diversity Collection", Database: "DiversityCollection"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/repositories", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var repos []ent.Repository
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &repos))
	require.Len(t, repos, 1)
	assert.Equal(t, "Diversity Collection", repos[0].DisplayText)
}

func TestMissingCredentialsAreRejected(t *testing.T) {
	srv := newServer(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/taxon-lists", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestCredentialsReachTheService(t *testing.T) {
	var got ent.UserCredentials
	srv := newServer(&fakeService{
		taxonLists: func(creds ent.UserCredentials) ([]ent.TaxonList, error) {
			got = creds
			return []ent.TaxonList{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/taxon-lists", nil)
	req.SetBasicAuth("meyer", "secret")
	req.Header.Set(ioapi.RepositoryHeader, "Diversity Collection")
	req.Header.Set(ioapi.ProjectIDHeader, "12")
	req.Header.Set(ioapi.AgentNameHeader, "K. Meyer")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "meyer", got.LoginName)
	assert.Equal(t, "secret", got.Password)
	assert.Equal(t, "Diversity Collection", got.Repository)
	assert.Equal(t, 12, got.ProjectID)
	assert.Equal(t, "K. Meyer", got.AgentName)
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		msg    string
		valid  bool
		status int
	}{
		{msg: "accepted login", valid: true, status: http.StatusOK},
		{msg: "rejected login", valid: false, status: http.StatusUnauthorized},
	}

	for _, v := range tests {
		srv := newServer(&fakeService{validLogin: v.valid})

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.SetBasicAuth("meyer", "secret")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, v.status, rec.Code, v.msg)
	}
}

func TestInsertEvent(t *testing.T) {
	srv := newServer(&fakeService{
		insertEvent: func(_ ent.UserCredentials, ev ent.Event,
			props []ent.EventProperty) (int, error) {
			if ev.LocalityDescription != "Alpine meadow" || len(props) != 1 {
				return 0, assert.AnError
			}
			return 42, nil
		},
	})

	body := `{
		"event": {"localityDescription": "Alpine meadow"},
		"properties": [{"propertyId": 3, "displayText": "meadow"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.SetBasicAuth("meyer", "secret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"collectionEventId":42}`, rec.Body.String())
}

func TestInsertEventRejectsMalformedBody(t *testing.T) {
	srv := newServer(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("{"))
	req.SetBasicAuth("meyer", "secret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
