package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nevrodda11/torny-aws-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		details interface{}
	}{
		{"validation", &services.Error{Kind: services.ErrValidation, Message: "Missing required fields"}, http.StatusBadRequest, "Missing required fields", nil},
		{"conflict", &services.Error{Kind: services.ErrConflict, Message: "Team is already entered in this tournament"}, http.StatusBadRequest, "Team is already entered in this tournament", nil},
		{"not found", &services.Error{Kind: services.ErrNotFound, Message: "Tournament not found"}, http.StatusNotFound, "Tournament not found", nil},
		{"unauthorized", &services.Error{Kind: services.ErrUnauthorized, Message: "Invalid credentials"}, http.StatusUnauthorized, "Invalid credentials", nil},
		{"forbidden", &services.Error{Kind: services.ErrForbidden, Message: "Not allowed"}, http.StatusForbidden, "Not allowed", nil},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "Failed to do it", "connection refused"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, tc.err, "Failed to do it")

			assert.Equal(t, tc.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, tc.details, body["details"])
		})
	}
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann","extra":true}`))
	require.NoError(t, readJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "Ann", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.EqualError(t, readJSON(httptest.NewRecorder(), req, &dst), "body must not be empty")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann"}{"name":"Bob"}`))
	assert.EqualError(t, readJSON(httptest.NewRecorder(), req, &dst), "body must only contain a single JSON value")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":5}`))
	assert.EqualError(t, readJSON(httptest.NewRecorder(), req, &dst), `body contains incorrect JSON type for field "name"`)
}

func TestGetIDFromURL(t *testing.T) {
	r := chi.NewRouter()
	var got int
	var gotErr error
	r.Get("/teams/{teamID}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = getIDFromURL(r, "teamID")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams/12", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, 12, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams/abc", nil))
	assert.Error(t, gotErr)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams/0", nil))
	assert.Error(t, gotErr)
}

func TestQueryList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?member_status=approved,%20pending,,", nil)
	assert.Equal(t, []string{"approved", "pending"}, queryList(req, "member_status"))
	assert.Nil(t, queryList(req, "missing"))
}
