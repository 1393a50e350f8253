package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEntryService struct {
	services.EntryService
	result *services.EntryResult
	err    error
	input  services.CreateEntryInput
}

func (s *stubEntryService) Create(_ context.Context, input services.CreateEntryInput) (*services.EntryResult, error) {
	s.input = input
	return s.result, s.err
}

func (s *stubEntryService) IsEntered(_ context.Context, tournamentID, userID int) (bool, error) {
	return tournamentID == 1 && userID == 9, s.err
}

func TestCreateEntry_MessagePerCategory(t *testing.T) {
	tempID := 70
	cases := []struct {
		result  services.EntryResult
		message string
	}{
		{services.EntryResult{Category: models.EntryCategoryTeam, ReferenceID: "AB12CD34"}, "Team tournament entry submitted successfully"},
		{services.EntryResult{Category: models.EntryCategoryTemporary, ReferenceID: "AB12CD34", TempTeamID: &tempID}, "Temporary team entered successfully"},
		{services.EntryResult{Category: models.EntryCategoryIndividual, ReferenceID: "AB12CD34"}, "Individual tournament entry submitted successfully"},
	}

	for _, tc := range cases {
		t.Run(string(tc.result.Category), func(t *testing.T) {
			result := tc.result
			svc := &stubEntryService{result: &result}
			h := NewEntryHandler(svc)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"tournament_id":1,"team_id":5}`))
			h.CreateEntry(rec, req)

			assert.Equal(t, http.StatusCreated, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "success", body["status"])
			assert.Equal(t, tc.message, body["message"])
			data := body["data"].(map[string]interface{})
			assert.Equal(t, "AB12CD34", data["reference_id"])
			assert.NotContains(t, data, "Category")

			assert.Equal(t, 1, svc.input.TournamentID)
			require.NotNil(t, svc.input.TeamID)
			assert.Equal(t, 5, *svc.input.TeamID)
		})
	}
}

func TestCreateEntry_Failures(t *testing.T) {
	h := NewEntryHandler(&stubEntryService{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	h.CreateEntry(rec, httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"tournament_id":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rec)["message"])

	rec = httptest.NewRecorder()
	h.CreateEntry(rec, httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"tournament_id":1,"team_id":5}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Failed to enter tournament", body["message"])
	assert.Equal(t, "db down", body["details"])
}

func TestCheckEntry(t *testing.T) {
	h := NewEntryHandler(&stubEntryService{})

	rec := httptest.NewRecorder()
	h.CheckEntry(rec, httptest.NewRequest(http.MethodPost, "/entries/check", strings.NewReader(`{"tournament_id":1,"user_id":9}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, data["isEntered"])
}
