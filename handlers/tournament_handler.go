package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readUploadJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	t, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to create tournament")
		return
	}

	successResponse(w, r, http.StatusCreated, "Tournament created successfully", jsonResponse{
		"tournament_id":   t.ID,
		"hero_image":      t.HeroImage,
		"thumbnail_image": t.ThumbnailImage,
		"image_id":        t.ImageID,
	})
}

func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	filter := models.TournamentFilter{
		Search:  queryString(r, "search"),
		Sport:   queryString(r, "sport"),
		Type:    queryString(r, "type"),
		Gender:  queryString(r, "gender"),
		Country: queryString(r, "country"),
		State:   queryString(r, "state"),
		Region:  queryString(r, "region"),
	}

	var err error
	if filter.StartDate, err = queryDate(r, "startDate"); err != nil {
		invalidParamResponse(w, r, err)
		return
	}
	if filter.EndDate, err = queryDate(r, "endDate"); err != nil {
		invalidParamResponse(w, r, err)
		return
	}
	if filter.MinPrizeMoney, err = queryFloat(r, "minPrizeMoney"); err != nil {
		invalidParamResponse(w, r, err)
		return
	}
	if filter.MaxPrizeMoney, err = queryFloat(r, "maxPrizeMoney"); err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get tournaments")
		return
	}

	successResponse(w, r, http.StatusOK, "", tournaments)
}

func (h *TournamentHandler) GetTournamentByID(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	t, err := h.tournamentService.GetDetails(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get tournament details")
		return
	}

	successResponse(w, r, http.StatusOK, "", t)
}

func (h *TournamentHandler) ListOrganiserTournaments(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.ListByOrganiser(r.Context(), services.OrganiserTournamentsQuery{
		OrganiserID: userID,
		Gender:      queryString(r, "gender"),
		Type:        queryString(r, "type"),
		Period:      queryString(r, "period"),
		Search:      queryString(r, "search"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get organiser tournaments")
		return
	}

	successResponse(w, r, http.StatusOK, "", tournaments)
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	v := queryString(r, key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected YYYY-MM-DD, got %q", key, v)
	}
	return &t, nil
}
