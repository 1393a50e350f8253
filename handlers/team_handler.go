package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

type updateMemberStatusRequest struct {
	Status models.MemberStatus `json:"status"`
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readUploadJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to create team")
		return
	}

	successResponse(w, r, http.StatusCreated, "Team created successfully", team)
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	filter := models.TeamFilter{
		Search:  queryString(r, "search"),
		SportID: queryInt(r, "sport_id", 0),
		Type:    queryString(r, "type"),
		Gender:  queryString(r, "gender"),
		Country: queryString(r, "country"),
		State:   queryString(r, "state"),
		Region:  queryString(r, "region"),
	}

	teams, err := h.teamService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get teams")
		return
	}

	successResponse(w, r, http.StatusOK, "", teams)
}

func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetDetails(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get team details")
		return
	}

	successResponse(w, r, http.StatusOK, "", team)
}

func (h *TeamHandler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	filter := models.MyTeamsFilter{
		UserID:     userID,
		TeamName:   queryString(r, "team_name"),
		TeamStatus: queryString(r, "team_status"),
		TeamType:   queryString(r, "team_type"),
		TeamGender: queryString(r, "team_gender"),
		SportID:    queryInt(r, "sport_id", 0),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 0),
	}
	for _, st := range queryList(r, "member_status") {
		filter.MemberStatuses = append(filter.MemberStatuses, models.MemberStatus(st))
	}

	teams, pagination, err := h.teamService.ListMine(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get user teams")
		return
	}

	successResponse(w, r, http.StatusOK, "", jsonResponse{
		"teams":      teams,
		"pagination": pagination,
	})
}

func (h *TeamHandler) UpdateMemberStatus(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	var req updateMemberStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.UpdateMemberStatus(r.Context(), teamID, userID, req.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to update player status")
		return
	}

	successResponse(w, r, http.StatusOK, "Player status updated to "+string(req.Status), nil)
}
