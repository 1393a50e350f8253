package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
)

type ClubHandler struct {
	clubService services.ClubService
}

func NewClubHandler(cs services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: cs}
}

type addClubAdminRequest struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	filter := models.ClubFilter{
		Name:    queryString(r, "name"),
		Sport:   queryString(r, "sport"),
		Country: queryString(r, "country"),
		State:   queryString(r, "state"),
		Region:  queryString(r, "region"),
	}

	clubs, err := h.clubService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get clubs")
		return
	}

	successResponse(w, r, http.StatusOK, "", clubs)
}

func (h *ClubHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	var req addClubAdminRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	admin, err := h.clubService.AddAdmin(r.Context(), clubID, req.UserID, req.Role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to add club admin")
		return
	}

	successResponse(w, r, http.StatusCreated, "Club admin added successfully", admin)
}
