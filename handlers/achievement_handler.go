package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(as services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: as}
}

type deleteAchievementRequest struct {
	UserID     int    `json:"user_id"`
	EntityType string `json:"entity_type"`
}

func (h *AchievementHandler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAchievementInput
	if err := readUploadJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	achievement, err := h.achievementService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to create achievement")
		return
	}

	successResponse(w, r, http.StatusCreated, "Achievement created successfully", jsonResponse{
		"achievement_id": achievement.ID,
		"images":         achievement.Images,
	})
}

// DeleteAchievement takes the acting user from the body, or from the query string when the body is empty.
func (h *AchievementHandler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	achievementID, err := getIDFromURL(r, "achievementID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	var req deleteAchievementRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &req); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	} else {
		req.UserID = queryInt(r, "user_id", 0)
		req.EntityType = queryString(r, "entity_type")
	}

	if err := h.achievementService.Delete(r.Context(), achievementID, req.UserID, req.EntityType); err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to delete achievement")
		return
	}

	successResponse(w, r, http.StatusOK, "Achievement deleted successfully", nil)
}

func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	entityID, err := getIDFromURL(r, "entityID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	achievements, pagination, err := h.achievementService.ListByEntity(
		r.Context(), queryString(r, "entity_type"), entityID, queryInt(r, "page", 1),
	)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get achievements")
		return
	}

	successResponse(w, r, http.StatusOK, "", jsonResponse{
		"achievements": achievements,
		"pagination":   pagination,
	})
}
