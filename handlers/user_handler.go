package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := h.userService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to register user")
		return
	}

	successResponse(w, r, http.StatusCreated, "User registered successfully", jsonResponse{"user_id": userID})
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	user, err := h.userService.GetDetails(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get user details")
		return
	}

	successResponse(w, r, http.StatusOK, "", user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	var input services.UpdateUserInput
	if err := readUploadJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.Update(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to update user")
		return
	}

	successResponse(w, r, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	filter := models.PlayerFilter{
		NameSearch: queryString(r, "nameSearch"),
		Sport:      queryString(r, "sport"),
		Country:    queryString(r, "country"),
		State:      queryString(r, "state"),
		Region:     queryString(r, "region"),
	}

	players, err := h.userService.ListPlayers(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get players")
		return
	}

	successResponse(w, r, http.StatusOK, "", players)
}
