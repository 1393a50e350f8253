package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, user, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Login failed")
		return
	}

	response := jsonResponse{
		"status":  statusSuccess,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, "Login failed", err)
	}
}
