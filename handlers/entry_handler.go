package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/services"
)

const enterFailedMessage = "Failed to enter tournament"

var entryCreatedMessages = map[models.EntryCategory]string{
	models.EntryCategoryTeam:       "Team tournament entry submitted successfully",
	models.EntryCategoryTemporary:  "Temporary team entered successfully",
	models.EntryCategoryIndividual: "Individual tournament entry submitted successfully",
}

type EntryHandler struct {
	entryService services.EntryService
}

func NewEntryHandler(es services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: es}
}

type checkEntryRequest struct {
	TournamentID int `json:"tournament_id"`
	UserID       int `json:"user_id"`
}

type entryStatusRequest struct {
	TournamentID  int                  `json:"tournament_id"`
	ReferenceID   string               `json:"reference_id"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEntryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.entryService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, enterFailedMessage)
		return
	}

	successResponse(w, r, http.StatusCreated, entryCreatedMessages[result.Category], result)
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	entries, err := h.entryService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get tournament entries")
		return
	}

	successResponse(w, r, http.StatusOK, "", entries)
}

func (h *EntryHandler) CheckEntry(w http.ResponseWriter, r *http.Request) {
	var req checkEntryRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entered, err := h.entryService.IsEntered(r.Context(), req.TournamentID, req.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to check entry")
		return
	}

	successResponse(w, r, http.StatusOK, "", jsonResponse{"isEntered": entered})
}

func (h *EntryHandler) UpdateEntryStatus(w http.ResponseWriter, r *http.Request) {
	var req entryStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err := h.entryService.UpdatePaymentStatus(r.Context(), req.TournamentID, req.ReferenceID, req.PaymentStatus)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to update entry status")
		return
	}

	successResponse(w, r, http.StatusOK, "Entry payment status updated successfully", jsonResponse{
		"reference_id":   req.ReferenceID,
		"payment_status": req.PaymentStatus,
	})
}
