package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	page, err := h.notificationService.ListForUser(
		r.Context(), userID, queryInt(r, "page", 1), queryInt(r, "pageSize", constants.DefaultPageSize),
	)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get notifications")
		return
	}

	successResponse(w, r, http.StatusOK, "", page)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := getIDFromURL(r, "notificationID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), notificationID); err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to update notification")
		return
	}

	successResponse(w, r, http.StatusOK, "Notification marked as read", nil)
}
