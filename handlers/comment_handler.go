package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/services"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(cs services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCommentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comment, err := h.commentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to create comment")
		return
	}

	successResponse(w, r, http.StatusCreated, "Comment created successfully", jsonResponse{"comment_id": comment.ID})
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	threads, err := h.commentService.ListThreads(r.Context(), queryString(r, "entity_type"), queryInt(r, "entity_id", 0))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get comments")
		return
	}

	successResponse(w, r, http.StatusOK, "", threads)
}
