package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/services"
)

type VideoHandler struct {
	videoService services.VideoService
}

func NewVideoHandler(vs services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: vs}
}

func (h *VideoHandler) UploadChunk(w http.ResponseWriter, r *http.Request) {
	var input services.VideoChunkInput
	if err := readUploadJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.videoService.UploadChunk(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to upload video")
		return
	}

	switch {
	case result.Video != nil:
		successResponse(w, r, http.StatusCreated, "Video uploaded successfully", jsonResponse{
			"video_id":      result.Video.ID,
			"cloudflare_id": result.Video.CloudflareVideoID,
			"playback_url":  result.Video.PlaybackURL,
		})
	case result.UploadURL != "":
		successResponse(w, r, http.StatusOK, "Upload initialized", jsonResponse{"upload_url": result.UploadURL})
	default:
		successResponse(w, r, http.StatusOK, "Chunk uploaded successfully", nil)
	}
}
