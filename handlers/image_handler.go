package handlers

import (
	"net/http"

	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/services"
)

type ImageHandler struct {
	imageService services.ImageService
}

func NewImageHandler(is services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: is}
}

type uploadImagesRequest struct {
	Images []services.UploadImageItem `json:"images"`
}

func (h *ImageHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	var req uploadImagesRequest
	if err := readUploadJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	uploaded, err := h.imageService.UploadImages(r.Context(), req.Images)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to upload images")
		return
	}

	successResponse(w, r, http.StatusOK, "", uploaded)
}

func (h *ImageHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	var owner repositories.ImageOwner
	var err error
	if owner.UserID, err = queryIntPtr(r, "user_id"); err != nil {
		invalidParamResponse(w, r, err)
		return
	}
	if owner.TeamID, err = queryIntPtr(r, "team_id"); err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	images, pagination, err := h.imageService.ListGallery(r.Context(), owner, queryInt(r, "page", 1))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to get gallery images")
		return
	}

	successResponse(w, r, http.StatusOK, "", jsonResponse{
		"images":     images,
		"pagination": pagination,
	})
}

func (h *ImageHandler) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	var input services.GalleryUploadInput
	if err := readUploadJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	img, err := h.imageService.UploadGalleryImage(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to upload gallery image")
		return
	}

	successResponse(w, r, http.StatusCreated, "Image uploaded successfully", img)
}

func (h *ImageHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := getIDFromURL(r, "imageID")
	if err != nil {
		invalidParamResponse(w, r, err)
		return
	}

	if err := h.imageService.DeleteGalleryImage(r.Context(), imageID); err != nil {
		mapServiceErrorToHTTP(w, r, err, "Failed to delete image")
		return
	}

	successResponse(w, r, http.StatusOK, "Image deleted successfully", nil)
}
