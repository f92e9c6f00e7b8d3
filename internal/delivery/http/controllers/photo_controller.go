package controllers

import (
	"log/slog"
	"net/http"

	"pixdrop/internal/delivery/http/helpers"
	"pixdrop/internal/domain"
)

type PhotoController struct {
	Logger  *slog.Logger
	Storage domain.FileStorage
}

func NewPhotoController(logger *slog.Logger, storage domain.FileStorage) *PhotoController {
	return &PhotoController{
		Logger:  logger,
		Storage: storage,
	}
}

// List godoc
// @Summary List photos in a folder
// @Description Returns the images of a provider folder, newest first.
// @Tags photos
// @Produce json
// @Param folderId query string true "Provider folder ID"
// @Success 200 {object} helpers.APIResponse "data contains the photo list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing folderId)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/photos [get]
func (c *PhotoController) List(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "folderId is required")
		return
	}
	photos, err := c.Storage.ListImages(r.Context(), folderID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, photos)
}
