package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"pixdrop/internal/delivery/http/helpers"
	"pixdrop/internal/domain"
)

type UploadController struct {
	Logger   *slog.Logger
	Uploader domain.Uploader
}

func NewUploadController(logger *slog.Logger, uploader domain.Uploader) *UploadController {
	return &UploadController{
		Logger:   logger,
		Uploader: uploader,
	}
}

// Upload godoc
// @Summary Upload a photo
// @Description Accepts one multipart file plus naming fields (eventName, weddingCode, uploaderName) and optional folder overrides (folderId, eventFolderId). The file is staged locally, renamed, and pushed to the storage provider; the staged copy is removed on every outcome.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo to upload"
// @Param eventName formData string false "Event name used for folder lookup and file naming"
// @Param weddingCode formData string false "Wedding code, takes precedence over eventName in the filename"
// @Param uploaderName formData string false "Uploader name appended to the filename"
// @Param folderId formData string false "Explicit destination folder, overrides everything else"
// @Param eventFolderId formData string false "Destination folder of a known event"
// @Success 200 {object} helpers.APIResponse "data contains the stored file metadata"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no file or no destination folder)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (provider failure)"
// @Router /api/upload [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "multipart form required")
		return
	}

	item, err := c.Uploader.Stage(reader)
	if err != nil {
		if errors.Is(err, domain.ErrNoFileReceived) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no file received")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	defer item.Discard()

	file, err := c.Uploader.Upload(r.Context(), item)
	if err != nil {
		if errors.Is(err, domain.ErrNoFolderConfigured) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no destination folder configured")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, file)
}
