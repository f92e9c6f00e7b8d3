package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"pixdrop/internal/delivery/http/helpers"
	"pixdrop/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Name string `json:"name"`
	// CreateFolder defaults to true when omitted.
	CreateFolder *bool `json:"createFolder"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /api/events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteEventResponse is the response body for DELETE /api/events/{id}.
type DeleteEventResponse struct {
	Success        bool   `json:"success"`
	DeletedEventID string `json:"deletedEventId"`
}

type EventController struct {
	Logger   *slog.Logger
	Registry domain.EventRegistry
}

func NewEventController(logger *slog.Logger, registry domain.EventRegistry) *EventController {
	return &EventController{
		Logger:   logger,
		Registry: registry,
	}
}

// List godoc
// @Summary List all events
// @Description Returns every registered event. A store outage degrades to an empty list rather than an error.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Router /api/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Registry.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Create godoc
// @Summary Create a new event
// @Description Creates an event with a unique name. Unless createFolder is false, a provider folder is provisioned for it; on provisioning failure the event still lands on the default folder.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing or duplicate name)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	wantFolder := true
	if req.CreateFolder != nil {
		wantFolder = *req.CreateFolder
	}
	event, err := c.Registry.Create(r.Context(), req.Name, wantFolder)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event with this name already exists")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "name is required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Get godoc
// @Summary Look up an event by identifier
// @Description Resolves an event by exact name (case-insensitive), stored slug, or name-derived slug.
// @Tags events
// @Produce json
// @Param identifier path string true "Event name or slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{identifier} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")
	if identifier == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event name is required")
		return
	}
	event, err := c.Registry.FindByIdentifier(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Removes the event from the registry permanently. Files already uploaded to its folder are untouched.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data confirms the deletion"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event ID is required")
		return
	}
	if err := c.Registry.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Success: true, DeletedEventID: id})
}
