package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// CreatePositionRequest is the request body for POST /events/{eventID}/positions.
// Time range and volunteer count rules are enforced by the service.
type CreatePositionRequest struct {
	Name             string    `json:"name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	VolunteersNeeded int       `json:"volunteers_needed"`
}

// UpdatePositionRequest is the request body for PATCH /positions/{positionID}.
type UpdatePositionRequest struct {
	Name             *string    `json:"name"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	VolunteersNeeded *int       `json:"volunteers_needed"`
}

func (u UpdatePositionRequest) patch() domain.PositionPatch {
	return domain.PositionPatch{Name: u.Name, StartTime: u.StartTime, EndTime: u.EndTime, VolunteersNeeded: u.VolunteersNeeded}
}

// Validate implements Validator.
func (u UpdatePositionRequest) Validate() []string {
	if u.patch().IsEmpty() {
		return []string{"at least one field is required"}
	}
	return nil
}

// PositionListSuccessResponse is the success envelope for position list responses.
type PositionListSuccessResponse struct {
	Data  []*domain.PositionWithVolunteers `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

type PositionController struct {
	Logger  *slog.Logger
	Service domain.PositionService
}

func NewPositionController(logger *slog.Logger, svc domain.PositionService) *PositionController {
	return &PositionController{Logger: logger, Service: svc}
}

// ListPositions godoc
// @Summary List positions of an event
// @Description Each position carries the distinct volunteers signed up on any of its slots.
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.PositionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/positions [get]
func (c *PositionController) ListPositions(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	positions, err := c.Service.ListPositions(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, positions)
}

// CreatePosition godoc
// @Summary Create a position
// @Description Organizer only. Returns the refreshed positions of the event.
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param position body CreatePositionRequest true "Position data"
// @Success 201 {object} controllers.PositionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/positions [post]
func (c *PositionController) CreatePosition(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreatePositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	positions, err := c.Service.CreatePosition(r.Context(), caller, eventID, domain.PositionInput{
		Name:             req.Name,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		VolunteersNeeded: req.VolunteersNeeded,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, positions)
}

// UpdatePosition godoc
// @Summary Update a position
// @Description Organizer only. The merged position is validated before it is stored.
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID (UUID)"
// @Param position body UpdatePositionRequest true "Fields to change"
// @Success 200 {object} controllers.PositionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID} [patch]
func (c *PositionController) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	var req UpdatePositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	positions, err := c.Service.UpdatePosition(r.Context(), caller, positionID, req.patch())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, positions)
}

// DeletePosition godoc
// @Summary Delete a position
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID (UUID)"
// @Success 200 {object} controllers.PositionListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID} [delete]
func (c *PositionController) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	positions, err := c.Service.DeletePosition(r.Context(), caller, positionID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, positions)
}
