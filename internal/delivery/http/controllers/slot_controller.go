package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// CreateSlotRequest is the request body for POST /positions/{positionID}/slots.
type CreateSlotRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  int       `json:"capacity"`
}

// UpdateSlotRequest is the request body for PATCH /slots/{slotID}.
type UpdateSlotRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Capacity  *int       `json:"capacity"`
}

func (u UpdateSlotRequest) patch() domain.SlotPatch {
	return domain.SlotPatch{StartTime: u.StartTime, EndTime: u.EndTime, Capacity: u.Capacity}
}

// Validate implements Validator.
func (u UpdateSlotRequest) Validate() []string {
	if u.patch().IsEmpty() {
		return []string{"at least one field is required"}
	}
	return nil
}

// SlotListSuccessResponse is the success envelope for slot list responses.
type SlotListSuccessResponse struct {
	Data  []*domain.SlotWithVolunteers `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

type SlotController struct {
	Logger  *slog.Logger
	Service domain.SlotService
}

func NewSlotController(logger *slog.Logger, svc domain.SlotService) *SlotController {
	return &SlotController{Logger: logger, Service: svc}
}

// ListSlots godoc
// @Summary List slots of a position
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID (UUID)"
// @Success 200 {object} controllers.SlotListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID}/slots [get]
func (c *SlotController) ListSlots(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	slots, err := c.Service.ListSlots(r.Context(), positionID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// CreateSlot godoc
// @Summary Create a slot
// @Description Organizer only. The slot must lie within the position's time range and hold at least one volunteer.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID (UUID)"
// @Param slot body CreateSlotRequest true "Slot data"
// @Success 201 {object} controllers.SlotListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID}/slots [post]
func (c *SlotController) CreateSlot(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	var req CreateSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	slots, err := c.Service.CreateSlot(r.Context(), caller, positionID, domain.SlotInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  req.Capacity,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slots)
}

// UpdateSlot godoc
// @Summary Update a slot
// @Description Organizer only. Capacity may not drop below the number of signed-up volunteers.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Param slot body UpdateSlotRequest true "Fields to change"
// @Success 200 {object} controllers.SlotListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /slots/{slotID} [patch]
func (c *SlotController) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := helpers.PathID(w, r, "slotID")
	if !ok {
		return
	}
	var req UpdateSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	slots, err := c.Service.UpdateSlot(r.Context(), caller, slotID, req.patch())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// DeleteSlot godoc
// @Summary Delete a slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} controllers.SlotListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /slots/{slotID} [delete]
func (c *SlotController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := helpers.PathID(w, r, "slotID")
	if !ok {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	slots, err := c.Service.DeleteSlot(r.Context(), caller, slotID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}
