package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// CheckInByEmailRequest is the request body for POST /checkin/{positionID}.
type CheckInByEmailRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (c CheckInByEmailRequest) Validate() []string {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return []string{"Email is required"}
	}
	if !emailRegex.MatchString(email) {
		return []string{"email is not valid"}
	}
	return nil
}

// CheckInPageSuccessResponse is the success envelope for GET /checkin/{positionID}.
type CheckInPageSuccessResponse struct {
	Data  *domain.CheckInPage `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CheckInReceiptSuccessResponse is the success envelope for POST /checkin/{positionID}.
type CheckInReceiptSuccessResponse struct {
	Data  *domain.CheckInReceipt `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{Logger: logger, Service: svc}
}

// SignUp godoc
// @Summary Sign up for a slot
// @Description Registers the authenticated user. Returns the refreshed slots of the position.
// @Tags volunteers
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 201 {object} controllers.SlotListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slot full or already signed up)"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /slots/{slotID}/signup [post]
func (c *CheckInController) SignUp(w http.ResponseWriter, r *http.Request) {
	slotID, ok := helpers.PathID(w, r, "slotID")
	if !ok {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	slots, err := c.Service.SignUp(r.Context(), caller, slotID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slots)
}

// CheckIn godoc
// @Summary Check in to a slot
// @Description Checks in the authenticated user, who must be signed up for the slot. Check-in is permanent.
// @Tags volunteers
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} controllers.SlotListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_registered"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already checked in)"
// @Router /slots/{slotID}/checkin [post]
func (c *CheckInController) CheckIn(w http.ResponseWriter, r *http.Request) {
	slotID, ok := helpers.PathID(w, r, "slotID")
	if !ok {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	slots, err := c.Service.CheckIn(r.Context(), caller, slotID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// GetCheckInPage godoc
// @Summary Public check-in page
// @Description Resolves a position's check-in link. Shows counts only, never volunteer emails.
// @Tags check-in
// @Produce json
// @Param positionID path string true "Position ID (UUID)"
// @Success 200 {object} controllers.CheckInPageSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /checkin/{positionID} [get]
func (c *CheckInController) GetCheckInPage(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	page, err := c.Service.GetCheckInPage(r.Context(), positionID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// CheckInByEmail godoc
// @Summary Check in by email
// @Description Public. Checks in the volunteer signed up under the email on any slot of the position.
// @Tags check-in
// @Accept json
// @Produce json
// @Param positionID path string true "Position ID (UUID)"
// @Param body body CheckInByEmailRequest true "Volunteer email"
// @Success 200 {object} controllers.CheckInReceiptSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_registered"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already checked in)"
// @Router /checkin/{positionID} [post]
func (c *CheckInController) CheckInByEmail(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	var req CheckInByEmailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	receipt, err := c.Service.CheckInByEmail(r.Context(), positionID, req.Email)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, receipt)
}

// CheckInQRCode godoc
// @Summary Check-in QR code
// @Description Organizer only. A PNG QR code encoding the position's public check-in link, which is also sent in the X-Check-In-URL header.
// @Tags check-in
// @Produce png
// @Security BearerAuth
// @Param positionID path string true "Position ID (UUID)"
// @Success 200 {file} binary
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID}/qrcode [get]
func (c *CheckInController) CheckInQRCode(w http.ResponseWriter, r *http.Request) {
	positionID, ok := helpers.PathID(w, r, "positionID")
	if !ok {
		return
	}
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	code, err := c.Service.CheckInCode(r.Context(), caller, positionID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(code.PNG)))
	w.Header().Set("X-Check-In-URL", code.URL)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(code.PNG)
}
