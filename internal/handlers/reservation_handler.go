package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/httpresp"
	"github.com/matchsage/booking-api/internal/middleware"
	ucReservation "github.com/matchsage/booking-api/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC *ucReservation.CreateReservation
	cancelUC *ucReservation.CancelReservation
	viewUC   *ucReservation.ViewReservation
	availUC  *ucReservation.GetAvailableEmployees
	listUC   *ucReservation.ListReservations
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	cancelUC *ucReservation.CancelReservation,
	viewUC *ucReservation.ViewReservation,
	availUC *ucReservation.GetAvailableEmployees,
	listUC *ucReservation.ListReservations,
) *ReservationHandler {
	return &ReservationHandler{
		createUC: createUC,
		cancelUC: cancelUC,
		viewUC:   viewUC,
		availUC:  availUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	DurationMin int    `json:"duration_min"`
}

type AvailabilityRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	DurationMin int    `json:"duration_min"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "service_id, employee_id and date are required.")
		return
	}

	start, err := parseSlot(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}
	d, err := durationFromMinutes(req.DurationMin)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	r, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		Actor:      middleware.Actor(c),
		ServiceID:  req.ServiceID,
		EmployeeID: req.EmployeeID,
		Start:      start,
		Duration:   d,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// ======================================================
// VIEW / CANCEL
// ======================================================

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	r, err := h.viewUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, r)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	r, err := h.cancelUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, r)
}

// ======================================================
// HISTORY
// ======================================================

func (h *ReservationHandler) List(c *gin.Context) {
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	rs, err := h.listUC.ByCustomer(c.Request.Context(), middleware.Actor(c), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rs)
}

func (h *ReservationHandler) ListByService(c *gin.Context) {
	serviceID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	rs, err := h.listUC.ByService(c.Request.Context(), middleware.Actor(c), serviceID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rs)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *ReservationHandler) AvailableEmployees(c *gin.Context) {
	serviceID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "date is required.")
		return
	}

	start, err := parseSlot(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}
	d, err := durationFromMinutes(req.DurationMin)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ids, err := h.availUC.Execute(c.Request.Context(), ucReservation.AvailabilityInput{
		ServiceID: serviceID,
		Start:     start,
		Duration:  d,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ids)
}
