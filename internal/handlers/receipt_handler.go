package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/httpresp"
	"github.com/matchsage/booking-api/internal/middleware"
	ucReceipt "github.com/matchsage/booking-api/internal/usecase/receipt"
)

// ======================================================
// HANDLER
// ======================================================

type ReceiptHandler struct {
	issueUC  *ucReceipt.IssueReceipt
	receipts *ucReceipt.Receipts
}

func NewReceiptHandler(issueUC *ucReceipt.IssueReceipt, receipts *ucReceipt.Receipts) *ReceiptHandler {
	return &ReceiptHandler{issueUC: issueUC, receipts: receipts}
}

// ======================================================
// REQUESTS
// ======================================================

type IssueReceiptRequest struct {
	CustomerID    uint `json:"customer_id" binding:"required"`
	ReservationID uint `json:"reservation_id" binding:"required"`
}

// ======================================================
// ISSUE
// ======================================================

func (h *ReceiptHandler) Create(c *gin.Context) {
	var req IssueReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "customer_id and reservation_id are required.")
		return
	}

	r, err := h.issueUC.Execute(c.Request.Context(), ucReceipt.IssueReceiptInput{
		Actor:         middleware.Actor(c),
		CustomerID:    req.CustomerID,
		ReservationID: req.ReservationID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// ======================================================
// VIEW
// ======================================================

func (h *ReceiptHandler) List(c *gin.Context) {
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	rs, err := h.receipts.List(c.Request.Context(), middleware.Actor(c), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rs)
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid receipt id.")
		return
	}

	r, err := h.receipts.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, r)
}

func (h *ReceiptHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid receipt id.")
		return
	}

	r, body, err := h.receipts.Download(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, r.ReceiptNo))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		c.Error(err)
	}
}
