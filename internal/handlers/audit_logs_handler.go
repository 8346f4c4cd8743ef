package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	if !authz.Authorize(actor, authz.ViewAuditLogs, authz.Resource{}) {
		httperr.FromError(c, httperr.ForbiddenErr("not_allowed_to_view_audit_logs"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if from := c.Query("from"); from != "" {
		if d, err := parseDateOnly(from); err == nil {
			f.From = d
		}
	}
	if to := c.Query("to"); to != "" {
		if d, err := parseDateOnly(to); err == nil {
			f.To = d.Add(24 * time.Hour)
		}
	}

	// --------------------------------------------------
	// Owners only see rows of their own services
	// --------------------------------------------------

	if !actor.IsAdmin() {
		ids, err := h.logs.OwnedServiceIDs(c.Request.Context(), actor.ID)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		f.ServiceIDs = ids
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	c.JSON(200, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
