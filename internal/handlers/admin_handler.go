package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

// AuditReader lists stored audit events.
type AuditReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	users user.Repository
	logs  AuditReader
}

func NewAdminHandler(users user.Repository, logs AuditReader) *AdminHandler {
	return &AdminHandler{users: users, logs: logs}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if stats.Categories == nil {
		stats.Categories = []dto.CategoryCount{}
	}
	if stats.Popular == nil {
		stats.Popular = []dto.ProviderPopularity{}
	}

	httpresp.OK(c, stats)
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			uid := uint(id)
			f.UserID = &uid
		}
	}

	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			f.From = &from
		}
	}

	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			end := to.Add(24 * time.Hour)
			f.To = &end
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
