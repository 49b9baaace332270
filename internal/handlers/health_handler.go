package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check pings one dependency.
type Check func(ctx context.Context) error

type HealthHandler struct {
	env      string
	required map[string]Check
	optional map[string]Check
}

// NewHealthHandler builds the liveness and readiness handlers. A failing
// required check makes the service unready; a failing optional one only
// degrades it.
func NewHealthHandler(env string, required, optional map[string]Check) *HealthHandler {
	return &HealthHandler{env: env, required: required, optional: optional}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "env": h.env})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.required)+len(h.optional))
	status := "ok"

	for name, check := range h.required {
		if err := ping(ctx, check); err != nil {
			deps[name] = "down"
			status = "error"
			continue
		}
		deps[name] = "ok"
	}

	for name, check := range h.optional {
		if err := ping(ctx, check); err != nil {
			deps[name] = "down"
			if status == "ok" {
				status = "degraded"
			}
			continue
		}
		deps[name] = "ok"
	}

	code := http.StatusOK
	if status == "error" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":       status,
		"env":          h.env,
		"dependencies": deps,
	})
}

func ping(ctx context.Context, check Check) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return check(ctx)
}
