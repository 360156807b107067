package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/coursenet/pkg/response"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]CheckFunc
}

func NewHealthHandler(checks map[string]CheckFunc) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Health GET /healthz reports "ok" or "unavailable" per dependency; any failure yields 503.
func (h *HealthHandler) Health(c *gin.Context) {
	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	result := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		err := h.Checks[name](ctx)
		cancel()
		if err != nil {
			status = http.StatusServiceUnavailable
			result[name] = "unavailable"
			continue
		}
		result[name] = "ok"
	}
	if status != http.StatusOK {
		response.Fail(c, status, "unhealthy", result)
		return
	}
	response.JSON(c, status, result, "healthy", nil)
}
