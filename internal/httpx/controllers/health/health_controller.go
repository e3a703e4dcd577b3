// Package health contiene los controllers de health check.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dropDatabas3/storefront/internal/cache"
	dto "github.com/dropDatabas3/storefront/internal/httpx/dto/health"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
)

// Controller maneja /healthz y /readyz.
type Controller struct {
	cache  cache.Client
	loader *fsload.Loader
}

// NewController crea el controller de health.
func NewController(c cache.Client, loader *fsload.Loader) *Controller {
	return &Controller{cache: c, loader: loader}
}

// Healthz maneja GET /healthz: liveness, siempre 200 si el proceso atiende.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, http.StatusOK, dto.Response{Status: "ok"})
}

// Readyz maneja GET /readyz: readiness (cache y registry accesibles).
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := http.StatusOK

	if err := c.cache.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["cache"] = "ok"
	}

	// El registry nunca falla duro, pero un registry vacío en runtime
	// es señal de filesystem roto.
	reg := c.loader.Registry(ctx)
	if len(reg.Tenants) == 0 {
		checks["registry"] = "empty"
	} else {
		checks["registry"] = "ok"
	}

	body := dto.Response{Status: "ok", Checks: checks}
	if status != http.StatusOK {
		body.Status = "degraded"
	}
	writeHealth(w, status, body)
}

func writeHealth(w http.ResponseWriter, status int, v dto.Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
