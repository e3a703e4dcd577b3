// Package admin contiene endpoints operativos protegidos por secret.
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	dto "github.com/dropDatabas3/storefront/internal/httpx/dto/admin"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	svc "github.com/dropDatabas3/storefront/internal/httpx/services/admin"
)

const maxRevalidateBodySize = 16 * 1024 // 16KB

// RevalidateController maneja POST /api/revalidate.
type RevalidateController struct {
	service svc.RevalidateService
}

// NewRevalidateController crea el controller de revalidación.
func NewRevalidateController(service svc.RevalidateService) *RevalidateController {
	return &RevalidateController{service: service}
}

// Revalidate maneja POST /api/revalidate
//
// El secret se acepta por query (?secret=), header (X-Revalidate-Secret) o
// body JSON; el tenant a purgar por query (?tenant=) o body. Sin tenant se
// purga todo el cache de configs.
func (c *RevalidateController) Revalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.RevalidateRequest
	if r.Body != nil && r.ContentLength != 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxRevalidateBodySize)
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.WriteError(w, httperrors.ErrInvalidJSON)
			return
		}
	}

	secret := firstNonEmpty(
		r.URL.Query().Get("secret"),
		r.Header.Get("X-Revalidate-Secret"),
		req.Secret,
	)
	tenantID := firstNonEmpty(r.URL.Query().Get("tenant"), req.TenantID)

	purged, err := c.service.Revalidate(ctx, secret, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrSecretMismatch), errors.Is(err, svc.ErrNotConfigured):
			httperrors.WriteError(w, httperrors.ErrInvalidSecret)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.RevalidateResponse{
		Revalidated: true,
		Tenant:      purged,
		Path:        req.Path,
		Tag:         req.Tag,
		Now:         time.Now().UnixMilli(),
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
