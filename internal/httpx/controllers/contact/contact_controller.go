// Package contact contiene el controller del formulario de contacto.
package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/storefront/internal/httpx/dto/contact"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	"github.com/dropDatabas3/storefront/internal/httpx/middlewares"
	svc "github.com/dropDatabas3/storefront/internal/httpx/services/contact"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
)

const maxContactBodySize = 32 * 1024 // 32KB

// Controller maneja POST /api/contact.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de contacto.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Send maneja POST /api/contact
func (c *Controller) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ContactController.Send"))

	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodySize)
	defer r.Body.Close()

	var req dto.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	cfg := middlewares.MustGetTenant(ctx).Config

	if err := c.service.Send(ctx, cfg, req.Name, req.Email, req.Message); err != nil {
		log.Debug("contact send failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrInvalidEmail), errors.Is(err, svc.ErrEmptyMessage):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email y message son obligatorios"))
		case errors.Is(err, svc.ErrNoContactInbox):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.Response{Sent: true})
}
