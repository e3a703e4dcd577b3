package admin

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dropDatabas3/storefront/internal/metrics"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
)

// RevalidateService invalida el cache de configs de tenant a demanda.
// Es el reemplazo del endpoint de revalidación ISR: después de editar un
// JSON de tenant, un POST acá hace visible el cambio sin esperar el TTL.
type RevalidateService interface {
	Revalidate(ctx context.Context, secret, tenantID string) (string, error)
}

// Deps contains dependencies for the revalidate service.
type Deps struct {
	Loader *fsload.Loader
	Secret string
}

type service struct {
	deps Deps
}

// NewRevalidateService creates a new RevalidateService.
func NewRevalidateService(deps Deps) RevalidateService {
	return &service{deps: deps}
}

// Revalidate errors
var (
	ErrSecretMismatch = fmt.Errorf("revalidation secret mismatch")
	ErrNotConfigured  = fmt.Errorf("revalidation secret not configured")
)

// Revalidate valida el secret en tiempo constante y purga el cache.
// tenantID vacío purga todo; con valor, sólo ese tenant (saneado).
// Devuelve el tenant efectivamente purgado ("" = todos).
func (s *service) Revalidate(ctx context.Context, secret, tenantID string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.revalidate"),
		logger.Op("Revalidate"),
	)

	if s.deps.Secret == "" {
		log.Warn("revalidation requested but no secret configured")
		return "", ErrNotConfigured
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.deps.Secret)) != 1 {
		metrics.RevalidationsTotal.WithLabelValues("unauthorized").Inc()
		log.Warn("revalidation rejected, bad secret")
		return "", ErrSecretMismatch
	}

	if tenantID != "" {
		id := tenant.Sanitize(tenantID)
		s.deps.Loader.Invalidate(id)
		metrics.RevalidationsTotal.WithLabelValues("ok").Inc()
		log.Info("tenant config invalidated", logger.TenantID(id))
		return id, nil
	}

	s.deps.Loader.InvalidateAll()
	metrics.RevalidationsTotal.WithLabelValues("ok").Inc()
	log.Info("all tenant configs invalidated")
	return "", nil
}
