package middlewares

import (
	"context"

	"github.com/dropDatabas3/storefront/internal/tenant"
)

// Claves de contexto propias del paquete. Tipos distintos para evitar
// colisiones con otros paquetes que usen strings.
type requestIDKey struct{}
type tenantKey struct{}
type authPhoneKey struct{}

// =================================================================================
// REQUEST ID
// =================================================================================

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID devuelve el request ID inyectado por WithRequestID, o "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// =================================================================================
// TENANT RESUELTO
// =================================================================================

func setTenant(ctx context.Context, t *tenant.Resolved) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// GetTenant devuelve el tenant resuelto por WithTenant, o nil si el request
// no pasó por ese middleware.
func GetTenant(ctx context.Context) *tenant.Resolved {
	if v, ok := ctx.Value(tenantKey{}).(*tenant.Resolved); ok {
		return v
	}
	return nil
}

// MustGetTenant devuelve el tenant resuelto o panics.
// Solo para handlers montados detrás de WithTenant.
func MustGetTenant(ctx context.Context) *tenant.Resolved {
	t := GetTenant(ctx)
	if t == nil {
		panic("middlewares: tenant not in context (handler mounted without WithTenant?)")
	}
	return t
}

// =================================================================================
// TELÉFONO AUTENTICADO (onboarding)
// =================================================================================

func setAuthPhone(ctx context.Context, phone string) context.Context {
	return context.WithValue(ctx, authPhoneKey{}, phone)
}

// GetAuthPhone devuelve el teléfono del JWT validado por WithAuth, o "".
func GetAuthPhone(ctx context.Context) string {
	if v, ok := ctx.Value(authPhoneKey{}).(string); ok {
		return v
	}
	return ""
}
