// Package onboarding contiene los controllers del flujo de onboarding.
package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/storefront/internal/httpx/dto/onboarding"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	"github.com/dropDatabas3/storefront/internal/httpx/middlewares"
	svc "github.com/dropDatabas3/storefront/internal/httpx/services/onboarding"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/onboarding"
)

const (
	maxOnboardingBodySize = 64 * 1024 // 64KB
	contentTypeJSON       = "application/json; charset=utf-8"
)

// OTPController maneja la emisión y verificación de códigos.
type OTPController struct {
	service svc.Service
}

// NewOTPController crea el controller de OTP.
func NewOTPController(service svc.Service) *OTPController {
	return &OTPController{service: service}
}

// Request maneja POST /api/onboarding/otp/request
func (c *OTPController) Request(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("OTPController.Request"))

	var req dto.RequestOTPRequest
	if !decode(w, r, &req) {
		return
	}

	cfg := middlewares.MustGetTenant(ctx).Config

	if err := c.service.RequestOTP(ctx, cfg, req.Phone); err != nil {
		log.Debug("otp request failed", logger.Err(err))
		writeOnboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RequestOTPResponse{
		Sent: true,
		Step: string(onboarding.StepOTP),
	})
}

// Verify maneja POST /api/onboarding/otp/verify
func (c *OTPController) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("OTPController.Verify"))

	var req dto.VerifyOTPRequest
	if !decode(w, r, &req) {
		return
	}

	token, step, err := c.service.VerifyOTP(ctx, req.Phone, req.Code)
	if err != nil {
		log.Debug("otp verify failed", logger.Err(err))
		writeOnboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyOTPResponse{
		Token: token,
		Step:  string(step),
	})
}

// ─── Helpers compartidos del paquete ───

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxOnboardingBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOnboardingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrPhoneRequired):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("phone es obligatorio"))
	case errors.Is(err, svc.ErrCodeMismatch):
		httperrors.WriteError(w, httperrors.ErrOTPInvalid)
	case errors.Is(err, svc.ErrFieldsRequired):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("name y email son obligatorios"))
	case errors.Is(err, svc.ErrUnknownDocument):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("tipo de documento desconocido"))
	case errors.Is(err, onboarding.ErrInvalidTransition):
		httperrors.WriteError(w, httperrors.ErrInvalidTransition)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
