package onboarding

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/storefront/internal/httpx/dto/onboarding"
	httperrors "github.com/dropDatabas3/storefront/internal/httpx/errors"
	"github.com/dropDatabas3/storefront/internal/httpx/middlewares"
	svc "github.com/dropDatabas3/storefront/internal/httpx/services/onboarding"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/onboarding"
)

// ProfileController maneja los endpoints autenticados del onboarding:
// paso actual, perfil y documentos. Todos requieren el bearer token
// emitido por la verificación de OTP.
type ProfileController struct {
	service svc.Service
}

// NewProfileController crea el controller de perfil.
func NewProfileController(service svc.Service) *ProfileController {
	return &ProfileController{service: service}
}

// Step maneja GET /api/onboarding/step
func (c *ProfileController) Step(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phone := middlewares.GetAuthPhone(ctx)

	step, err := c.service.CurrentStep(ctx, phone)
	if err != nil {
		logger.From(ctx).Error("step derivation failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.StepResponse{Step: string(step)})
}

// MoveStep maneja POST /api/onboarding/step
//
// Navegación explícita del wizard: el destino tiene que ser adyacente al
// paso derivado actual; cualquier salto responde 409.
func (c *ProfileController) MoveStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.MoveStep"))
	phone := middlewares.GetAuthPhone(ctx)

	var req dto.MoveStepRequest
	if !decode(w, r, &req) {
		return
	}

	step, err := c.service.MoveStep(ctx, phone, onboarding.Step(req.Step))
	if err != nil {
		log.Debug("step move rejected", logger.Err(err))
		writeOnboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StepResponse{Step: string(step)})
}

// UpdateProfile maneja PUT /api/onboarding/profile
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.UpdateProfile"))
	phone := middlewares.GetAuthPhone(ctx)

	var req dto.ProfileRequest
	if !decode(w, r, &req) {
		return
	}

	p, step, err := c.service.UpdateProfile(ctx, phone, req.Name, req.Email)
	if err != nil {
		log.Debug("profile update failed", logger.Err(err))
		writeOnboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		Phone:             p.Phone,
		Name:              p.Name,
		Email:             p.Email,
		IdentityVerified:  p.IdentityVerified,
		HasDrivingLicense: p.HasDrivingLicense,
		HasInsurance:      p.HasInsurance,
		Step:              string(step),
	})
}

// SubmitDocument maneja POST /api/onboarding/documents/{kind}
func (c *ProfileController) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProfileController.SubmitDocument"))
	phone := middlewares.GetAuthPhone(ctx)
	kind := chi.URLParam(r, "kind")

	step, err := c.service.SubmitDocument(ctx, phone, kind)
	if err != nil {
		log.Debug("document submit failed", logger.Err(err))
		writeOnboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DocumentResponse{
		Kind: kind,
		Step: string(step),
	})
}
