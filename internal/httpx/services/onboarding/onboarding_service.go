package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/storefront/internal/auth"
	"github.com/dropDatabas3/storefront/internal/email"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/onboarding"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/google/uuid"
)

// Service drives the renter onboarding flow: OTP por teléfono, perfil,
// verificación de identidad y documentos.
type Service interface {
	RequestOTP(ctx context.Context, cfg *tenant.Config, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (token string, step onboarding.Step, err error)
	CurrentStep(ctx context.Context, phone string) (onboarding.Step, error)
	MoveStep(ctx context.Context, phone string, target onboarding.Step) (onboarding.Step, error)
	UpdateProfile(ctx context.Context, phone, name, email string) (*onboarding.Profile, onboarding.Step, error)
	SubmitDocument(ctx context.Context, phone, kind string) (onboarding.Step, error)
}

// Deps contains dependencies for the onboarding service.
type Deps struct {
	OTP      *auth.OTPService
	Tokens   *auth.TokenIssuer
	Profiles onboarding.ProfileStore
	Mailer   *email.Mailer
}

type service struct {
	deps Deps
}

// NewService creates a new onboarding Service.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// Service errors
var (
	ErrPhoneRequired   = fmt.Errorf("phone is required")
	ErrCodeMismatch    = fmt.Errorf("verification code mismatch")
	ErrFieldsRequired  = fmt.Errorf("name and email are required")
	ErrUnknownDocument = fmt.Errorf("unknown document kind")
)

// Documentos aceptados por SubmitDocument y el flag de perfil que marcan.
const (
	DocIdentity       = "identity"
	DocDrivingLicense = "driving-license"
	DocInsurance      = "insurance"
)

func (s *service) RequestOTP(ctx context.Context, cfg *tenant.Config, phone string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("onboarding"),
		logger.Op("RequestOTP"),
	)

	phone = normalizePhone(phone)
	if phone == "" {
		return ErrPhoneRequired
	}

	code, err := s.deps.OTP.Generate(ctx, phone)
	if err != nil {
		log.Error("failed to generate otp", logger.Err(err))
		return err
	}

	// El relay (gateway SMS vía SMTP o email directo) es best-effort;
	// el código ya está emitido y es verificable.
	if err := s.deps.Mailer.SendOTP(cfg, phone, code); err != nil {
		log.Warn("otp relay failed", logger.Err(err))
	}

	log.Info("otp issued")
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, phone, code string) (string, onboarding.Step, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("onboarding"),
		logger.Op("VerifyOTP"),
	)

	phone = normalizePhone(phone)
	if phone == "" {
		return "", "", ErrPhoneRequired
	}

	ok, err := s.deps.OTP.Verify(ctx, phone, code)
	if err != nil {
		log.Error("otp verify failed", logger.Err(err))
		return "", "", err
	}
	if !ok {
		log.Debug("otp mismatch")
		return "", "", ErrCodeMismatch
	}

	p, err := s.ensureProfile(ctx, phone)
	if err != nil {
		return "", "", err
	}

	token, err := s.deps.Tokens.Issue(phone)
	if err != nil {
		log.Error("failed to issue token", logger.Err(err))
		return "", "", err
	}

	step := onboarding.Derive(true, p)
	log.Info("phone verified", logger.Step(string(step)))
	return token, step, nil
}

func (s *service) CurrentStep(ctx context.Context, phone string) (onboarding.Step, error) {
	p, err := s.deps.Profiles.GetByPhone(ctx, normalizePhone(phone))
	if err != nil && !errors.Is(err, onboarding.ErrProfileNotFound) {
		return "", err
	}
	return onboarding.Derive(true, p), nil
}

// MoveStep valida una navegación pedida por el cliente contra el paso
// derivado actual. Sólo se aceptan movimientos adyacentes; el derivado
// sigue siendo la fuente de verdad tras recargar el perfil.
func (s *service) MoveStep(ctx context.Context, phone string, target onboarding.Step) (onboarding.Step, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("onboarding"),
		logger.Op("MoveStep"),
	)

	p, err := s.deps.Profiles.GetByPhone(ctx, normalizePhone(phone))
	if err != nil && !errors.Is(err, onboarding.ErrProfileNotFound) {
		return "", err
	}

	current := onboarding.Derive(true, p)
	if err := onboarding.Transition(current, target); err != nil {
		log.Debug("transition rejected", logger.Err(err))
		return "", err
	}

	log.Info("step moved", logger.Step(string(target)))
	return target, nil
}

func (s *service) UpdateProfile(ctx context.Context, phone, name, emailAddr string) (*onboarding.Profile, onboarding.Step, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("onboarding"),
		logger.Op("UpdateProfile"),
	)

	name = strings.TrimSpace(name)
	emailAddr = strings.TrimSpace(emailAddr)
	if name == "" || emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return nil, "", ErrFieldsRequired
	}

	p, err := s.ensureProfile(ctx, normalizePhone(phone))
	if err != nil {
		return nil, "", err
	}

	p.Name = name
	p.Email = emailAddr

	if err := s.deps.Profiles.Upsert(ctx, p); err != nil {
		log.Error("failed to upsert profile", logger.Err(err))
		return nil, "", err
	}

	step := onboarding.Derive(true, p)
	log.Info("profile updated", logger.Step(string(step)))
	return p, step, nil
}

func (s *service) SubmitDocument(ctx context.Context, phone, kind string) (onboarding.Step, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("onboarding"),
		logger.Op("SubmitDocument"),
		logger.String("kind", kind),
	)

	p, err := s.ensureProfile(ctx, normalizePhone(phone))
	if err != nil {
		return "", err
	}

	switch kind {
	case DocIdentity:
		p.IdentityVerified = true
	case DocDrivingLicense:
		p.HasDrivingLicense = true
	case DocInsurance:
		p.HasInsurance = true
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDocument, kind)
	}

	if err := s.deps.Profiles.Upsert(ctx, p); err != nil {
		log.Error("failed to upsert profile", logger.Err(err))
		return "", err
	}

	step := onboarding.Derive(true, p)
	log.Info("document registered", logger.Step(string(step)))
	return step, nil
}

// ensureProfile devuelve el perfil del teléfono, creándolo vacío si no existe.
func (s *service) ensureProfile(ctx context.Context, phone string) (*onboarding.Profile, error) {
	p, err := s.deps.Profiles.GetByPhone(ctx, phone)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, onboarding.ErrProfileNotFound) {
		return nil, err
	}

	p = &onboarding.Profile{
		ID:    uuid.NewString(),
		Phone: phone,
	}
	if err := s.deps.Profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// normalizePhone deja el teléfono en formato E.164-ish: dígitos y un + inicial.
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || s == "+" {
		return ""
	}
	return s
}
