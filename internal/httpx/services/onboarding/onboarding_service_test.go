package onboarding

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storefront/internal/auth"
	"github.com/dropDatabas3/storefront/internal/cache"
	"github.com/dropDatabas3/storefront/internal/email"
	domain "github.com/dropDatabas3/storefront/internal/onboarding"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
)

func newService(t *testing.T) (Service, *auth.OTPService) {
	t.Helper()
	c := cache.NewMemory("test:", time.Minute)
	otp := auth.NewOTPService(c, time.Minute, 6)
	return NewService(Deps{
		OTP:      otp,
		Tokens:   auth.NewTokenIssuer("storefront", "secreto-test", time.Hour),
		Profiles: domain.NewMemoryStore(),
		Mailer:   email.NewMailer(nil),
	}), otp
}

func TestFlujoCompleto(t *testing.T) {
	s, otp := newService(t)
	ctx := context.Background()
	cfg := fsload.FallbackConfig()
	const phone = "+5491155550101"

	// 1. Pedir OTP. El relay sin SMTP no corta el flujo.
	require.NoError(t, s.RequestOTP(ctx, cfg, phone))

	// El código no sale por el API; para el test lo regeneramos.
	code, err := otp.Generate(ctx, phone)
	require.NoError(t, err)

	// 2. Verificar: token + paso profile (perfil vacío recién creado).
	token, step, err := s.VerifyOTP(ctx, phone, code)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.StepProfile, step)

	// 3. Completar perfil: siguiente requisito es stripe.
	p, step, err := s.UpdateProfile(ctx, phone, "Ana García", "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ana García", p.Name)
	require.Equal(t, domain.StepStripe, step)

	// 4. Documentos en orden: identidad -> licencia -> seguro -> done.
	step, err = s.SubmitDocument(ctx, phone, DocIdentity)
	require.NoError(t, err)
	require.Equal(t, domain.StepDrivingLicense, step)

	step, err = s.SubmitDocument(ctx, phone, DocDrivingLicense)
	require.NoError(t, err)
	require.Equal(t, domain.StepInsurance, step)

	step, err = s.SubmitDocument(ctx, phone, DocInsurance)
	require.NoError(t, err)
	require.Equal(t, domain.StepDone, step)

	// 5. CurrentStep coincide con el derivado final.
	step, err = s.CurrentStep(ctx, phone)
	require.NoError(t, err)
	require.Equal(t, domain.StepDone, step)
}

func TestVerifyOTP_CodigoIncorrecto(t *testing.T) {
	s, otp := newService(t)
	ctx := context.Background()

	_, err := otp.Generate(ctx, "+549115555")
	require.NoError(t, err)

	_, _, err = s.VerifyOTP(ctx, "+549115555", "000000")
	require.ErrorIs(t, err, ErrCodeMismatch)
}

func TestRequestOTP_SinTelefono(t *testing.T) {
	s, _ := newService(t)
	err := s.RequestOTP(context.Background(), fsload.FallbackConfig(), "   ")
	require.ErrorIs(t, err, ErrPhoneRequired)
}

func TestUpdateProfile_CamposRequeridos(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, _, err := s.UpdateProfile(ctx, "+549115555", "", "a@b.c")
	require.ErrorIs(t, err, ErrFieldsRequired)

	_, _, err = s.UpdateProfile(ctx, "+549115555", "Ana", "sin-arroba")
	require.ErrorIs(t, err, ErrFieldsRequired)
}

func TestSubmitDocument_KindDesconocido(t *testing.T) {
	s, _ := newService(t)
	_, err := s.SubmitDocument(context.Background(), "+549115555", "pasaporte")
	require.ErrorIs(t, err, ErrUnknownDocument)
}

func TestMoveStep(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	const phone = "+5491155550101"

	// Sin perfil cargado el derivado es profile; los adyacentes son otp y loading.
	step, err := s.MoveStep(ctx, phone, domain.StepOTP)
	require.NoError(t, err)
	require.Equal(t, domain.StepOTP, step)

	step, err = s.MoveStep(ctx, phone, domain.StepLoading)
	require.NoError(t, err)
	require.Equal(t, domain.StepLoading, step)
}

func TestMoveStep_SaltoRechazado(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	const phone = "+5491155550101"

	_, err := s.MoveStep(ctx, phone, domain.StepInsurance)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = s.MoveStep(ctx, phone, domain.Step("teleport"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El derivado no se movió: los rechazos no tienen efecto.
	step, err := s.CurrentStep(ctx, phone)
	require.NoError(t, err)
	require.Equal(t, domain.StepProfile, step)
}

// wrappingStore envuelve los errores del backend como lo haría un driver real.
type wrappingStore struct {
	domain.ProfileStore
}

func (s wrappingStore) GetByPhone(ctx context.Context, phone string) (*domain.Profile, error) {
	p, err := s.ProfileStore.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("backend: get profile: %w", err)
	}
	return p, nil
}

func TestCurrentStep_NotFoundEnvuelto(t *testing.T) {
	c := cache.NewMemory("test:", time.Minute)
	s := NewService(Deps{
		OTP:      auth.NewOTPService(c, time.Minute, 6),
		Tokens:   auth.NewTokenIssuer("storefront", "secreto-test", time.Hour),
		Profiles: wrappingStore{domain.NewMemoryStore()},
		Mailer:   email.NewMailer(nil),
	})

	step, err := s.CurrentStep(context.Background(), "+549115555")
	require.NoError(t, err)
	require.Equal(t, domain.StepProfile, step)
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+54 9 11 5555-0101": "+5491155550101",
		"  +549115555  ":     "+549115555",
		"1155550101":         "1155550101",
		"abc":                "",
		"+":                  "",
		"":                   "",
	}
	for in, want := range cases {
		if got := normalizePhone(in); got != want {
			t.Fatalf("normalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}
