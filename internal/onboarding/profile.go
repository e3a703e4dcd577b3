package onboarding

import (
	"context"
	"errors"
	"time"
)

// Profile es el perfil de un renter en proceso de onboarding.
//
// Los documentos (licencia, seguro) viven en el storage externo de uploads;
// acá sólo se registra su presencia.
type Profile struct {
	ID                string    `json:"id"`
	Phone             string    `json:"phone"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	IdentityVerified  bool      `json:"identityVerified"`
	HasDrivingLicense bool      `json:"hasDrivingLicense"`
	HasInsurance      bool      `json:"hasInsurance"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ErrProfileNotFound: el teléfono no tiene perfil asociado.
var ErrProfileNotFound = errors.New("onboarding: profile not found")

// ProfileStore persiste perfiles de renters.
type ProfileStore interface {
	// GetByPhone busca un perfil por teléfono normalizado.
	// Retorna ErrProfileNotFound si no existe.
	GetByPhone(ctx context.Context, phone string) (*Profile, error)

	// Upsert crea o actualiza el perfil (key: Phone).
	Upsert(ctx context.Context, p *Profile) error

	// Close libera recursos del backend.
	Close() error
}
