package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore implementa ProfileStore sobre Postgres.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPGStore conecta a Postgres y devuelve un ProfileStore.
// Espera la tabla renter_profiles (ver schema en el DSN del deploy).
func NewPGStore(ctx context.Context, dsn string, maxConns int, connMaxLifetime time.Duration) (ProfileStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("onboarding: parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	if connMaxLifetime > 0 {
		cfg.MaxConnLifetime = connMaxLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("onboarding: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("onboarding: ping: %w", err)
	}
	return &pgStore{pool: pool}, nil
}

func (s *pgStore) GetByPhone(ctx context.Context, phone string) (*Profile, error) {
	const q = `
		SELECT id, phone, name, email, identity_verified,
		       has_driving_license, has_insurance, created_at, updated_at
		FROM renter_profiles WHERE phone = $1`

	var p Profile
	err := s.pool.QueryRow(ctx, q, phone).Scan(
		&p.ID, &p.Phone, &p.Name, &p.Email, &p.IdentityVerified,
		&p.HasDrivingLicense, &p.HasInsurance, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("onboarding: get profile: %w", err)
	}
	return &p, nil
}

func (s *pgStore) Upsert(ctx context.Context, p *Profile) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	const q = `
		INSERT INTO renter_profiles
			(id, phone, name, email, identity_verified, has_driving_license, has_insurance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			identity_verified = EXCLUDED.identity_verified,
			has_driving_license = EXCLUDED.has_driving_license,
			has_insurance = EXCLUDED.has_insurance,
			updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, q,
		p.ID, p.Phone, p.Name, p.Email, p.IdentityVerified,
		p.HasDrivingLicense, p.HasInsurance, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("onboarding: upsert profile: %w", err)
	}
	return nil
}

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}
