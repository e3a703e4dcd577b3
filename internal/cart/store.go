package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dropDatabas3/storefront/internal/cache"
	"github.com/google/uuid"
)

// Store persiste carritos por sesión en el backend de cache.
//
// La persistencia es best-effort: si el backend pierde la key, el cliente
// arranca con un carrito vacío. El server no asume nada más sobre el
// contenido del carrito.
type Store struct {
	cache cache.Client
	ttl   time.Duration
}

// NewStore crea un Store sobre el cache dado.
func NewStore(c cache.Client, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Store{cache: c, ttl: ttl}
}

// NewSessionID genera un ID de sesión opaco para la cookie del carrito.
func NewSessionID() string {
	return uuid.NewString()
}

// Get carga el carrito de la sesión. Una sesión desconocida devuelve un
// carrito vacío, no un error.
func (s *Store) Get(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.cache.Get(ctx, key(sessionID))
	if err != nil {
		if cache.IsNotFound(err) {
			return &Cart{}, nil
		}
		return nil, fmt.Errorf("cart: load session: %w", err)
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// Carrito corrupto: se descarta y se arranca de cero.
		_ = s.cache.Delete(ctx, key(sessionID))
		return &Cart{}, nil
	}
	return &c, nil
}

// Save persiste el carrito de la sesión, renovando el TTL.
func (s *Store) Save(ctx context.Context, sessionID string, c *Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.cache.Set(ctx, key(sessionID), string(b), s.ttl); err != nil {
		return fmt.Errorf("cart: save session: %w", err)
	}
	return nil
}

// Drop elimina el carrito de la sesión.
func (s *Store) Drop(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, key(sessionID))
}

func key(sessionID string) string {
	return "cart:" + sessionID
}
