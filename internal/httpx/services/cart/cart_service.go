package cart

import (
	"context"

	"github.com/dropDatabas3/storefront/internal/cart"
	"github.com/dropDatabas3/storefront/internal/metrics"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
)

// Service defines the cart operations exposed over HTTP.
// All operations return the resulting cart snapshot so the client can render
// without a second round trip.
type Service interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	AddItem(ctx context.Context, sessionID string, p cart.Product, qty int) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, itemID, qty int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, itemID int) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) (*cart.Cart, error)
}

// Deps contains dependencies for the cart service.
type Deps struct {
	Store *cart.Store
}

type service struct {
	deps Deps
}

// NewService creates a new cart Service.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.deps.Store.Get(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, p cart.Product, qty int) (*cart.Cart, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("cart"),
		logger.Op("AddItem"),
		logger.SessionID(sessionID),
	)

	c, err := s.deps.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.AddItem(p, qty)

	if err := s.deps.Store.Save(ctx, sessionID, c); err != nil {
		log.Error("failed to persist cart", logger.Err(err))
		return nil, err
	}

	metrics.CartOpsTotal.WithLabelValues("add").Inc()
	log.Debug("item added", logger.Int("item_id", p.ID), logger.Count(c.TotalItems()))
	return c, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, itemID, qty int) (*cart.Cart, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("cart"),
		logger.Op("UpdateQuantity"),
		logger.SessionID(sessionID),
	)

	c, err := s.deps.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !c.UpdateQuantity(itemID, qty) {
		return nil, cart.ErrItemNotFound
	}

	if err := s.deps.Store.Save(ctx, sessionID, c); err != nil {
		log.Error("failed to persist cart", logger.Err(err))
		return nil, err
	}

	metrics.CartOpsTotal.WithLabelValues("update").Inc()
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, itemID int) (*cart.Cart, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("cart"),
		logger.Op("RemoveItem"),
		logger.SessionID(sessionID),
	)

	c, err := s.deps.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !c.RemoveItem(itemID) {
		return nil, cart.ErrItemNotFound
	}

	if err := s.deps.Store.Save(ctx, sessionID, c); err != nil {
		log.Error("failed to persist cart", logger.Err(err))
		return nil, err
	}

	metrics.CartOpsTotal.WithLabelValues("remove").Inc()
	return c, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*cart.Cart, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("cart"),
		logger.Op("Clear"),
		logger.SessionID(sessionID),
	)

	if err := s.deps.Store.Drop(ctx, sessionID); err != nil {
		log.Error("failed to drop cart", logger.Err(err))
		return nil, err
	}

	metrics.CartOpsTotal.WithLabelValues("clear").Inc()
	return cart.New(), nil
}
