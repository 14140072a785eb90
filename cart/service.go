package cart

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/cafedesk/cafe-api/models"
	"github.com/cafedesk/cafe-api/session"
)

// Service is the cart store. Every mutation is a full read-modify-write of the
// serialized cart against the session store; within one session the last
// writer wins.
type Service struct {
	store session.Store
	log   *zap.SugaredLogger
}

func NewService(store session.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// Get never fails from the caller's point of view: a missing, unreadable or
// corrupt stored cart comes back as an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) models.Cart {
	data, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.log.Warnw("cart read failed, serving empty cart", "session_id", sessionID, "error", err)
		return models.Cart{}
	}
	if len(data) == 0 {
		return models.Cart{}
	}
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.log.Warnw("discarding unreadable cart", "session_id", sessionID, "error", err)
		return models.Cart{}
	}
	return cart
}

func (s *Service) save(ctx context.Context, sessionID string, cart models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionID, data)
}

// Add merges the item into the cart by product id.
func (s *Service) Add(ctx context.Context, sessionID string, item models.CartItem) error {
	cart := s.Get(ctx, sessionID)
	cart.AddItem(item)
	return s.save(ctx, sessionID, cart)
}

// SetQuantity replaces a line's quantity; zero or negative removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID uint, quantity int) error {
	cart := s.Get(ctx, sessionID)
	cart.UpdateQuantity(productID, quantity)
	return s.save(ctx, sessionID, cart)
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID uint) error {
	cart := s.Get(ctx, sessionID)
	cart.RemoveItem(productID)
	return s.save(ctx, sessionID, cart)
}

// Clear drops the stored cart. A failed delete is logged so a stale session
// can be traced when the caller chooses to ignore the error.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.log.Warnw("cart clear failed", "session_id", sessionID, "error", err)
		return err
	}
	return nil
}

// Count backs the header badge.
func (s *Service) Count(ctx context.Context, sessionID string) int {
	cart := s.Get(ctx, sessionID)
	return cart.TotalItems()
}

func (s *Service) Total(ctx context.Context, sessionID string) float64 {
	cart := s.Get(ctx, sessionID)
	return cart.Total()
}
