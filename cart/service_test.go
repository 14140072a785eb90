package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cafedesk/cafe-api/models"
	"github.com/cafedesk/cafe-api/session"
)

func newTestService() (*Service, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return NewService(store, zap.NewNop().Sugar()), store
}

func espresso(qty int) models.CartItem {
	return models.CartItem{ProductID: 1, ProductName: "Espresso", UnitPrice: 2.5, Quantity: qty}
}

func latte(qty int) models.CartItem {
	return models.CartItem{ProductID: 2, ProductName: "Latte", UnitPrice: 4.75, Quantity: qty}
}

func TestAddMergesSameProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "sid", espresso(2)))
	assert.NoError(t, svc.Add(ctx, "sid", espresso(3)))

	cart := svc.Get(ctx, "sid")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "sid", espresso(2)))

	// Positive quantity replaces
	assert.NoError(t, svc.SetQuantity(ctx, "sid", 1, 7))
	cart := svc.Get(ctx, "sid")
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Zero removes
	assert.NoError(t, svc.SetQuantity(ctx, "sid", 1, 0))
	assert.Empty(t, svc.Get(ctx, "sid").Items)

	// Negative removes too
	assert.NoError(t, svc.Add(ctx, "sid", espresso(1)))
	assert.NoError(t, svc.SetQuantity(ctx, "sid", 1, -4))
	assert.Empty(t, svc.Get(ctx, "sid").Items)

	// Unknown product is a no-op
	assert.NoError(t, svc.SetQuantity(ctx, "sid", 99, 3))
	assert.Empty(t, svc.Get(ctx, "sid").Items)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "sid", espresso(1)))
	assert.NoError(t, svc.Add(ctx, "sid", latte(1)))

	assert.NoError(t, svc.Remove(ctx, "sid", 1))
	cart := svc.Get(ctx, "sid")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ProductID)

	// Removing something absent changes nothing
	assert.NoError(t, svc.Remove(ctx, "sid", 42))
	assert.Len(t, svc.Get(ctx, "sid").Items, 1)
}

func TestTotalRecomputed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "sid", espresso(2)))
	assert.NoError(t, svc.Add(ctx, "sid", latte(1)))
	assert.Equal(t, 9.75, svc.Total(ctx, "sid"))
	assert.Equal(t, 3, svc.Count(ctx, "sid"))

	assert.NoError(t, svc.SetQuantity(ctx, "sid", 1, 1))
	assert.Equal(t, 7.25, svc.Total(ctx, "sid"))
}

func TestClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "sid", espresso(2)))
	assert.NoError(t, svc.Clear(ctx, "sid"))
	assert.Empty(t, svc.Get(ctx, "sid").Items)
	assert.Equal(t, 0, svc.Count(ctx, "sid"))
}

var errStoreDown = errors.New("session store down")

// downStore fails every operation, standing in for an unreachable Redis.
type downStore struct{}

func (downStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	return nil, errStoreDown
}

func (downStore) Set(ctx context.Context, sessionID string, data []byte) error {
	return errStoreDown
}

func (downStore) Delete(ctx context.Context, sessionID string) error {
	return errStoreDown
}

func TestClearFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(downStore{}, zap.New(core).Sugar())

	err := svc.Clear(context.Background(), "sid")
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 1, logs.FilterMessage("cart clear failed").Len())
}

func TestGetNeverFails(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// Unknown session
	assert.Empty(t, svc.Get(ctx, "missing").Items)

	// Corrupt stored value comes back as an empty cart
	assert.NoError(t, store.Set(ctx, "bad", []byte("{not json")))
	assert.Empty(t, svc.Get(ctx, "bad").Items)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "alice", espresso(1)))
	assert.NoError(t, svc.Add(ctx, "bob", latte(2)))

	assert.Equal(t, 1, svc.Count(ctx, "alice"))
	assert.Equal(t, 2, svc.Count(ctx, "bob"))
}
