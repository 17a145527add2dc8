package usecase

import (
	"sync"
	"testing"

	"mitienda-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	sessions map[string]*domain.Session
	setCalls int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionStore) Get(id string) (*domain.Session, bool) {
	s, ok := f.sessions[id]
	return s, ok
}

func (f *fakeSessionStore) Set(s *domain.Session) {
	f.setCalls++
	f.sessions[s.ID] = s
}

func (f *fakeSessionStore) Delete(id string) {
	delete(f.sessions, id)
}

func (f *fakeSessionStore) Flush() {
	f.sessions = make(map[string]*domain.Session)
}

func testProduct(id string, price float64, stock int) domain.Product {
	return domain.Product{ID: id, Name: "Producto " + id, Price: price, Stock: stock}
}

func TestCartAddItem(t *testing.T) {
	store := newFakeSessionStore()
	u := NewCartUsecase(store)
	sess := &domain.Session{ID: "s1"}

	cart, err := u.AddItem(sess, testProduct("p1", 100, 5), 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 200.0, cart.Items[0].Subtotal)
	assert.Equal(t, 200.0, cart.Total)
	assert.Equal(t, 1, store.setCalls)

	// Same product merges into the existing line
	cart, err = u.AddItem(sess, testProduct("p1", 100, 5), 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 300.0, cart.Total)
}

func TestCartAddItemStockCeiling(t *testing.T) {
	u := NewCartUsecase(newFakeSessionStore())
	sess := &domain.Session{ID: "s1"}

	_, err := u.AddItem(sess, testProduct("p1", 100, 2), 3)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	// Merged quantity is bounded too
	_, err = u.AddItem(sess, testProduct("p1", 100, 2), 2)
	require.NoError(t, err)
	_, err = u.AddItem(sess, testProduct("p1", 100, 2), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestCartUpdateItemQuantity(t *testing.T) {
	u := NewCartUsecase(newFakeSessionStore())
	sess := &domain.Session{ID: "s1"}

	_, err := u.AddItem(sess, testProduct("p1", 100, 10), 2)
	require.NoError(t, err)

	cart, err := u.UpdateItemQuantity(sess, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.Total)

	_, err = u.UpdateItemQuantity(sess, "missing", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found in cart")

	_, err = u.UpdateItemQuantity(sess, "p1", 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCartRemoveAndClear(t *testing.T) {
	u := NewCartUsecase(newFakeSessionStore())
	sess := &domain.Session{ID: "s1"}

	_, err := u.AddItem(sess, testProduct("p1", 100, 10), 1)
	require.NoError(t, err)
	_, err = u.AddItem(sess, testProduct("p2", 50, 10), 2)
	require.NoError(t, err)

	cart := u.RemoveItem(sess, "p1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].Product.ID)
	assert.Equal(t, 100.0, cart.Total)

	// Removing an unknown product is a no-op
	cart = u.RemoveItem(sess, "missing")
	assert.Len(t, cart.Items, 1)

	cart = u.Clear(sess)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

// Exercises the session lock: run with -race to catch unsynchronized access
// to the shared cart.
func TestCartConcurrentMutation(t *testing.T) {
	u := NewCartUsecase(newFakeSessionStore())
	sess := &domain.Session{ID: "s1"}
	product := testProduct("p1", 100, 1000)

	const workers = 4
	const addsPerWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWorker; i++ {
				_, err := u.AddItem(sess, product, 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	cart := u.GetCart(sess)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers*addsPerWorker, cart.Items[0].Quantity)
	assert.Equal(t, float64(workers*addsPerWorker)*100, cart.Total)
}

func TestCartSnapshotIsolation(t *testing.T) {
	u := NewCartUsecase(newFakeSessionStore())
	sess := &domain.Session{ID: "s1"}

	_, err := u.AddItem(sess, testProduct("p1", 100, 10), 2)
	require.NoError(t, err)

	cart := u.GetCart(sess)
	cart.Items[0].Quantity = 999
	cart.Total = 0

	fresh := u.GetCart(sess)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
	assert.Equal(t, 200.0, fresh.Total)
}
