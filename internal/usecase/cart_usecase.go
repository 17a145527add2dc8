package usecase

import (
	"fmt"

	"mitienda-backend/internal/domain"
)

// CartUsecase mutates the session-scoped cart. The session store hands every
// request in a session the same pointer, so each mutation runs under the
// session lock, recomputes line subtotals and the running total, and returns
// a snapshot the handler can encode without further locking.
type CartUsecase struct {
	sessions domain.SessionStore
}

func NewCartUsecase(sessions domain.SessionStore) *CartUsecase {
	return &CartUsecase{sessions: sessions}
}

func (u *CartUsecase) GetCart(sess *domain.Session) *domain.Cart {
	cart := sess.CartSnapshot()
	return &cart
}

// AddItem merges the quantity into an existing line or appends a new one.
// The stock ceiling applies to the merged quantity.
func (u *CartUsecase) AddItem(sess *domain.Session, product domain.Product, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive")
	}

	sess.Lock()
	defer sess.Unlock()

	for i, item := range sess.Cart.Items {
		if item.Product.ID == product.ID {
			newQuantity := item.Quantity + quantity
			if newQuantity > product.Stock {
				return nil, domain.NewValidationError(fmt.Sprintf("insufficient stock for product %s", product.Name))
			}
			sess.Cart.Items[i].Quantity = newQuantity
			return u.commit(sess), nil
		}
	}

	if quantity > product.Stock {
		return nil, domain.NewValidationError(fmt.Sprintf("insufficient stock for product %s", product.Name))
	}
	sess.Cart.Items = append(sess.Cart.Items, domain.CartLineItem{
		Product:  product,
		Quantity: quantity,
	})
	return u.commit(sess), nil
}

// UpdateItemQuantity sets an absolute quantity for a line.
func (u *CartUsecase) UpdateItemQuantity(sess *domain.Session, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive")
	}

	sess.Lock()
	defer sess.Unlock()

	for i, item := range sess.Cart.Items {
		if item.Product.ID == productID {
			if quantity > item.Product.Stock {
				return nil, domain.NewValidationError(fmt.Sprintf("insufficient stock for product %s", item.Product.Name))
			}
			sess.Cart.Items[i].Quantity = quantity
			return u.commit(sess), nil
		}
	}
	return nil, domain.NewValidationError("product not found in cart")
}

func (u *CartUsecase) RemoveItem(sess *domain.Session, productID string) *domain.Cart {
	sess.Lock()
	defer sess.Unlock()

	items := sess.Cart.Items[:0]
	for _, item := range sess.Cart.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}
	sess.Cart.Items = items
	return u.commit(sess)
}

func (u *CartUsecase) Clear(sess *domain.Session) *domain.Cart {
	sess.Lock()
	defer sess.Unlock()

	sess.Cart = domain.Cart{}
	return u.commit(sess)
}

// commit recomputes totals, persists the session and returns a cart snapshot.
// The caller holds the session lock.
func (u *CartUsecase) commit(sess *domain.Session) *domain.Cart {
	total := 0.0
	for i, item := range sess.Cart.Items {
		subtotal := item.Product.Price * float64(item.Quantity)
		sess.Cart.Items[i].Subtotal = subtotal
		total += subtotal
	}
	sess.Cart.Total = total
	u.sessions.Set(sess)

	cart := sess.Cart.Copy()
	return &cart
}
