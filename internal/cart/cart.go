// Package cart keeps the certifications each user intends to buy.
package cart

import (
	"errors"
	"slices"
	"sync"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
)

var (
	ErrUnknownCertification = errors.New("unknown certification")
	ErrNotInCart            = errors.New("certification is not in the cart")
)

type Item struct {
	catalog.Certification
	Quantity int `json:"quantity"`
}

// Cart is safe for concurrent use. Items keep the order they were first
// added in.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

// Add puts one more of cert in the cart.
func (c *Cart) Add(cert catalog.Certification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(cert.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, Item{Certification: cert, Quantity: 1})
}

func (c *Cart) Remove(certID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(certID)
	if i < 0 {
		return ErrNotInCart
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

// UpdateQuantity sets the quantity of an item; zero or less removes it.
func (c *Cart) UpdateQuantity(certID, quantity int) error {
	if quantity <= 0 {
		return c.Remove(certID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(certID)
	if i < 0 {
		return ErrNotInCart
	}
	c.items[i].Quantity = quantity
	return nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Total is the sum of price times quantity.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, it := range c.items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

func (c *Cart) index(certID int) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == certID })
}

// Registry hands out one cart per user.
type Registry struct {
	certs []catalog.Certification

	mu    sync.Mutex
	carts map[int]*Cart
}

func NewRegistry(certs []catalog.Certification) *Registry {
	return &Registry{certs: certs, carts: make(map[int]*Cart)}
}

// For returns the user's cart, creating it on first use.
func (r *Registry) For(userID int) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		c = &Cart{}
		r.carts[userID] = c
	}
	return c
}

// AddByID looks the certification up in the catalog and adds it.
func (r *Registry) AddByID(userID, certID int) error {
	cert, ok := catalog.FindCertification(r.certs, certID)
	if !ok {
		return ErrUnknownCertification
	}
	r.For(userID).Add(cert)
	return nil
}
