package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vetcare/vetcare/storage"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity is returned when an item is added with a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be > 0")
)

// DefaultStorageKey is the storage key the cart persists under.
const DefaultStorageKey = "vetcare_cart"

// DefaultShippingFlatRate is the flat shipping fee charged whenever the
// cart holds at least one item.
const DefaultShippingFlatRate = 5.00

// Item is one cart line. Price is snapshotted at add time so catalog
// updates never change an already carted line.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Summary is the priced view of the cart.
type Summary struct {
	Items    []Item
	Count    int
	Subtotal float64
	Shipping float64
	Total    float64
}

// Config holds cart tuning parameters.
type Config struct {
	StorageKey       string
	ShippingFlatRate float64
}

// Manager owns the cart lines and their persistence. Safe for concurrent
// use.
//
//	Docs: docs/cart.md
type Manager struct {
	cfg     Config
	backend storage.Store

	mu    sync.Mutex
	items []Item
}

// NewManager creates a cart over the given backend and restores any
// persisted lines. A corrupt persisted cart resets to empty rather than
// failing the whole client.
func NewManager(backend storage.Store, cfg Config) (*Manager, error) {
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.ShippingFlatRate < 0 {
		return nil, errors.New("ShippingFlatRate must be >= 0")
	}

	m := &Manager{
		cfg:     cfg,
		backend: backend,
	}

	raw, err := backend.Get(context.Background(), cfg.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return m, nil
		}
		return nil, fmt.Errorf("restore cart: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &m.items); err != nil {
		m.items = nil
		_ = backend.Remove(context.Background(), cfg.StorageKey)
	}

	return m, nil
}

// Add puts quantity units of the item in the cart. Adding a product that
// is already carted merges into the existing line.
func (m *Manager) Add(ctx context.Context, item Item) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == item.ProductID {
			m.items[i].Quantity += item.Quantity
			return m.persistLocked(ctx)
		}
	}
	m.items = append(m.items, item)
	return m.persistLocked(ctx)
}

// SetQuantity sets the line quantity for a product. A quantity of zero or
// less removes the line. Unknown products are a no-op.
func (m *Manager) SetQuantity(ctx context.Context, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity <= 0 {
		return m.removeLocked(ctx, productID)
	}
	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity = quantity
			return m.persistLocked(ctx)
		}
	}
	return nil
}

// Remove drops the line for a product. Removing an uncarted product is a
// no-op.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(ctx, productID)
}

func (m *Manager) removeLocked(ctx context.Context, productID string) error {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return m.persistLocked(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Count returns the total unit count across all lines.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for _, it := range m.items {
		n += it.Quantity
	}
	return n
}

// Summarize prices the cart. Shipping is the flat rate when the cart is
// non-empty and zero otherwise.
func (m *Manager) Summarize() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Summary{Items: make([]Item, len(m.items))}
	copy(s.Items, m.items)

	for _, it := range m.items {
		s.Count += it.Quantity
		s.Subtotal += it.Price * float64(it.Quantity)
	}
	if s.Subtotal > 0 {
		s.Shipping = m.cfg.ShippingFlatRate
	}
	s.Total = s.Subtotal + s.Shipping
	return s
}

// Checkout finalizes the order: it returns the priced summary and clears
// the cart. An empty cart fails with ErrEmptyCart and changes nothing.
func (m *Manager) Checkout(ctx context.Context) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return Summary{}, ErrEmptyCart
	}

	s := Summary{Items: m.items}
	for _, it := range m.items {
		s.Count += it.Quantity
		s.Subtotal += it.Price * float64(it.Quantity)
	}
	s.Shipping = m.cfg.ShippingFlatRate
	s.Total = s.Subtotal + s.Shipping

	m.items = nil
	if err := m.persistLocked(ctx); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// Clear empties the cart without producing an order.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	return m.persistLocked(ctx)
}

func (m *Manager) persistLocked(ctx context.Context) error {
	if len(m.items) == 0 {
		if err := m.backend.Remove(ctx, m.cfg.StorageKey); err != nil {
			return fmt.Errorf("persist cart: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(m.items)
	if err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	if err := m.backend.Set(ctx, m.cfg.StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
