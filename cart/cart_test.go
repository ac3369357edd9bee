package cart

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/vetcare/vetcare/storage"
)

func newTestCart(t *testing.T) (*Manager, *storage.MemoryStore) {
	t.Helper()

	backend := storage.NewMemoryStore()
	m, err := NewManager(backend, Config{ShippingFlatRate: DefaultShippingFlatRate})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m, backend
}

func approx(t *testing.T, want, got float64) {
	t.Helper()
	if math.Abs(want-got) > 1e-9 {
		t.Fatalf("want %.2f, got %.2f", want, got)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	if err := m.Add(ctx, Item{ProductID: "1", Name: "Dog Food", Price: 12.50, Quantity: 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.Add(ctx, Item{ProductID: "1", Name: "Dog Food", Price: 12.50, Quantity: 2}); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	items := m.Items()
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected one merged line of qty 3, got %+v", items)
	}
	if m.Count() != 3 {
		t.Fatalf("expected count 3, got %d", m.Count())
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	m, _ := newTestCart(t)
	err := m.Add(context.Background(), Item{ProductID: "1", Quantity: 0})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	if err := m.Add(ctx, Item{ProductID: "1", Price: 5, Quantity: 2}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.SetQuantity(ctx, "1", 0); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	if len(m.Items()) != 0 {
		t.Fatal("expected empty cart after qty 0")
	}
}

func TestSummaryShippingOnlyWhenNonEmpty(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	s := m.Summarize()
	approx(t, 0, s.Shipping)
	approx(t, 0, s.Total)

	if err := m.Add(ctx, Item{ProductID: "1", Price: 10, Quantity: 2}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	s = m.Summarize()
	approx(t, 20, s.Subtotal)
	approx(t, 5, s.Shipping)
	approx(t, 25, s.Total)
}

func TestCheckoutClearsCart(t *testing.T) {
	ctx := context.Background()
	m, backend := newTestCart(t)

	if err := m.Add(ctx, Item{ProductID: "1", Price: 10, Quantity: 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	s, err := m.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	approx(t, 15, s.Total)

	if len(m.Items()) != 0 {
		t.Fatal("expected cart cleared after checkout")
	}
	if _, err := backend.Get(ctx, DefaultStorageKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected persisted cart removed, got %v", err)
	}
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	m, _ := newTestCart(t)
	if _, err := m.Checkout(context.Background()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCartPersistsAcrossManagers(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()

	m1, err := NewManager(backend, Config{ShippingFlatRate: 5})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m1.Add(ctx, Item{ProductID: "1", Name: "Cat Tower", Price: 30, Quantity: 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	m2, err := NewManager(backend, Config{ShippingFlatRate: 5})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	items := m2.Items()
	if len(items) != 1 || items[0].Name != "Cat Tower" {
		t.Fatalf("expected restored cart, got %+v", items)
	}
}

func TestCorruptPersistedCartResetsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	if err := backend.Set(ctx, DefaultStorageKey, "{{{"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	m, err := NewManager(backend, Config{ShippingFlatRate: 5})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if len(m.Items()) != 0 {
		t.Fatal("expected empty cart after corrupt payload")
	}
	if _, err := backend.Get(ctx, DefaultStorageKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected corrupt payload dropped, got %v", err)
	}
}
