package cart

import (
	"log"
	"sync"

	"tillfront/internal/catalog"
	"tillfront/internal/model"
	"tillfront/internal/session"
)

// Store maintains the product-id -> quantity mapping and its derived
// views. Values are kept exactly as given (SetEntries performs no
// validation); every reader coerces through model.ParseQuantity, so a
// garbage value degrades to 0 instead of breaking the cart.
//
// The store is constructed and injected where needed; nothing here is a
// package-level singleton. Persistence is write-through after every
// mutation and deliberately fire-and-forget: the in-memory mapping is
// authoritative, the persisted blob is a lagging mirror restored only at
// startup.
type Store struct {
	mu      sync.RWMutex
	entries map[string]any

	catalog catalog.Cache
	persist session.Store
}

// New creates an empty Store joined against cache. persist may be nil
// for a non-persistent cart (tests, dry runs).
func New(cache catalog.Cache, persist session.Store) *Store {
	return &Store{
		entries: make(map[string]any),
		catalog: cache,
		persist: persist,
	}
}

// Restore loads the persisted session wholesale: the raw cart mapping
// and the product snapshot it was taken against. Called once at startup.
func (s *Store) Restore() error {
	if s.persist == nil {
		return nil
	}
	sess, err := s.persist.Load()
	if err != nil {
		return err
	}
	if sess.Cart != nil {
		s.mu.Lock()
		s.entries = sess.Cart
		s.mu.Unlock()
	}
	if len(sess.Products) > 0 {
		if err := s.catalog.ReplaceAll(sess.Products); err != nil {
			log.Printf("cart: restore catalog snapshot: %v", err)
		}
	}
	return nil
}

// SetEntries replaces the whole mapping as given, no validation.
func (s *Store) SetEntries(entries map[string]any) {
	m := make(map[string]any, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	s.mu.Lock()
	s.entries = m
	s.mu.Unlock()
	s.save()
}

// SetProducts replaces the catalog snapshot wholesale and persists it
// alongside the cart.
func (s *Store) SetProducts(products []model.Product) {
	if err := s.catalog.ReplaceAll(products); err != nil {
		log.Printf("cart: set products: %v", err)
		return
	}
	s.save()
}

// AddProduct increments the quantity for p by exactly 1. The store does
// not enforce stock limits; callers check StockQuantity before calling.
func (s *Store) AddProduct(p model.Product) {
	s.AddProductID(p.ID)
}

// AddProductID is the bare-id variant of AddProduct.
func (s *Store) AddProductID(id string) {
	s.mu.Lock()
	s.entries[id] = model.ParseQuantity(s.entries[id]) + 1
	s.mu.Unlock()
	s.save()
}

// Remove decrements the quantity for id by 1 and deletes the key when
// the result would drop to 0 or below. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	cur, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	q := model.ParseQuantity(cur) - 1
	if q <= 0 {
		delete(s.entries, id)
	} else {
		s.entries[id] = q
	}
	s.mu.Unlock()
	s.save()
}

// Clear resets the mapping to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]any)
	s.mu.Unlock()
	s.save()
}

// Entries returns a copy of the raw mapping, values as stored.
func (s *Store) Entries() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Items joins the mapping against the current catalog snapshot. Entries
// whose product is not in the catalog are dropped, not errors: they stay
// in the raw mapping until cleared.
func (s *Store) Items() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CartItem, 0, len(s.entries))
	for id, raw := range s.entries {
		p, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		out = append(out, model.CartItem{
			Product:  p,
			Quantity: model.ParseQuantity(raw),
		})
	}
	return out
}

// TotalItems sums all quantities, including orphaned entries: counting
// does not need product resolution.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, raw := range s.entries {
		total += model.ParseQuantity(raw)
	}
	return total
}

// TotalValue sums price * quantity over resolvable entries; orphans
// contribute nothing.
func (s *Store) TotalValue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for id, raw := range s.entries {
		p, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		total += p.Price * float64(model.ParseQuantity(raw))
	}
	return total
}

// save mirrors the current state to the session store. Failures are
// logged and swallowed; the next mutation overwrites the blob anyway.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	products, err := s.catalog.All()
	if err != nil {
		log.Printf("cart: snapshot catalog for save: %v", err)
	}
	sess := session.Session{Cart: s.Entries(), Products: products}
	if err := s.persist.Save(sess); err != nil {
		log.Printf("cart: persist session: %v", err)
	}
}
