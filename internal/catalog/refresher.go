package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"tillfront/internal/model"
)

// Lister is the product-listing side of the API client.
type Lister interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// Refresher refetches the catalog into a Cache. Fetches may overlap; a
// generation counter makes sure a slow, superseded fetch cannot overwrite
// the result of a newer one. Cart reads keep using the last-known
// snapshot while a refresh is in flight.
type Refresher struct {
	lister Lister
	cache  Cache
	gen    atomic.Uint64
}

func NewRefresher(lister Lister, cache Cache) *Refresher {
	return &Refresher{lister: lister, cache: cache}
}

// Refresh fetches the catalog and replaces the cache wholesale. Returns
// (false, nil) when the result was discarded because a newer refresh
// started while this one was in flight.
func (r *Refresher) Refresh(ctx context.Context) (applied bool, err error) {
	gen := r.gen.Add(1)
	products, err := r.lister.ListProducts(ctx)
	if err != nil {
		return false, fmt.Errorf("list products: %w", err)
	}
	if r.gen.Load() != gen {
		return false, nil
	}
	if err := r.cache.ReplaceAll(products); err != nil {
		return false, fmt.Errorf("replace catalog: %w", err)
	}
	return true, nil
}
