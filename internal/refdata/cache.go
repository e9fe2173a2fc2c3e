// Package refdata caches the marketplace's slowly changing lookup tables
// (categories, brands, cargo providers) and resolves human names to
// marketplace-side numeric ids before a push.
package refdata

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/commercekit/marketsync/internal/trendyol"
)

// Kind selects one of the cached reference tables.
type Kind string

// Reference kinds.
const (
	KindCategory Kind = "category"
	KindBrand    Kind = "brand"
	KindCargo    Kind = "cargo"
)

// ParseKind validates a kind string from an API path or CLI flag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCategory, KindBrand, KindCargo:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown reference kind %q", s)
	}
}

// Entry is one row of a reference table.
type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Loader is the subset of the marketplace client the cache pulls from.
type Loader interface {
	ListCategories(ctx context.Context) ([]trendyol.Category, error)
	ListBrands(ctx context.Context, page, size int) (*trendyol.BrandPage, error)
	ListCargoProviders(ctx context.Context) ([]trendyol.CargoProvider, error)
}

const brandPageSize = 1000

// maxBrandPages bounds a full brand reload; the brand catalog is large but
// finite, and a runaway pagination loop must not hang an admin request.
const maxBrandPages = 50

// snapshot is one immutable fill of a reference table. Lookups only ever
// see a complete snapshot or none at all.
type snapshot struct {
	entries []Entry
	byName  map[string]int
}

// Cache is a read-through cache of marketplace reference data. A miss on an
// unloaded kind triggers a full reload of that kind (the marketplace has no
// single-item lookup). There is no TTL; staleness is tolerated between
// explicit invalidations.
type Cache struct {
	loader Loader

	mu   sync.Mutex
	data map[Kind]*snapshot
}

// New creates an empty cache over the given loader.
func New(loader Loader) *Cache {
	return &Cache{
		loader: loader,
		data:   map[Kind]*snapshot{},
	}
}

// Resolve returns the marketplace id for the named entry, loading the kind
// on first use. Name matching is case-insensitive. An unknown name in a
// loaded table is a not-found error; no reload is attempted for it.
func (c *Cache) Resolve(ctx context.Context, kind Kind, name string) (int, error) {
	snap, err := c.get(ctx, kind)
	if err != nil {
		return 0, err
	}

	if id, ok := snap.byName[strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, &trendyol.Error{
		Kind:    trendyol.KindNotFound,
		Message: fmt.Sprintf("unknown %s %q", kind, name),
	}
}

// Entries returns the current snapshot of a kind, loading it on first use.
func (c *Cache) Entries(ctx context.Context, kind Kind) ([]Entry, error) {
	snap, err := c.get(ctx, kind)
	if err != nil {
		return nil, err
	}
	return snap.entries, nil
}

// Invalidate drops the snapshot of a kind; the next Resolve or Entries
// call reloads it exactly once.
func (c *Cache) Invalidate(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, kind)
}

// get returns the snapshot for kind, loading under the lock so concurrent
// callers during a reload see either the finished new snapshot or block
// until it exists, never a partially filled one.
func (c *Cache) get(ctx context.Context, kind Kind) (*snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap, ok := c.data[kind]; ok {
		return snap, nil
	}

	entries, err := c.load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("loading %s reference data: %w", kind, err)
	}

	snap := &snapshot{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		snap.byName[strings.ToLower(e.Name)] = e.ID
	}
	c.data[kind] = snap

	return snap, nil
}

func (c *Cache) load(ctx context.Context, kind Kind) ([]Entry, error) {
	switch kind {
	case KindCategory:
		roots, err := c.loader.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return flattenCategories(roots, nil), nil

	case KindBrand:
		return c.loadBrands(ctx)

	case KindCargo:
		providers, err := c.loader.ListCargoProviders(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(providers))
		for _, p := range providers {
			entries = append(entries, Entry{ID: p.ID, Name: p.Name})
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
}

func (c *Cache) loadBrands(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	for page := 0; page < maxBrandPages; page++ {
		bp, err := c.loader.ListBrands(ctx, page, brandPageSize)
		if err != nil {
			return nil, err
		}
		if len(bp.Brands) == 0 {
			break
		}
		for _, b := range bp.Brands {
			entries = append(entries, Entry{ID: b.ID, Name: b.Name})
		}
		if bp.TotalPages != 0 && page >= bp.TotalPages-1 {
			break
		}
	}

	return entries, nil
}

// flattenCategories walks the category tree depth-first. Only leaf ids are
// valid targets for a product push, but every node is resolvable so the
// admin UI can browse intermediate levels.
func flattenCategories(nodes []trendyol.Category, acc []Entry) []Entry {
	for _, n := range nodes {
		acc = append(acc, Entry{ID: n.ID, Name: n.Name})
		acc = flattenCategories(n.SubCategories, acc)
	}
	return acc
}
