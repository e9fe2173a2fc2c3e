package refdata_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// fakeLoader serves canned reference data and counts loads per kind.
type fakeLoader struct {
	categories []trendyol.Category
	brandPages []trendyol.BrandPage
	cargo      []trendyol.CargoProvider

	categoryLoads atomic.Int64
	brandLoads    atomic.Int64
	cargoLoads    atomic.Int64

	err error
}

func (f *fakeLoader) ListCategories(context.Context) ([]trendyol.Category, error) {
	f.categoryLoads.Add(1)
	return f.categories, f.err
}

func (f *fakeLoader) ListBrands(_ context.Context, page, _ int) (*trendyol.BrandPage, error) {
	f.brandLoads.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if page >= len(f.brandPages) {
		return &trendyol.BrandPage{}, nil
	}
	return &f.brandPages[page], nil
}

func (f *fakeLoader) ListCargoProviders(context.Context) ([]trendyol.CargoProvider, error) {
	f.cargoLoads.Add(1)
	return f.cargo, f.err
}

func categoryTree() []trendyol.Category {
	return []trendyol.Category{
		{
			ID:   1,
			Name: "Electronics",
			SubCategories: []trendyol.Category{
				{ID: 11, Name: "Phones", SubCategories: []trendyol.Category{
					{ID: 111, Name: "Smartphones"},
				}},
				{ID: 12, Name: "Laptops"},
			},
		},
		{ID: 2, Name: "Home"},
	}
}

func TestCache_ResolveCategory(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{categories: categoryTree()}
	cache := refdata.New(loader)

	tests := []struct {
		name    string
		lookup  string
		wantID  int
		wantErr bool
	}{
		{name: "root node", lookup: "Electronics", wantID: 1},
		{name: "nested leaf", lookup: "Smartphones", wantID: 111},
		{name: "case insensitive", lookup: "lAPtops", wantID: 12},
		{name: "unknown name", lookup: "Garden", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := cache.Resolve(context.Background(), refdata.KindCategory, tt.lookup)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, trendyol.IsKind(err, trendyol.KindNotFound))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}

	// The whole table loads exactly once, misses included.
	assert.EqualValues(t, 1, loader.categoryLoads.Load())
}

func TestCache_BrandPagination(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{
		brandPages: []trendyol.BrandPage{
			{
				Brands:     []trendyol.Brand{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}},
				Pagination: trendyol.Pagination{Page: 0, TotalPages: 2},
			},
			{
				Brands:     []trendyol.Brand{{ID: 3, Name: "Initech"}},
				Pagination: trendyol.Pagination{Page: 1, TotalPages: 2},
			},
		},
	}
	cache := refdata.New(loader)

	entries, err := cache.Entries(context.Background(), refdata.KindBrand)

	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.EqualValues(t, 2, loader.brandLoads.Load())

	id, err := cache.Resolve(context.Background(), refdata.KindBrand, "initech")
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{cargo: []trendyol.CargoProvider{{ID: 7, Name: "FastShip"}}}
	cache := refdata.New(loader)

	_, err := cache.Entries(context.Background(), refdata.KindCargo)
	require.NoError(t, err)
	_, err = cache.Entries(context.Background(), refdata.KindCargo)
	require.NoError(t, err)
	assert.EqualValues(t, 1, loader.cargoLoads.Load())

	cache.Invalidate(refdata.KindCargo)

	_, err = cache.Entries(context.Background(), refdata.KindCargo)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loader.cargoLoads.Load())
}

// Concurrent first-use resolves must trigger exactly one load.
func TestCache_ConcurrentSingleLoad(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{cargo: []trendyol.CargoProvider{{ID: 7, Name: "FastShip"}}}
	cache := refdata.New(loader)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := cache.Resolve(context.Background(), refdata.KindCargo, "FastShip")
			assert.NoError(t, err)
			assert.Equal(t, 7, id)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, loader.cargoLoads.Load())
}

func TestCache_LoadErrorNotCached(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{err: &trendyol.Error{Kind: trendyol.KindTransientServer}}
	cache := refdata.New(loader)

	_, err := cache.Entries(context.Background(), refdata.KindCategory)
	require.Error(t, err)
	assert.True(t, trendyol.IsKind(err, trendyol.KindTransientServer))

	// A failed load leaves no snapshot; recovery retries upstream.
	loader.err = nil
	loader.categories = categoryTree()

	entries, err := cache.Entries(context.Background(), refdata.KindCategory)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	assert.EqualValues(t, 2, loader.categoryLoads.Load())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"category", "brand", "cargo"} {
		kind, err := refdata.ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, refdata.Kind(valid), kind)
	}

	_, err := refdata.ParseKind("warehouse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warehouse")
}
