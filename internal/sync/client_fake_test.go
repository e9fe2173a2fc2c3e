package sync_test

import (
	"context"
	"sync"

	"github.com/commercekit/marketsync/internal/trendyol"
)

// fakeClient is a hand-written trendyol.Client double. Responses are
// configured per method; calls are counted so tests can assert that
// validation failures never reach the network.
type fakeClient struct {
	mu sync.Mutex

	batchID   string
	createErr error
	stockErr  error

	createCalls int
	stockCalls  int
	pushedCards [][]trendyol.Product
	pushedItems [][]trendyol.StockPriceUpdate

	// batchStatuses are returned in order by successive GetBatchStatus
	// calls; the last one repeats.
	batchStatuses []trendyol.BatchStatus
	batchErr      error
	batchCalls    int

	orderPages map[int]*trendyol.OrderPage
	ordersErr  error

	categories []trendyol.Category
	brandPages []trendyol.BrandPage
	cargo      []trendyol.CargoProvider
	attrs      *trendyol.AttributeSchema
	products   *trendyol.ProductPage
}

func (f *fakeClient) Ready() bool { return true }

func (f *fakeClient) ListProducts(context.Context, trendyol.ProductListQuery) (*trendyol.ProductPage, error) {
	if f.products == nil {
		return &trendyol.ProductPage{}, nil
	}
	return f.products, nil
}

func (f *fakeClient) GetProductByBarcode(_ context.Context, barcode string) (*trendyol.Product, error) {
	if f.products != nil {
		for i := range f.products.Content {
			if f.products.Content[i].Barcode == barcode {
				return &f.products.Content[i], nil
			}
		}
	}
	return nil, &trendyol.Error{Kind: trendyol.KindNotFound}
}

func (f *fakeClient) CreateProducts(_ context.Context, items []trendyol.Product) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.pushedCards = append(f.pushedCards, items)
	return f.batchID, nil
}

func (f *fakeClient) UpdateStockAndPrice(_ context.Context, items []trendyol.StockPriceUpdate) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockCalls++
	if f.stockErr != nil {
		return "", f.stockErr
	}
	f.pushedItems = append(f.pushedItems, items)
	return f.batchID, nil
}

func (f *fakeClient) GetBatchStatus(context.Context, string) (*trendyol.BatchStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	i := f.batchCalls
	f.batchCalls++
	if i >= len(f.batchStatuses) {
		i = len(f.batchStatuses) - 1
	}
	status := f.batchStatuses[i]
	return &status, nil
}

func (f *fakeClient) ListOrders(_ context.Context, q trendyol.OrderListQuery) (*trendyol.OrderPage, error) {
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	if page, ok := f.orderPages[q.Page]; ok {
		return page, nil
	}
	return &trendyol.OrderPage{}, nil
}

func (f *fakeClient) ListCategories(context.Context) ([]trendyol.Category, error) {
	return f.categories, nil
}

func (f *fakeClient) GetCategoryAttributes(context.Context, int) (*trendyol.AttributeSchema, error) {
	if f.attrs == nil {
		return nil, &trendyol.Error{Kind: trendyol.KindNotFound}
	}
	return f.attrs, nil
}

func (f *fakeClient) ListBrands(_ context.Context, page, _ int) (*trendyol.BrandPage, error) {
	if page >= len(f.brandPages) {
		return &trendyol.BrandPage{}, nil
	}
	return &f.brandPages[page], nil
}

func (f *fakeClient) ListCargoProviders(context.Context) ([]trendyol.CargoProvider, error) {
	return f.cargo, nil
}
