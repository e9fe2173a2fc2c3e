package sync_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/marketsync/internal/refdata"
	syncer "github.com/commercekit/marketsync/internal/sync"
	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

func refdataClient() *fakeClient {
	return &fakeClient{
		batchID: "batch-1",
		categories: []trendyol.Category{
			{ID: 10, Name: "Electronics", SubCategories: []trendyol.Category{
				{ID: 101, Name: "Headphones"},
			}},
		},
		brandPages: []trendyol.BrandPage{
			{Brands: []trendyol.Brand{{ID: 55, Name: "Acme"}}},
		},
	}
}

func TestProductSync_Push(t *testing.T) {
	t.Parallel()

	client := refdataClient()
	ps := syncer.NewProductSync(client, refdata.New(client),
		syncer.WithCurrency("TRY"),
		syncer.WithCargoProvider(17),
	)

	batchID, err := ps.Push(context.Background(), domain.LocalProduct{
		SKU:           "SKU-1",
		Name:          "Noise Cancelling Headphones",
		Description:   "Over-ear",
		Brand:         "acme",
		Category:      "headphones",
		Price:         199.90,
		DiscountPrice: 149.90,
		Stock:         25,
		VATRate:       20,
		Images:        []string{"https://img.example/1.jpg"},
		Attributes:    map[string]string{"Color": "Black"},
	})

	require.NoError(t, err)
	assert.Equal(t, "batch-1", batchID)

	require.Len(t, client.pushedCards, 1)
	require.Len(t, client.pushedCards[0], 1)
	card := client.pushedCards[0][0]

	// The SKU serves as barcode, stock code, and main id upstream.
	assert.Equal(t, "SKU-1", card.Barcode)
	assert.Equal(t, "SKU-1", card.StockCode)
	assert.Equal(t, "SKU-1", card.ProductMainID)

	assert.Equal(t, 101, card.CategoryID)
	assert.Equal(t, 55, card.BrandID)
	assert.Equal(t, 17, card.CargoCompanyID)
	assert.Equal(t, "TRY", card.CurrencyType)
	assert.InDelta(t, 199.90, card.ListPrice, 0.001)
	assert.InDelta(t, 149.90, card.SalePrice, 0.001)
	assert.Equal(t, 25, card.Quantity)

	require.Len(t, card.Images, 1)
	require.Len(t, card.Attributes, 1)
	assert.Equal(t, "Color", card.Attributes[0].AttributeName)
	assert.Equal(t, "Black", card.Attributes[0].CustomAttributeValue)
}

func TestProductSync_PushPriceRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    float64
		discount float64
		wantSale float64
	}{
		{name: "no discount", price: 100, discount: 0, wantSale: 100},
		{name: "valid discount", price: 100, discount: 80, wantSale: 80},
		{name: "discount above price ignored", price: 100, discount: 120, wantSale: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := refdataClient()
			ps := syncer.NewProductSync(client, refdata.New(client))

			_, err := ps.Push(context.Background(), domain.LocalProduct{
				SKU:           "SKU-1",
				Name:          "Widget",
				Brand:         "Acme",
				Category:      "Headphones",
				Price:         tt.price,
				DiscountPrice: tt.discount,
			})

			require.NoError(t, err)
			card := client.pushedCards[0][0]
			assert.InDelta(t, tt.price, card.ListPrice, 0.001)
			assert.InDelta(t, tt.wantSale, card.SalePrice, 0.001)
		})
	}
}

func TestProductSync_PushUnknownReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		product domain.LocalProduct
	}{
		{
			name: "unknown category",
			product: domain.LocalProduct{
				SKU: "SKU-1", Name: "Widget", Brand: "Acme", Category: "Garden",
			},
		},
		{
			name: "unknown brand",
			product: domain.LocalProduct{
				SKU: "SKU-1", Name: "Widget", Brand: "Nonesuch", Category: "Headphones",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := refdataClient()
			ps := syncer.NewProductSync(client, refdata.New(client))

			_, err := ps.Push(context.Background(), tt.product)

			require.Error(t, err)
			assert.True(t, trendyol.IsKind(err, trendyol.KindNotFound))
			// Resolution failures reject before any submission.
			assert.Zero(t, client.createCalls)
		})
	}
}

func TestProductSync_Import(t *testing.T) {
	t.Parallel()

	client := refdataClient()
	ps := syncer.NewProductSync(client, refdata.New(client))

	draft := ps.Import(trendyol.Product{
		Barcode:     "868123",
		Title:       "Imported Widget",
		Description: "desc",
		Brand:       "Acme",
		Quantity:    7,
		ListPrice:   100,
		SalePrice:   80,
		Approved:    true,
		OnSale:      true,
		Images:      []trendyol.ProductImage{{URL: "https://img.example/1.jpg"}},
	})

	assert.Equal(t, "868123", draft.SKU)
	assert.Equal(t, "Imported Widget", draft.Name)
	assert.InDelta(t, 100, draft.Price, 0.001)
	assert.InDelta(t, 80, draft.DiscountPrice, 0.001)
	assert.Equal(t, 7, draft.Stock)
	assert.True(t, draft.Approved)
	assert.True(t, draft.OnSale)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, draft.Images)
}

func TestProductSync_ImportNoDiscount(t *testing.T) {
	t.Parallel()

	client := refdataClient()
	ps := syncer.NewProductSync(client, refdata.New(client))

	draft := ps.Import(trendyol.Product{
		Barcode:   "868123",
		Title:     "Widget",
		ListPrice: 100,
		SalePrice: 100,
	})

	assert.InDelta(t, 100, draft.Price, 0.001)
	assert.Zero(t, draft.DiscountPrice)
}
