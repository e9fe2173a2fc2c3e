// Package types holds the local domain model shared between the sync
// services, the API layer, and the CLI. These are the storefront-side
// shapes; marketplace wire shapes live in internal/trendyol.
package types

import "time"

// LocalProduct is a storefront product as the admin back-office sees it.
// SKU doubles as the marketplace barcode and stock code on push.
type LocalProduct struct {
	SKU           string            `json:"sku"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	DiscountPrice float64           `json:"discountPrice,omitempty"`
	Stock         int               `json:"stock"`
	VATRate       int               `json:"vatRate"`
	Images        []string          `json:"images,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// ProductDraft is a local product candidate built from a marketplace
// product during import. It is returned to the caller, which decides
// whether and how to persist it.
type ProductDraft struct {
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice,omitempty"`
	Stock         int      `json:"stock"`
	Images        []string `json:"images,omitempty"`
	Approved      bool     `json:"approved"`
	OnSale        bool     `json:"onSale"`
}

// ImportedOrder is a marketplace order flattened for local display and
// invoicing. Never written back to the marketplace.
type ImportedOrder struct {
	ID            int64       `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	Status        string      `json:"status"`
	TotalPrice    float64     `json:"totalPrice"`
	CustomerFirst string      `json:"customerFirstName"`
	CustomerLast  string      `json:"customerLastName"`
	OrderDate     time.Time   `json:"orderDate"`
	Lines         []OrderLine `json:"lines"`
}

// OrderLine is a single line of an imported order.
type OrderLine struct {
	Barcode     string  `json:"barcode"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceRef points at an invoice produced by the invoicing collaborator.
type InvoiceRef struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	OrderID       int64     `json:"orderId"`
	IssuedAt      time.Time `json:"issuedAt"`
	URL           string    `json:"url,omitempty"`
}
