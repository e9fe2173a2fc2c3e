package trendyol

import (
	"fmt"
	"time"
)

// Product is a marketplace product card. Barcode is the natural key; the
// approved and onSale flags are owned by the marketplace and are only ever
// read by this system.
type Product struct {
	Barcode           string             `json:"barcode"`
	Title             string             `json:"title"`
	ProductMainID     string             `json:"productMainId"`
	BrandID           int                `json:"brandId"`
	CategoryID        int                `json:"categoryId"`
	Quantity          int                `json:"quantity"`
	StockCode         string             `json:"stockCode"`
	Description       string             `json:"description,omitempty"`
	CurrencyType      string             `json:"currencyType"`
	ListPrice         float64            `json:"listPrice"`
	SalePrice         float64            `json:"salePrice"`
	VATRate           int                `json:"vatRate"`
	CargoCompanyID    int                `json:"cargoCompanyId,omitempty"`
	DimensionalWeight float64            `json:"dimensionalWeight,omitempty"`
	Images            []ProductImage     `json:"images"`
	Attributes        []ProductAttribute `json:"attributes"`
	Approved          bool               `json:"approved,omitempty"`
	OnSale            bool               `json:"onSale,omitempty"`
	Brand             string             `json:"brand,omitempty"`
	CategoryName      string             `json:"categoryName,omitempty"`
}

// ProductImage is a single ordered product image.
type ProductImage struct {
	URL string `json:"url"`
}

// ProductAttribute binds a category attribute to either a predefined value
// id or a free-form custom value.
type ProductAttribute struct {
	AttributeID          int    `json:"attributeId"`
	AttributeValueID     int    `json:"attributeValueId,omitempty"`
	CustomAttributeValue string `json:"customAttributeValue,omitempty"`
	AttributeName        string `json:"attributeName,omitempty"`
	AttributeValue       string `json:"attributeValue,omitempty"`
}

// StockPriceUpdate is one line of a price-and-inventory batch.
type StockPriceUpdate struct {
	Barcode   string  `json:"barcode"`
	Quantity  int     `json:"quantity"`
	SalePrice float64 `json:"salePrice,omitempty"`
	ListPrice float64 `json:"listPrice,omitempty"`
}

// BatchState is the local view of a batch request's lifecycle.
type BatchState string

// Batch request states. Done and Failed are terminal; a batch never moves
// back out of a terminal state.
const (
	BatchPending    BatchState = "pending"
	BatchProcessing BatchState = "processing"
	BatchDone       BatchState = "done"
	BatchFailed     BatchState = "failed"
)

// Terminal reports whether the state is final.
func (s BatchState) Terminal() bool {
	return s == BatchDone || s == BatchFailed
}

// ParseBatchState maps an upstream batch status string to a BatchState.
// Unknown statuses are an error so that a new upstream state fails loudly
// instead of being silently misclassified.
func ParseBatchState(upstream string) (BatchState, error) {
	switch upstream {
	case "CREATED", "PENDING":
		return BatchPending, nil
	case "PROCESSING", "IN_PROGRESS":
		return BatchProcessing, nil
	case "DONE", "COMPLETED":
		return BatchDone, nil
	case "FAILED":
		return BatchFailed, nil
	default:
		return "", fmt.Errorf("unmapped batch status %q", upstream)
	}
}

// BatchStatus is the polled state of an asynchronous batch submission.
// Items preserve submission order so failure reasons can be matched back
// to the original input by index.
type BatchStatus struct {
	BatchRequestID   string      `json:"batchRequestId"`
	Status           string      `json:"status"`
	CreationDate     int64       `json:"creationDate,omitempty"`
	LastModification int64       `json:"lastModification,omitempty"`
	ItemCount        int         `json:"itemCount"`
	FailedItemCount  int         `json:"failedItemCount"`
	Items            []BatchItem `json:"items,omitempty"`
}

// BatchItem is the per-item outcome within a batch.
type BatchItem struct {
	RequestItem    BatchRequestItem `json:"requestItem"`
	Status         string           `json:"status"`
	FailureReasons []string         `json:"failureReasons,omitempty"`
}

// BatchRequestItem echoes the submitted line; only the barcode is needed
// to match failures back to input.
type BatchRequestItem struct {
	Barcode string `json:"barcode"`
}

// batchResponse is the submission acknowledgement. It never carries final
// approval status; that arrives via batch polling.
type batchResponse struct {
	BatchRequestID string `json:"batchRequestId"`
}

// Order is a marketplace order, read-only from this system's perspective.
type Order struct {
	ID                int64       `json:"id"`
	OrderNumber       string      `json:"orderNumber"`
	Status            string      `json:"status"`
	TotalPrice        float64     `json:"totalPrice"`
	CustomerFirstName string      `json:"customerFirstName"`
	CustomerLastName  string      `json:"customerLastName"`
	OrderDate         int64       `json:"orderDate"` // unix milliseconds
	Lines             []OrderItem `json:"lines"`
}

// OrderItem is a single order line.
type OrderItem struct {
	Barcode     string  `json:"barcode"`
	ProductName string  `json:"productName"`
	MerchantSKU string  `json:"merchantSku,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// PlacedAt converts the upstream millisecond timestamp to time.Time.
func (o Order) PlacedAt() time.Time {
	return time.UnixMilli(o.OrderDate)
}

// Order statuses controlled by the marketplace.
const (
	OrderStatusAwaiting  = "Awaiting"
	OrderStatusCreated   = "Created"
	OrderStatusPicking   = "Picking"
	OrderStatusInvoiced  = "Invoiced"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
	OrderStatusReturned  = "Returned"
)

// Category is a node in the marketplace category tree.
type Category struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	ParentID      int        `json:"parentId,omitempty"`
	SubCategories []Category `json:"subCategories,omitempty"`
}

// CategoryAttribute describes one attribute of a category's schema.
type CategoryAttribute struct {
	AttributeID      int              `json:"attributeId"`
	AttributeName    string           `json:"attributeName"`
	Required         bool             `json:"required"`
	AllowCustomValue bool             `json:"allowCustom"`
	Values           []AttributeValue `json:"attributeValues,omitempty"`
}

// AttributeValue is a predefined value option for a category attribute.
type AttributeValue struct {
	AttributeValueID int    `json:"attributeValueId"`
	Value            string `json:"value"`
}

// AttributeSchema is the full attribute schema of one category.
type AttributeSchema struct {
	CategoryID int                 `json:"id"`
	Name       string              `json:"name"`
	Attributes []CategoryAttribute `json:"categoryAttributes"`
}

// Brand is a marketplace brand entry.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CargoProvider is a shipment company the marketplace works with.
type CargoProvider struct {
	ID        int    `json:"id"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
	TaxNumber string `json:"taxNumber,omitempty"`
}

// Pagination is the upstream page envelope shared by paged responses.
type Pagination struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Content []Product `json:"content"`
	Pagination
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Content []Order `json:"content"`
	Pagination
}

// BrandPage is one page of the brand catalog.
type BrandPage struct {
	Brands []Brand `json:"brands"`
	Pagination
}

// ProductListQuery filters a product listing request.
type ProductListQuery struct {
	Page     int
	Size     int
	Approved *bool
	OnSale   *bool
	Barcode  string
}

// OrderListQuery filters an order listing request.
type OrderListQuery struct {
	Page      int
	Size      int
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}
