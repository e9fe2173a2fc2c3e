package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// AttributeReader fetches a category's attribute schema.
type AttributeReader interface {
	GetCategoryAttributes(ctx context.Context, categoryID int) (*trendyol.AttributeSchema, error)
}

// RefdataHandler exposes the reference-data cache and category schemas.
type RefdataHandler struct {
	cache *refdata.Cache
	attrs AttributeReader
}

// NewRefdataHandler creates a RefdataHandler.
func NewRefdataHandler(cache *refdata.Cache, attrs AttributeReader) *RefdataHandler {
	return &RefdataHandler{cache: cache, attrs: attrs}
}

// ListRefdataInput selects the reference table to list.
type ListRefdataInput struct {
	Kind string `path:"kind" doc:"Reference kind" enum:"category,brand,cargo"`
}

// ListRefdataOutput is the full reference table.
type ListRefdataOutput struct {
	Body struct {
		Kind    string          `json:"kind"`
		Entries []refdata.Entry `json:"entries"`
	}
}

// ListRefdata returns the cached reference table, loading it from the
// marketplace on first use.
func (h *RefdataHandler) ListRefdata(
	ctx context.Context,
	input *ListRefdataInput,
) (*ListRefdataOutput, error) {
	kind, err := refdata.ParseKind(input.Kind)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	entries, err := h.cache.Entries(ctx, kind)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListRefdataOutput{}
	resp.Body.Kind = string(kind)
	resp.Body.Entries = entries
	return resp, nil
}

// InvalidateRefdataInput selects the reference table to drop.
type InvalidateRefdataInput struct {
	Kind string `path:"kind" doc:"Reference kind" enum:"category,brand,cargo"`
}

// InvalidateRefdataOutput acknowledges the invalidation.
type InvalidateRefdataOutput struct {
	Body struct {
		Kind        string `json:"kind"`
		Invalidated bool   `json:"invalidated"`
	}
}

// InvalidateRefdata drops the cached table; the next read reloads it.
func (h *RefdataHandler) InvalidateRefdata(
	_ context.Context,
	input *InvalidateRefdataInput,
) (*InvalidateRefdataOutput, error) {
	kind, err := refdata.ParseKind(input.Kind)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	h.cache.Invalidate(kind)

	resp := &InvalidateRefdataOutput{}
	resp.Body.Kind = string(kind)
	resp.Body.Invalidated = true
	return resp, nil
}

// GetCategoryAttributesInput names the category whose schema to fetch.
type GetCategoryAttributesInput struct {
	CategoryID int `path:"categoryId" doc:"Marketplace category id" minimum:"1"`
}

// GetCategoryAttributesOutput is the category's attribute schema.
type GetCategoryAttributesOutput struct {
	Body trendyol.AttributeSchema
}

// GetCategoryAttributes returns the attribute schema of one category,
// including required attributes and their allowed values.
func (h *RefdataHandler) GetCategoryAttributes(
	ctx context.Context,
	input *GetCategoryAttributesInput,
) (*GetCategoryAttributesOutput, error) {
	schema, err := h.attrs.GetCategoryAttributes(ctx, input.CategoryID)
	if err != nil {
		return nil, mapError(err)
	}

	return &GetCategoryAttributesOutput{Body: *schema}, nil
}

// RegisterRefdataRoutes registers reference-data endpoints with the API.
func RegisterRefdataRoutes(api huma.API, h *RefdataHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-refdata",
		Method:      http.MethodGet,
		Path:        "/api/v1/refdata/{kind}",
		Summary:     "List cached reference data",
		Tags:        []string{"refdata"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.ListRefdata)

	huma.Register(api, huma.Operation{
		OperationID: "invalidate-refdata",
		Method:      http.MethodPost,
		Path:        "/api/v1/refdata/{kind}/invalidate",
		Summary:     "Invalidate cached reference data",
		Description: "Drops the cached table so the next read reloads it from the marketplace.",
		Tags:        []string{"refdata"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.InvalidateRefdata)

	huma.Register(api, huma.Operation{
		OperationID: "get-category-attributes",
		Method:      http.MethodGet,
		Path:        "/api/v1/refdata/categories/{categoryId}/attributes",
		Summary:     "Get a category's attribute schema",
		Tags:        []string{"refdata"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.GetCategoryAttributes)
}
