// Package handlers implements the HTTP operations of the marketsync admin
// API.
package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/commercekit/marketsync/internal/trendyol"
)

// CredentialsHandler manages the marketplace credential tuple.
type CredentialsHandler struct {
	store *trendyol.CredentialStore
}

// NewCredentialsHandler creates a CredentialsHandler.
func NewCredentialsHandler(s *trendyol.CredentialStore) *CredentialsHandler {
	return &CredentialsHandler{store: s}
}

// SetCredentialsInput carries a full replacement credential tuple. Partial
// updates are not supported: replacement is atomic or not at all.
type SetCredentialsInput struct {
	Body struct {
		APIKey     string `json:"apiKey"     minLength:"1" doc:"Marketplace API key"`
		APISecret  string `json:"apiSecret"  minLength:"1" doc:"Marketplace API secret"`
		SupplierID string `json:"supplierId" minLength:"1" doc:"Supplier (seller) account id"`
	}
}

// SetCredentialsOutput reports the post-replacement readiness.
type SetCredentialsOutput struct {
	Body CredentialStatus
}

// CredentialStatus is the externally visible credential state. Secrets
// never leave the process.
type CredentialStatus struct {
	Configured bool   `json:"configured" doc:"True when all three credentials are set"`
	SupplierID string `json:"supplierId,omitempty" doc:"Configured supplier id"`
}

// SetCredentials atomically replaces the credential tuple. Readiness is
// re-evaluated immediately; in-flight requests keep the snapshot they
// started with, and the next request signs with the new tuple.
func (h *CredentialsHandler) SetCredentials(
	_ context.Context,
	input *SetCredentialsInput,
) (*SetCredentialsOutput, error) {
	h.store.Replace(trendyol.Credentials{
		APIKey:     input.Body.APIKey,
		APISecret:  input.Body.APISecret,
		SupplierID: input.Body.SupplierID,
	})

	resp := &SetCredentialsOutput{}
	resp.Body = h.status()
	return resp, nil
}

// GetStatusOutput is the response for the credential status endpoint.
type GetStatusOutput struct {
	Body CredentialStatus
}

// GetStatus reports whether the integration is configured.
func (h *CredentialsHandler) GetStatus(
	_ context.Context,
	_ *struct{},
) (*GetStatusOutput, error) {
	return &GetStatusOutput{Body: h.status()}, nil
}

func (h *CredentialsHandler) status() CredentialStatus {
	snap := h.store.Get()
	st := CredentialStatus{Configured: snap.Ready()}
	if st.Configured {
		st.SupplierID = snap.SupplierID
	}
	return st
}

// RegisterCredentialRoutes registers credential endpoints with the API.
func RegisterCredentialRoutes(api huma.API, h *CredentialsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "set-credentials",
		Method:      http.MethodPut,
		Path:        "/api/v1/credentials",
		Summary:     "Replace marketplace credentials",
		Description: "Atomically replaces the API key, secret, and supplier id used for all marketplace calls.",
		Tags:        []string{"credentials"},
	}, h.SetCredentials)

	huma.Register(api, huma.Operation{
		OperationID: "get-credential-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials/status",
		Summary:     "Get credential status",
		Description: "Reports whether the marketplace integration is fully configured.",
		Tags:        []string{"credentials"},
	}, h.GetStatus)
}
