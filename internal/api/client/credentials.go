package client

import (
	"context"
)

// CredentialStatus mirrors the daemon's credential status response.
type CredentialStatus struct {
	Configured bool   `json:"configured"`
	SupplierID string `json:"supplierId,omitempty"`
}

type credentialRequest struct {
	APIKey     string `json:"apiKey"`
	APISecret  string `json:"apiSecret"`
	SupplierID string `json:"supplierId"`
}

// SetCredentials replaces the daemon's marketplace credential tuple.
func (c *Client) SetCredentials(ctx context.Context, apiKey, apiSecret, supplierID string) (*CredentialStatus, error) {
	req := credentialRequest{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		SupplierID: supplierID,
	}
	var status CredentialStatus
	if err := c.put(ctx, "/api/v1/credentials", req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetCredentialStatus reports whether the daemon is configured for the
// marketplace.
func (c *Client) GetCredentialStatus(ctx context.Context) (*CredentialStatus, error) {
	var status CredentialStatus
	if err := c.get(ctx, "/api/v1/credentials/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
