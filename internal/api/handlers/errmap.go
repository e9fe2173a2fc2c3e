package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/commercekit/marketsync/internal/trendyol"
)

// mapError converts a sync/marketplace error to the HTTP error surfaced to
// the admin caller. The kind and message pass through verbatim; remediation
// hints are attached only for the two kinds an operator can self-fix by
// editing settings.
func mapError(err error) error {
	var merr *trendyol.Error
	if !errors.As(err, &merr) {
		return huma.Error500InternalServerError(err.Error())
	}

	msg := err.Error()

	switch merr.Kind {
	case trendyol.KindConfiguration:
		return huma.Error422UnprocessableEntity(
			msg + " (fix: set the api key, api secret, and supplier id under marketplace settings)")
	case trendyol.KindValidation:
		return huma.Error422UnprocessableEntity(msg)
	case trendyol.KindAuthentication:
		return huma.Error401Unauthorized(msg)
	case trendyol.KindAuthorization:
		if merr.AllowList {
			return huma.Error403Forbidden(
				msg + " (fix: have the marketplace operator allow-list this server's address)")
		}
		return huma.Error403Forbidden(
			msg + " (fix: check the API permissions granted to these credentials)")
	case trendyol.KindNotFound:
		return huma.Error404NotFound(msg)
	case trendyol.KindPrecondition:
		return huma.Error409Conflict(msg)
	case trendyol.KindTimeout:
		return huma.Error504GatewayTimeout(msg)
	case trendyol.KindTransientServer, trendyol.KindNetwork:
		return huma.Error502BadGateway(msg)
	default:
		return huma.Error500InternalServerError(msg)
	}
}
