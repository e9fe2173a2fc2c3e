package trendyol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies a marketplace failure. Callers branch on the kind, never
// on raw HTTP status codes or transport errors.
type Kind string

// Error kinds surfaced by the client and the sync services.
const (
	// KindConfiguration: one or more credentials missing; no network call
	// was attempted.
	KindConfiguration Kind = "configuration"
	// KindAuthentication: credentials present but rejected upstream (401).
	KindAuthentication Kind = "authentication"
	// KindAuthorization: credentials valid but the operation is forbidden
	// (403), or the caller's address is not allow-listed (556).
	KindAuthorization Kind = "authorization"
	// KindTransientServer: upstream 5xx; safe to retry with backoff.
	KindTransientServer Kind = "transient_server"
	// KindNetwork: DNS, connection, or request timeout failure.
	KindNetwork Kind = "network"
	// KindValidation: malformed input, rejected locally or permanently
	// rejected upstream (4xx other than 401/403/404/556).
	KindValidation Kind = "validation"
	// KindNotFound: barcode, order, or reference id with no match.
	KindNotFound Kind = "not_found"
	// KindTimeout: batch polling exceeded its wait budget. The batch may
	// still complete upstream; re-poll rather than assume failure.
	KindTimeout Kind = "timeout"
	// KindPrecondition: the operation's local precondition does not hold,
	// e.g. invoicing an order whose status is not invoiceable.
	KindPrecondition Kind = "precondition"
)

// statusNotAllowListed is the marketplace-specific status returned when the
// caller's network address is not on the supplier's allow list.
const statusNotAllowListed = 556

// Error is the typed error every marketplace failure is classified into
// before it crosses the client boundary.
type Error struct {
	Kind    Kind
	Status  int    // upstream HTTP status, 0 when no response was received
	Message string
	// AllowList marks the 556 variant of KindAuthorization; remediation
	// differs from a plain 403 (contact the marketplace operator instead
	// of fixing API permissions).
	AllowList bool
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("trendyol: ")
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or "" if err is not a *Error.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return ""
}

// IsKind reports whether err classifies as the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// Retryable reports whether the caller may retry the failed operation.
// Transient upstream errors and network failures are retryable; everything
// else is a permanent rejection of the request as formed.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransientServer, KindNetwork:
		return true
	default:
		return false
	}
}

// errConfiguration builds the fail-fast error used before any network call.
func errConfiguration() *Error {
	return &Error{
		Kind:    KindConfiguration,
		Message: "marketplace credentials are not configured (api key, api secret, and supplier id are all required)",
	}
}

// apiErrorBody is the upstream error envelope. The marketplace sometimes
// returns a bare message, sometimes a list of coded errors.
type apiErrorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"errors"`
}

// classifyStatus maps an upstream HTTP status and response body to a typed
// error. Statuses below 400 must not be passed in.
func classifyStatus(status int, body []byte) *Error {
	msg := upstreamMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		return &Error{
			Kind:    KindAuthentication,
			Status:  status,
			Message: nonEmpty(msg, "credentials rejected by the marketplace"),
		}
	case status == statusNotAllowListed:
		return &Error{
			Kind:      KindAuthorization,
			Status:    status,
			AllowList: true,
			Message:   "request address is not on the marketplace allow list; ask the marketplace operator to allow-list this address",
		}
	case status == http.StatusForbidden:
		return &Error{
			Kind:    KindAuthorization,
			Status:  status,
			Message: nonEmpty(msg, "operation forbidden for these credentials"),
		}
	case status == http.StatusNotFound:
		return &Error{
			Kind:    KindNotFound,
			Status:  status,
			Message: nonEmpty(msg, "resource not found"),
		}
	case status >= 500:
		return &Error{
			Kind:    KindTransientServer,
			Status:  status,
			Message: nonEmpty(msg, "marketplace server error"),
		}
	default:
		// Remaining 4xx: the request was understood and permanently
		// rejected as formed.
		return &Error{
			Kind:    KindValidation,
			Status:  status,
			Message: nonEmpty(msg, "request rejected by the marketplace"),
		}
	}
}

// classifyTransport maps a transport-level failure (DNS, refused connection,
// timeout, canceled context) to a typed error.
func classifyTransport(err error) *Error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &nerr) && nerr.Timeout()) {
		return &Error{Kind: KindNetwork, Message: "request timed out", Err: err}
	}
	return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
}

func upstreamMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Non-JSON error page; keep a short prefix for the operator.
		s := strings.TrimSpace(string(body))
		if len(s) > 200 {
			s = s[:200]
		}
		return s
	}

	if len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			m := e.Message
			if e.Field != "" {
				m = fmt.Sprintf("%s (field %s)", m, e.Field)
			}
			if e.Code != "" {
				m = e.Code + ": " + m
			}
			msgs = append(msgs, m)
		}
		return strings.Join(msgs, "; ")
	}

	return parsed.Message
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
