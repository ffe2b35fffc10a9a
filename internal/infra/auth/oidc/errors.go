package oidc

import "errors"

// Kind is the stable machine-readable classification of an authentication
// failure. Values surface verbatim as the "code" field of error responses.
type Kind string

const (
	KindInvalidToken     Kind = "INVALID_TOKEN"
	KindExpiredToken     Kind = "EXPIRED_TOKEN"
	KindUnknownKey       Kind = "UNKNOWN_KEY"
	KindInvalidSignature Kind = "INVALID_SIGNATURE"
	KindIssuerMismatch   Kind = "ISSUER_MISMATCH"
	KindAudienceMismatch Kind = "AUDIENCE_MISMATCH"
	KindKeyFetchFailure  Kind = "KEY_FETCH_FAILURE"
)

// AuthError wraps the underlying cause with a Kind so the HTTP layer can map
// failures to response codes without string matching.
type AuthError struct {
	Kind Kind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

func newAuthError(kind Kind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

// AsAuthError extracts an *AuthError from err's chain, if present.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
