package billing

import "errors"

var (
	// ErrIncompleteCallback: one of order id / payment id / signature missing.
	ErrIncompleteCallback = errors.New("incomplete callback payload")
	// ErrSignatureMismatch: HMAC verification failed; no state was changed.
	ErrSignatureMismatch = errors.New("signature mismatch")
	// ErrOrderNotFound: no payment log for the given order id.
	ErrOrderNotFound = errors.New("payment log not found for order")
	// ErrInvalidForm: the admin-request form failed validation.
	ErrInvalidForm = errors.New("invalid admin request form")
)
