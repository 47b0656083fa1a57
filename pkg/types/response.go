// Package types holds the wire envelopes shared by every JSON endpoint.
package types

// SuccessEnvelope wraps every 2xx payload under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body: a stable machine code plus a readable
// message, with optional per-field details from request validation.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the non-2xx counterpart of SuccessEnvelope.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
