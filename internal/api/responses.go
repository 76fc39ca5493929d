// Package api declares the JSON response envelopes shared by all handlers.
package api

// ErrorResponse carries a single user-displayable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse carries per-field validation messages for a rejected
// form submission. Keys are lowercase field names.
type FieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// MessageResponse carries a confirmation message for actions without a body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the token pair issued on login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
