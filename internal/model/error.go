package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	InstallURL string `json:"installUrl,omitempty"` // set when no wallet provider is available
}

// Error codes returned in ErrorResponse.Code
const (
	CodeProviderUnavailable = "provider_unavailable"
	CodeUserRejected        = "user_rejected"
	CodeConnectionFailed    = "connection_failed"
	CodeInvalidEmail        = "invalid_email"
	CodeDuplicateEmail      = "duplicate_email"
	CodeRemoteRejected      = "remote_rejected"
	CodeNetworkError        = "network_error"
	CodeRateLimited         = "rate_limited"
	CodeBadRequest          = "bad_request"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal"
)
