package model

// SignupRequest represents request for POST /waitlist
type SignupRequest struct {
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// SignupResponse represents response for POST /waitlist
type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SignupRecord is one waitlist entry in the local fallback store.
// Records are kept in signup order.
type SignupRecord struct {
	Email         string `json:"email"`
	Timestamp     string `json:"timestamp"` // RFC 3339
	WalletAddress string `json:"walletAddress,omitempty"`
}

// WaitlistCountResponse represents response for GET /waitlist/count
type WaitlistCountResponse struct {
	Count int `json:"count"`
}
