package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AlexZinkM/trader-ranker/internal/model"
	"github.com/AlexZinkM/trader-ranker/internal/signup"

	"go.uber.org/zap"
)

const (
	msgJoined       = "Successfully joined the waitlist!"
	msgInvalidEmail = "Please enter a valid email address"
	msgDuplicate    = "Email already registered"
	msgRetry        = "Failed to submit. Please try again."
)

// Submitter delivers waitlist signups.
type Submitter interface {
	Submit(ctx context.Context, email, walletAddress string) error
}

// Counter reports how many signups are stored locally.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// AddressSource provides the connected wallet address, "" when none.
type AddressSource interface {
	Address() string
}

// SignupHandler serves the waitlist form.
type SignupHandler struct {
	submitter Submitter
	counter   Counter
	addresses AddressSource
	logger    *zap.Logger
}

// NewSignupHandler creates a SignupHandler. counter is nil when signups go to a third-party backend;
// addresses may be nil when no wallet session exists.
func NewSignupHandler(submitter Submitter, counter Counter, addresses AddressSource, logger *zap.Logger) *SignupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignupHandler{
		submitter: submitter,
		counter:   counter,
		addresses: addresses,
		logger:    logger.Named("signup_handler"),
	}
}

// Join handles POST /waitlist
// @Summary      Join the waitlist
// @Description  Validates the email and submits it to the configured backend. The connected wallet address is attached when the request has none.
// @Tags         waitlist
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignupRequest  true  "Signup"
// @Success      200      {object}  model.SignupResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /waitlist [post]
func (h *SignupHandler) Join(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req model.SignupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if !signup.Validate(email) {
		writeError(w, http.StatusBadRequest, model.CodeInvalidEmail, msgInvalidEmail)
		return
	}

	walletAddress := strings.TrimSpace(req.WalletAddress)
	if walletAddress == "" && h.addresses != nil {
		walletAddress = h.addresses.Address()
	}

	err := h.submitter.Submit(r.Context(), email, walletAddress)
	if err != nil {
		var remote *signup.RemoteError
		switch {
		case errors.Is(err, signup.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, model.CodeInvalidEmail, msgInvalidEmail)
		case errors.Is(err, signup.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, model.CodeDuplicateEmail, msgDuplicate)
		case errors.As(err, &remote):
			writeError(w, http.StatusBadGateway, model.CodeRemoteRejected, remote.Message)
		case errors.Is(err, signup.ErrNetwork):
			writeError(w, http.StatusServiceUnavailable, model.CodeNetworkError, msgRetry)
		default:
			h.logger.Error("email submission error", zap.Error(err))
			writeError(w, http.StatusInternalServerError, model.CodeInternal, msgRetry)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.SignupResponse{Success: true, Message: msgJoined})
}

// Count handles GET /waitlist/count
// @Summary      Local waitlist size
// @Description  Number of signups in the local fallback store. 404 when a third-party backend is active.
// @Tags         waitlist
// @Produce      json
// @Success      200  {object}  model.WaitlistCountResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /waitlist/count [get]
func (h *SignupHandler) Count(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if h.counter == nil {
		writeError(w, http.StatusNotFound, model.CodeNotFound, "signups are not stored locally")
		return
	}

	count, err := h.counter.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count signups", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, "failed to count signups")
		return
	}

	writeJSON(w, http.StatusOK, model.WaitlistCountResponse{Count: count})
}
