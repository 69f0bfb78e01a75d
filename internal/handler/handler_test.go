package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/trader-ranker/internal/model"
	"github.com/AlexZinkM/trader-ranker/internal/signup"
	"github.com/AlexZinkM/trader-ranker/internal/wallet"
)

const testAddress = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

type fakeSession struct {
	address    string
	connectErr error
	trusted    bool
	disconnect int
}

func (f *fakeSession) Address() string { return f.address }

func (f *fakeSession) Connect(context.Context) (string, error) {
	if f.connectErr != nil {
		return "", f.connectErr
	}
	f.address = testAddress
	return f.address, nil
}

func (f *fakeSession) Disconnect(context.Context) {
	f.disconnect++
	f.address = ""
}

func (f *fakeSession) SilentReconnect(context.Context) bool {
	if f.trusted {
		f.address = testAddress
	}
	return f.trusted
}

type fakeBalances struct {
	balance *model.WalletBalance
	err     error
}

func (f fakeBalances) GetBalance(context.Context, string) (*model.WalletBalance, error) {
	return f.balance, f.err
}

type fakeSubmitter struct {
	err    error
	email  string
	wallet string
}

func (f *fakeSubmitter) Submit(_ context.Context, email, walletAddress string) error {
	f.email = email
	f.wallet = walletAddress
	return f.err
}

type fakeCounter int

func (c fakeCounter) Count(context.Context) (int, error) { return int(c), nil }

type failingCounter struct{ err error }

func (c failingCounter) Count(context.Context) (int, error) { return 0, c.err }

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestWalletConnect(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "no provider", err: wallet.ErrProviderUnavailable, wantStatus: http.StatusNotFound, wantCode: model.CodeProviderUnavailable},
		{name: "rejected", err: wallet.ErrUserRejected, wantStatus: http.StatusForbidden, wantCode: model.CodeUserRejected},
		{
			name:       "failed",
			err:        fmt.Errorf("%w: %w", wallet.ErrConnectionFailed, errors.New("boom")),
			wantStatus: http.StatusBadGateway,
			wantCode:   model.CodeConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWalletHandler(&fakeSession{connectErr: tt.err}, nil, nil)
			rec := httptest.NewRecorder()
			h.Connect(rec, httptest.NewRequest(http.MethodPost, "/wallet/connect", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.err == nil {
				resp := decode[model.WalletConnectResponse](t, rec)
				if !resp.Connected || resp.Address != testAddress || resp.ShortAddress != "9xQe...VFin" {
					t.Fatalf("unexpected response %+v", resp)
				}
				return
			}
			resp := decode[model.ErrorResponse](t, rec)
			if resp.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
			if tt.wantCode == model.CodeProviderUnavailable && resp.InstallURL != wallet.InstallURL {
				t.Fatalf("expected install url, got %q", resp.InstallURL)
			}
		})
	}
}

func TestWalletConnectMethod(t *testing.T) {
	h := NewWalletHandler(&fakeSession{}, nil, nil)
	rec := httptest.NewRecorder()
	h.Connect(rec, httptest.NewRequest(http.MethodGet, "/wallet/connect", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestWalletDisconnectAndReconnect(t *testing.T) {
	session := &fakeSession{address: testAddress, trusted: true}
	h := NewWalletHandler(session, nil, nil)

	rec := httptest.NewRecorder()
	h.Disconnect(rec, httptest.NewRequest(http.MethodPost, "/wallet/disconnect", nil))
	if rec.Code != http.StatusOK || session.disconnect != 1 {
		t.Fatalf("expected disconnect, got status %d calls %d", rec.Code, session.disconnect)
	}
	if resp := decode[model.WalletConnectResponse](t, rec); resp.Connected {
		t.Fatal("expected disconnected response")
	}

	rec = httptest.NewRecorder()
	h.Reconnect(rec, httptest.NewRequest(http.MethodPost, "/wallet/reconnect", nil))
	if resp := decode[model.WalletConnectResponse](t, rec); !resp.Connected || resp.Address != testAddress {
		t.Fatalf("expected silent reconnect, got %+v", resp)
	}

	session.trusted = false
	session.address = ""
	rec = httptest.NewRecorder()
	h.Reconnect(rec, httptest.NewRequest(http.MethodPost, "/wallet/reconnect", nil))
	if resp := decode[model.WalletConnectResponse](t, rec); resp.Connected {
		t.Fatalf("expected untrusted reconnect to stay disconnected, got %+v", resp)
	}
}

func TestWalletStatus(t *testing.T) {
	balance := &model.WalletBalance{SOL: "1.5", Rate: "150.00", USD: "225.00"}

	t.Run("disconnected", func(t *testing.T) {
		h := NewWalletHandler(&fakeSession{}, fakeBalances{balance: balance}, nil)
		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/wallet/status", nil))
		if resp := decode[model.WalletStatusResponse](t, rec); resp.Connected || resp.Balance != nil {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	t.Run("connected with balance", func(t *testing.T) {
		h := NewWalletHandler(&fakeSession{address: testAddress}, fakeBalances{balance: balance}, nil)
		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/wallet/status", nil))
		resp := decode[model.WalletStatusResponse](t, rec)
		if resp.ShortAddress != "9xQe...VFin" {
			t.Fatalf("unexpected short address %s", resp.ShortAddress)
		}
		if resp.DisplayAddress != "9xQeWvG8...9PusVFin" {
			t.Fatalf("unexpected display address %s", resp.DisplayAddress)
		}
		if resp.QR == "" {
			t.Fatal("expected QR code")
		}
		if resp.Balance == nil || resp.Balance.USD != "225.00" {
			t.Fatalf("unexpected balance %+v", resp.Balance)
		}
	})

	t.Run("balance lookup failure is not fatal", func(t *testing.T) {
		h := NewWalletHandler(&fakeSession{address: testAddress}, fakeBalances{err: errors.New("rpc down")}, nil)
		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/wallet/status", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if resp := decode[model.WalletStatusResponse](t, rec); !resp.Connected || resp.Balance != nil {
			t.Fatalf("unexpected response %+v", resp)
		}
	})
}

func TestSignupJoin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "success", body: `{"email":"a@b.co"}`, wantStatus: http.StatusOK},
		{name: "invalid email", body: `{"email":"nope"}`, wantStatus: http.StatusBadRequest, wantCode: model.CodeInvalidEmail},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest, wantCode: model.CodeBadRequest},
		{name: "duplicate", body: `{"email":"a@b.co"}`, err: signup.ErrDuplicateEmail, wantStatus: http.StatusConflict, wantCode: model.CodeDuplicateEmail},
		{
			name:       "remote rejected",
			body:       `{"email":"a@b.co"}`,
			err:        &signup.RemoteError{Backend: "webhook", Status: 400, Message: "bad request"},
			wantStatus: http.StatusBadGateway,
			wantCode:   model.CodeRemoteRejected,
		},
		{
			name:       "network",
			body:       `{"email":"a@b.co"}`,
			err:        fmt.Errorf("%w: webhook: %w", signup.ErrNetwork, errors.New("dial")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   model.CodeNetworkError,
		},
		{name: "unexpected", body: `{"email":"a@b.co"}`, err: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantCode: model.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSignupHandler(&fakeSubmitter{err: tt.err}, nil, nil, nil)
			rec := httptest.NewRecorder()
			h.Join(rec, httptest.NewRequest(http.MethodPost, "/waitlist", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode == "" {
				resp := decode[model.SignupResponse](t, rec)
				if !resp.Success || resp.Message != msgJoined {
					t.Fatalf("unexpected response %+v", resp)
				}
				return
			}
			resp := decode[model.ErrorResponse](t, rec)
			if resp.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestSignupJoinRemoteMessage(t *testing.T) {
	remote := &signup.RemoteError{Backend: "mailchimp", Status: 400, Message: "a@b.co is already a list member."}
	h := NewSignupHandler(&fakeSubmitter{err: remote}, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.Join(rec, httptest.NewRequest(http.MethodPost, "/waitlist", strings.NewReader(`{"email":"a@b.co"}`)))

	if resp := decode[model.ErrorResponse](t, rec); resp.Error != remote.Message {
		t.Fatalf("expected remote message, got %q", resp.Error)
	}
}

func TestSignupJoinAttachesSessionWallet(t *testing.T) {
	submitter := &fakeSubmitter{}
	h := NewSignupHandler(submitter, nil, &fakeSession{address: testAddress}, nil)

	rec := httptest.NewRecorder()
	h.Join(rec, httptest.NewRequest(http.MethodPost, "/waitlist", strings.NewReader(`{"email":" a@b.co "}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if submitter.email != "a@b.co" {
		t.Fatalf("expected trimmed email, got %q", submitter.email)
	}
	if submitter.wallet != testAddress {
		t.Fatalf("expected session wallet, got %q", submitter.wallet)
	}

	rec = httptest.NewRecorder()
	h.Join(rec, httptest.NewRequest(http.MethodPost, "/waitlist", strings.NewReader(`{"email":"c@d.co","walletAddress":"explicit"}`)))
	if submitter.wallet != "explicit" {
		t.Fatalf("expected request wallet to win, got %q", submitter.wallet)
	}
}

func TestSignupCount(t *testing.T) {
	rec := httptest.NewRecorder()
	NewSignupHandler(&fakeSubmitter{}, fakeCounter(3), nil, nil).Count(rec, httptest.NewRequest(http.MethodGet, "/waitlist/count", nil))
	if resp := decode[model.WaitlistCountResponse](t, rec); resp.Count != 3 {
		t.Fatalf("expected count 3, got %d", resp.Count)
	}

	rec = httptest.NewRecorder()
	NewSignupHandler(&fakeSubmitter{}, nil, nil, nil).Count(rec, httptest.NewRequest(http.MethodGet, "/waitlist/count", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without local store, got %d", rec.Code)
	}
}

func TestSignupCountHidesStoreError(t *testing.T) {
	storeErr := errors.New("failed to get traderRankerEmails: dial tcp 10.1.2.3:6379: connection refused")
	rec := httptest.NewRecorder()
	NewSignupHandler(&fakeSubmitter{}, failingCounter{err: storeErr}, nil, nil).Count(rec, httptest.NewRequest(http.MethodGet, "/waitlist/count", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	resp := decode[model.ErrorResponse](t, rec)
	if resp.Code != model.CodeInternal {
		t.Fatalf("expected code %s, got %s", model.CodeInternal, resp.Code)
	}
	if strings.Contains(resp.Error, "10.1.2.3") || strings.Contains(resp.Error, "traderRankerEmails") {
		t.Fatalf("store details leaked to client: %q", resp.Error)
	}
}
