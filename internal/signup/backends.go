package signup

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/trader-ranker/internal/storage"
)

// Backend names, as used by SIGNUP_BACKEND.
const (
	NameLocal      = "local"
	NameMailchimp  = "mailchimp"
	NameConvertKit = "convertkit"
	NameButtondown = "buttondown"
	NameBeehiiv    = "beehiiv"
	NameWebhook    = "webhook"
)

// utmSource tags signups coming from this page on backends that support it.
const utmSource = "traderranker"

// BackendConfig is the static choice of where signups go. It is one of
// LocalConfig, MailchimpConfig, ConvertKitConfig, ButtondownConfig, BeehiivConfig or WebhookConfig.
// Building a backend fails with ErrIncompleteConfig when a required setting is missing.
type BackendConfig interface {
	build(client *http.Client) (Backend, error)
}

// LocalConfig stores signups in a storage slot instead of a third-party API.
type LocalConfig struct {
	Slot storage.Slot
}

func (c LocalConfig) build(*http.Client) (Backend, error) {
	if c.Slot == nil {
		return nil, fmt.Errorf("%w: local backend needs a storage slot", ErrIncompleteConfig)
	}
	return NewLocalBackend(c.Slot), nil
}

// MailchimpConfig adds members to a Mailchimp audience.
// The data center is taken from the API key suffix ("...-us21") unless BaseURL is set.
type MailchimpConfig struct {
	APIKey  string
	ListID  string
	BaseURL string
}

type mailchimpMember struct {
	EmailAddress    string            `json:"email_address"`
	Status          string            `json:"status"`
	MergeFields     map[string]string `json:"merge_fields,omitempty"`
	TimestampSignup string            `json:"timestamp_signup"`
}

func (c MailchimpConfig) build(client *http.Client) (Backend, error) {
	if err := required(NameMailchimp, "API key", c.APIKey, "list id", c.ListID); err != nil {
		return nil, err
	}
	base := c.BaseURL
	if base == "" {
		idx := strings.LastIndex(c.APIKey, "-")
		if idx < 0 || idx == len(c.APIKey)-1 {
			return nil, fmt.Errorf("%w: mailchimp API key has no data center suffix", ErrIncompleteConfig)
		}
		base = "https://" + c.APIKey[idx+1:] + ".api.mailchimp.com"
	}
	return &httpBackend{
		name:      NameMailchimp,
		client:    client,
		build:     func(s Signup) request { return c.request(base, s) },
		errorPath: "detail",
	}, nil
}

func (c MailchimpConfig) request(base string, s Signup) request {
	member := mailchimpMember{
		EmailAddress:    s.Email,
		Status:          "subscribed",
		TimestampSignup: s.Timestamp.UTC().Format(time.RFC3339),
	}
	if s.WalletAddress != "" {
		member.MergeFields = map[string]string{"WALLET": s.WalletAddress}
	}
	auth := base64.StdEncoding.EncodeToString([]byte("anystring:" + c.APIKey))
	return request{
		url:    strings.TrimRight(base, "/") + "/3.0/lists/" + url.PathEscape(c.ListID) + "/members",
		header: http.Header{"Authorization": {"Basic " + auth}},
		body:   member,
	}
}

// ConvertKitConfig subscribes to a ConvertKit form.
type ConvertKitConfig struct {
	APIKey  string
	FormID  string
	BaseURL string
}

type convertKitSubscribe struct {
	APIKey string            `json:"api_key"`
	Email  string            `json:"email"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (c ConvertKitConfig) build(client *http.Client) (Backend, error) {
	if err := required(NameConvertKit, "API key", c.APIKey, "form id", c.FormID); err != nil {
		return nil, err
	}
	base := orDefault(c.BaseURL, "https://api.convertkit.com")
	return &httpBackend{
		name:      NameConvertKit,
		client:    client,
		build:     func(s Signup) request { return c.request(base, s) },
		errorPath: "message",
	}, nil
}

func (c ConvertKitConfig) request(base string, s Signup) request {
	body := convertKitSubscribe{APIKey: c.APIKey, Email: s.Email}
	if s.WalletAddress != "" {
		body.Fields = map[string]string{"wallet_address": s.WalletAddress}
	}
	return request{
		url:  strings.TrimRight(base, "/") + "/v3/forms/" + url.PathEscape(c.FormID) + "/subscribe",
		body: body,
	}
}

// ButtondownConfig creates Buttondown subscribers.
type ButtondownConfig struct {
	APIKey  string
	BaseURL string
}

type buttondownSubscriber struct {
	EmailAddress string            `json:"email_address"`
	Metadata     map[string]string `json:"metadata"`
}

func (c ButtondownConfig) build(client *http.Client) (Backend, error) {
	if err := required(NameButtondown, "API key", c.APIKey); err != nil {
		return nil, err
	}
	base := orDefault(c.BaseURL, "https://api.buttondown.email")
	return &httpBackend{
		name:      NameButtondown,
		client:    client,
		build:     func(s Signup) request { return c.request(base, s) },
		errorPath: "detail",
	}, nil
}

func (c ButtondownConfig) request(base string, s Signup) request {
	metadata := map[string]string{"signed_up_at": s.Timestamp.UTC().Format(time.RFC3339)}
	if s.WalletAddress != "" {
		metadata["wallet_address"] = s.WalletAddress
	}
	return request{
		url:    strings.TrimRight(base, "/") + "/v1/subscribers",
		header: http.Header{"Authorization": {"Token " + c.APIKey}},
		body:   buttondownSubscriber{EmailAddress: s.Email, Metadata: metadata},
	}
}

// BeehiivConfig creates subscriptions on a beehiiv publication.
type BeehiivConfig struct {
	APIKey        string
	PublicationID string
	BaseURL       string
}

type beehiivField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type beehiivSubscription struct {
	Email              string         `json:"email"`
	ReactivateExisting bool           `json:"reactivate_existing"`
	SendWelcomeEmail   bool           `json:"send_welcome_email"`
	UTMSource          string         `json:"utm_source"`
	CustomFields       []beehiivField `json:"custom_fields,omitempty"`
}

func (c BeehiivConfig) build(client *http.Client) (Backend, error) {
	if err := required(NameBeehiiv, "API key", c.APIKey, "publication id", c.PublicationID); err != nil {
		return nil, err
	}
	base := orDefault(c.BaseURL, "https://api.beehiiv.com")
	return &httpBackend{
		name:      NameBeehiiv,
		client:    client,
		build:     func(s Signup) request { return c.request(base, s) },
		errorPath: "errors.0.message",
	}, nil
}

func (c BeehiivConfig) request(base string, s Signup) request {
	body := beehiivSubscription{
		Email:            s.Email,
		SendWelcomeEmail: true,
		UTMSource:        utmSource,
	}
	if s.WalletAddress != "" {
		body.CustomFields = []beehiivField{{Name: "wallet_address", Value: s.WalletAddress}}
	}
	return request{
		url:    strings.TrimRight(base, "/") + "/v2/publications/" + url.PathEscape(c.PublicationID) + "/subscriptions",
		header: http.Header{"Authorization": {"Bearer " + c.APIKey}},
		body:   body,
	}
}

// WebhookConfig posts signups to any JSON endpoint. Token is optional.
type WebhookConfig struct {
	URL   string
	Token string
}

type webhookSignup struct {
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress,omitempty"`
	Timestamp     string `json:"timestamp"`
}

func (c WebhookConfig) build(client *http.Client) (Backend, error) {
	if err := required(NameWebhook, "URL", c.URL); err != nil {
		return nil, err
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: webhook URL must be an absolute http(s) URL", ErrIncompleteConfig)
	}
	return &httpBackend{
		name:      NameWebhook,
		client:    client,
		build:     c.request,
		errorPath: "message",
	}, nil
}

func (c WebhookConfig) request(s Signup) request {
	header := http.Header{}
	if c.Token != "" {
		header.Set("Authorization", "Bearer "+c.Token)
	}
	return request{
		url:    c.URL,
		header: header,
		body: webhookSignup{
			Email:         s.Email,
			WalletAddress: s.WalletAddress,
			Timestamp:     s.Timestamp.UTC().Format(time.RFC3339),
		},
	}
}

// required checks label/value pairs and reports the first empty value.
func required(backend string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s %s is required", ErrIncompleteConfig, backend, pairs[i])
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
