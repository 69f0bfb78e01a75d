package main

import (
	"fmt"

	"github.com/AlexZinkM/trader-ranker/internal/config"
	"github.com/AlexZinkM/trader-ranker/internal/signup"
	"github.com/AlexZinkM/trader-ranker/internal/storage"
)

// backendConfig maps SIGNUP_BACKEND and its credentials to a signup backend.
// slot is only used by the local backend.
func backendConfig(cfg *config.Config, slot storage.Slot) (signup.BackendConfig, error) {
	switch cfg.SignupBackend {
	case signup.NameLocal:
		return signup.LocalConfig{Slot: slot}, nil
	case signup.NameMailchimp:
		return signup.MailchimpConfig{APIKey: cfg.Mailchimp.APIKey, ListID: cfg.Mailchimp.ListID}, nil
	case signup.NameConvertKit:
		return signup.ConvertKitConfig{APIKey: cfg.ConvertKit.APIKey, FormID: cfg.ConvertKit.FormID}, nil
	case signup.NameButtondown:
		return signup.ButtondownConfig{APIKey: cfg.Buttondown.APIKey}, nil
	case signup.NameBeehiiv:
		return signup.BeehiivConfig{APIKey: cfg.Beehiiv.APIKey, PublicationID: cfg.Beehiiv.PublicationID}, nil
	case signup.NameWebhook:
		return signup.WebhookConfig{URL: cfg.Webhook.URL, Token: cfg.Webhook.Token}, nil
	default:
		return nil, fmt.Errorf("unknown SIGNUP_BACKEND %q", cfg.SignupBackend)
	}
}
