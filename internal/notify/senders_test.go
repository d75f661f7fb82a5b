package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talentdesk/internal/config"
)

func TestSMTPSenderUnconfigured(t *testing.T) {
	s := NewSMTPSender(config.SMTP{})
	if err := s.Send([]string{"a@x.com"}, "subject", "body"); err == nil {
		t.Error("send succeeded without an SMTP host")
	}
}

func TestWhatsAppSenderUnconfigured(t *testing.T) {
	s := NewWhatsAppSender(config.WhatsApp{})
	if err := s.Send("+15550001111", "body"); err == nil {
		t.Error("send succeeded without a provider URL")
	}
}

func TestWhatsAppSenderPostsToProvider(t *testing.T) {
	var got whatsappMessage
	var authz string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewWhatsAppSender(config.WhatsApp{ProviderURL: srv.URL, Token: "tok", Sender: "+15550009999"})
	if err := s.Send("+15550001111", "your ticket moved"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.To != "+15550001111" || got.From != "+15550009999" || got.Body != "your ticket moved" {
		t.Errorf("payload mismatch: %+v", got)
	}
	if authz != "Bearer tok" {
		t.Errorf("authorization = %q", authz)
	}
}

func TestWhatsAppSenderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewWhatsAppSender(config.WhatsApp{ProviderURL: srv.URL, Token: "tok"})
	if err := s.Send("+15550001111", "body"); err == nil {
		t.Error("provider 502 not surfaced as an error")
	}
}
