package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"talentdesk/internal/config"
)

type EmailSender interface {
	Send(to []string, subject, body string) error
}

type WhatsAppSender interface {
	Send(phone, body string) error
}

// smtpSender delivers plain-text mail over SMTP. An unconfigured host
// fails the send immediately rather than silently dropping it.
type smtpSender struct {
	cfg config.SMTP
}

func NewSMTPSender(cfg config.SMTP) EmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to []string, subject, body string) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("smtp is not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")
	addr := s.cfg.Host + ":" + s.cfg.Port
	var a smtp.Auth
	if s.cfg.User != "" {
		a = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	return smtp.SendMail(addr, a, s.cfg.From, to, []byte(msg))
}

// whatsappSender posts to the provider's message API with a bearer
// token, the same way webhook notifiers post JSON payloads.
type whatsappSender struct {
	cfg    config.WhatsApp
	client *http.Client
}

func NewWhatsAppSender(cfg config.WhatsApp) WhatsAppSender {
	return &whatsappSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type whatsappMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (s *whatsappSender) Send(phone, body string) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("whatsapp provider is not configured")
	}
	payload, err := json.Marshal(whatsappMessage{From: s.cfg.Sender, To: phone, Body: body})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, s.cfg.ProviderURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp provider returned status %d", resp.StatusCode)
	}
	return nil
}
