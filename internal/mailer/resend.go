// Package mailer delivers identity emails through the Resend HTTP API.
// Without an API key it only logs the messages, which keeps local
// development working with no external account.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

type Resend struct {
	apiKey   string
	from     string
	fromName string
	endpoint string
	client   *http.Client
}

func NewResend(apiKey, from, fromName string) *Resend {
	return &Resend{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *Resend) SendActivationEmail(ctx context.Context, to, name, activationURL string) error {
	return m.send(ctx, to,
		"Activate your Car Meet account",
		activationHTML(name, activationURL),
		fmt.Sprintf("Hi %s, welcome to Car Meet. Activate your account: %s", name, activationURL),
	)
}

func (m *Resend) SendActivationSuccessEmail(ctx context.Context, to, name string) error {
	return m.send(ctx, to,
		"Your account is active - Car Meet",
		activationSuccessHTML(name),
		fmt.Sprintf("Congratulations %s! Your Car Meet account has been activated.", name),
	)
}

func (m *Resend) SendVerificationCode(ctx context.Context, to, name, code string) error {
	return m.send(ctx, to,
		"Your verification code - Car Meet",
		verificationCodeHTML(name, code),
		fmt.Sprintf("Hi %s, your verification code is %s. It expires in 5 minutes.", name, code),
	)
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

func (m *Resend) send(ctx context.Context, to, subject, html, text string) error {
	if m.apiKey == "" {
		slog.Info("email delivery skipped, no API key configured", "to", to, "subject", subject)
		return nil
	}

	body, err := json.Marshal(sendRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.from),
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend: unexpected status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
