package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const mailtrapEndpoint = "https://send.api.mailtrap.io/api/send"

// MailtrapClient sends transactional email through the Mailtrap API.
type MailtrapClient struct {
	apiToken   string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

func NewMailtrapClient(apiToken, fromEmail, fromName string) *MailtrapClient {
	return &MailtrapClient{
		apiToken:   apiToken,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapMessage struct {
	From     mailtrapAddress   `json:"from"`
	To       []mailtrapAddress `json:"to"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text"`
	Category string            `json:"category,omitempty"`
}

func (c *MailtrapClient) Send(ctx context.Context, to, subject, text, category string) error {
	msg := mailtrapMessage{
		From:     mailtrapAddress{Email: c.fromEmail, Name: c.fromName},
		To:       []mailtrapAddress{{Email: to}},
		Subject:  subject,
		Text:     text,
		Category: category,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mailtrapEndpoint,
		bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Token", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailtrap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailtrap returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
