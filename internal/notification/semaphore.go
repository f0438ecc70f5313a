package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const semaphoreEndpoint = "https://api.semaphore.co/api/v4/messages"

// SemaphoreClient sends SMS through the Semaphore gateway (the provider
// used for PH mobile numbers).
type SemaphoreClient struct {
	apiKey     string
	senderName string
	httpClient *http.Client
}

func NewSemaphoreClient(apiKey, senderName string) *SemaphoreClient {
	return &SemaphoreClient{
		apiKey:     apiKey,
		senderName: senderName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *SemaphoreClient) Send(ctx context.Context, number, message string) error {
	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("number", number)
	form.Set("message", message)
	form.Set("sendername", c.senderName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, semaphoreEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("semaphore request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("semaphore returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
