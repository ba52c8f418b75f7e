package page

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, p Page, vis Visibility) error

func (f DelivererFunc) DeliverPage(ctx context.Context, p Page, vis Visibility) error {
	return f(ctx, p, vis)
}

// Webhook delivers pages by POSTing them as JSON to a bot binding's
// inbound endpoint, one request per page.
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook creates a Webhook deliverer for the given URL.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type webhookPayload struct {
	Page       Page       `json:"page"`
	Visibility Visibility `json:"visibility"`
}

// DeliverPage posts one page. A non-2xx response is an error; the
// caller decides whether to keep sending the remaining pages.
func (wh *Webhook) DeliverPage(ctx context.Context, p Page, vis Visibility) error {
	body, err := json.Marshal(webhookPayload{Page: p, Visibility: vis})
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := wh.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("deliver page: HTTP %d", resp.StatusCode)
	}
	return nil
}

// DeliverAll sends pages in order through d. Delivery failures are
// reported but never partial-retried: resolution state is already
// final by the time delivery starts.
func DeliverAll(ctx context.Context, d Deliverer, pages []Page, vis Visibility) error {
	for i, p := range pages {
		if err := d.DeliverPage(ctx, p, vis); err != nil {
			return fmt.Errorf("page %d/%d: %w", i+1, len(pages), err)
		}
	}
	return nil
}
