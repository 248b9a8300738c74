// Package notify posts release announcements to a chat webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/apkship/apkship/internal/errors"
	"github.com/apkship/apkship/internal/logging"
)

// Notifier delivers messages to a single webhook URL. Delivery is one HTTP
// POST of a JSON object with a free-text field; any non-2xx response is a
// failure.
type Notifier struct {
	url    string
	client *http.Client
	log    logging.Logger
}

// NewNotifier creates a Notifier for the given webhook URL. A nil client
// falls back to http.DefaultClient.
func NewNotifier(url string, client *http.Client, log logging.Logger) *Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &Notifier{url: url, client: client, log: log}
}

type message struct {
	Text string `json:"text"`
}

// Send posts the text to the webhook.
func (n *Notifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(message{Text: text})
	if err != nil {
		return errors.NewNotifyError("failed to encode message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return errors.NewNotifyError("failed to build webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.NewNotifyError("failed to post webhook", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewNotifyError(fmt.Sprintf("webhook returned status %d", resp.StatusCode), nil)
	}
	n.log.Info(ctx, "notification delivered", "status", resp.StatusCode)
	return nil
}
