package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Provider talks to the chat provider's graph API: resolving and
// downloading inbound media, and sending outbound text replies.
type Provider struct {
	BaseURL       string
	Token         string
	PhoneNumberID string
	HTTP          *http.Client
}

func NewProvider(baseURL, token, phoneNumberID string, timeout time.Duration) *Provider {
	return &Provider{
		BaseURL:       baseURL,
		Token:         token,
		PhoneNumberID: phoneNumberID,
		HTTP:          &http.Client{Timeout: timeout},
	}
}

type mediaInfo struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// ResolveMedia exchanges a media reference id for its download URL and
// declared MIME type.
func (p *Provider) ResolveMedia(ctx context.Context, mediaID string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/"+mediaID, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.Token)

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("resolve media %s: %w", mediaID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("resolve media %s: status %d", mediaID, resp.StatusCode)
	}

	var info mediaInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", "", fmt.Errorf("resolve media %s: %w", mediaID, err)
	}
	if info.URL == "" {
		return "", "", fmt.Errorf("resolve media %s: empty url", mediaID)
	}
	return info.URL, info.MimeType, nil
}

// DownloadMedia fetches the media binary. The blob behind a media URL is
// immutable, so a short exponential retry is safe.
func (p *Provider) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	var data []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+p.Token)

		resp, err := p.HTTP.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("download media: status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		data, err = io.ReadAll(resp.Body)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return data, nil
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

// SendText dispatches one outbound reply. The engine does not retry
// sends; a failure is the caller's to log.
func (p *Provider) SendText(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             sendText{Body: body},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", p.BaseURL, p.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send to %s: status %d", to, resp.StatusCode)
	}
	return nil
}
