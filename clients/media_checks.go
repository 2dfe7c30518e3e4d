package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SafetyClient submits an image to the external safety classifier and
// returns its label.
type SafetyClient struct {
	URL  string
	HTTP *http.Client
}

func NewSafetyClient(url string, timeout time.Duration) *SafetyClient {
	return &SafetyClient{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

type safetyResponse struct {
	Label string `json:"label"`
}

func (c *SafetyClient) Classify(ctx context.Context, data []byte, mimeType string) (string, error) {
	var out safetyResponse
	if err := postBinary(ctx, c.HTTP, c.URL, data, mimeType, &out); err != nil {
		return "", fmt.Errorf("safety check: %w", err)
	}
	return out.Label, nil
}

// ProbeClient asks the external duration probe how long an audio or
// video clip runs.
type ProbeClient struct {
	URL  string
	HTTP *http.Client
}

func NewProbeClient(url string, timeout time.Duration) *ProbeClient {
	return &ProbeClient{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

type probeResponse struct {
	DurationSeconds float64 `json:"duration_seconds"`
}

func (c *ProbeClient) Duration(ctx context.Context, data []byte, mimeType string) (float64, error) {
	var out probeResponse
	if err := postBinary(ctx, c.HTTP, c.URL, data, mimeType, &out); err != nil {
		return 0, fmt.Errorf("duration probe: %w", err)
	}
	return out.DurationSeconds, nil
}

// TranscribeClient sends a voice note to the transcription service.
type TranscribeClient struct {
	URL  string
	HTTP *http.Client
}

func NewTranscribeClient(url string, timeout time.Duration) *TranscribeClient {
	return &TranscribeClient{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

type transcribeResponse struct {
	Text string `json:"text"`
}

func (c *TranscribeClient) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	var out transcribeResponse
	if err := postBinary(ctx, c.HTTP, c.URL, data, mimeType, &out); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return out.Text, nil
}

func postBinary(ctx context.Context, client *http.Client, url string, data []byte, mimeType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
