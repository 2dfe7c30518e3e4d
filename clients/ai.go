package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Classification is the AI analysis of a report description.
type Classification struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Urgency  string `json:"urgency"`
}

// AIClient calls the text-analysis collaborator that turns a free-text
// report into {category, title, urgency}. Callers must treat any error
// as "use the fallback", never as fatal.
type AIClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewAIClient(baseURL, apiKey string, timeout time.Duration) *AIClient {
	return &AIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Urgency  string `json:"urgency"`
}

func (c *AIClient) Classify(ctx context.Context, text string) (Classification, error) {
	payload, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Classification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return Classification{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("classify: status %d", resp.StatusCode)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	result := Classification{
		Category: strings.TrimSpace(out.Category),
		Title:    strings.TrimSpace(out.Summary),
		Urgency:  normalizeUrgency(out.Urgency),
	}
	if result.Category == "" || result.Title == "" {
		return Classification{}, fmt.Errorf("classify: incomplete response")
	}
	return result, nil
}

func normalizeUrgency(u string) string {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}
