package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ReadBody reads a request body and puts it back so later handlers can
// read it again.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	return bodyBytes, nil
}

// NewTicketID returns a short shareable ticket code like "SW-3F9A21C4".
func NewTicketID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "SW-" + strings.ToUpper(raw[:8])
}

// TicketURL is the public link used in confirmations and alerts.
func TicketURL(host, ticketID string) string {
	return fmt.Sprintf("https://%s/?ticket=%s", host, ticketID)
}

// TitleCase capitalizes the first letter of each space-separated word
// and lowercases the rest.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
