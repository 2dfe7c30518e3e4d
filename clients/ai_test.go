package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classify", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "burst pipe flooding the road", req["text"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"category":" Water ","summary":"Burst pipe on main road","urgency":"HIGH"}`))
	}))
	defer srv.Close()

	c := NewAIClient(srv.URL, "test-key", time.Second)
	got, err := c.Classify(context.Background(), "burst pipe flooding the road")

	require.NoError(t, err)
	assert.Equal(t, Classification{Category: "Water", Title: "Burst pipe on main road", Urgency: "high"}, got)
}

func TestClassifyUnknownUrgencyDefaultsToMedium(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"category":"Roads","summary":"Pothole","urgency":"extreme"}`))
	}))
	defer srv.Close()

	c := NewAIClient(srv.URL, "k", time.Second)
	got, err := c.Classify(context.Background(), "big pothole")

	require.NoError(t, err)
	assert.Equal(t, "medium", got.Urgency)
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"category":`))
		}},
		{"missing category", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"summary":"Pothole","urgency":"low"}`))
		}},
		{"missing summary", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"category":"Roads","urgency":"low"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewAIClient(srv.URL, "k", time.Second)
			_, err := c.Classify(context.Background(), "anything")

			assert.Error(t, err)
		})
	}
}
