package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media-123", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"url":"https://cdn.example/blob","mime_type":"image/jpeg"}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "tok", "555", time.Second)
	url, mimeType, err := p.ResolveMedia(context.Background(), "media-123")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/blob", url)
	assert.Equal(t, "image/jpeg", mimeType)
}

func TestResolveMediaEmptyURLRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"mime_type":"image/jpeg"}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "tok", "555", time.Second)
	_, _, err := p.ResolveMedia(context.Background(), "media-123")

	assert.Error(t, err)
}

func TestDownloadMediaRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("binary"))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "tok", "555", time.Second)
	data, err := p.DownloadMedia(context.Background(), srv.URL+"/blob")

	require.NoError(t, err)
	assert.Equal(t, []byte("binary"), data)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestDownloadMediaClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "tok", "555", time.Second)
	_, err := p.DownloadMedia(context.Background(), srv.URL+"/blob")

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendTextPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/555/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "whatsapp", body["messaging_product"])
		assert.Equal(t, "23276000001", body["to"])
		assert.Equal(t, "text", body["type"])
		assert.Equal(t, map[string]interface{}{"body": "hello"}, body["text"])
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "tok", "555", time.Second)
	assert.NoError(t, p.SendText(context.Background(), "23276000001", "hello"))
}

func TestSendTextSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "tok", "555", time.Second)
	assert.Error(t, p.SendText(context.Background(), "23276000001", "hello"))
}
