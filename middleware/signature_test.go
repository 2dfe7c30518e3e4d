package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func signedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook", VerifySignature(secret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValid(t *testing.T) {
	body := `{"object":"whatsapp_business_account"}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("topsecret", body))

	w := httptest.NewRecorder()
	signedRouter("topsecret").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"tampered":true}`))
	req.Header.Set("X-Hub-Signature-256", sign("topsecret", `{"original":true}`))

	w := httptest.NewRecorder()
	signedRouter("topsecret").ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifySignatureRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))

	w := httptest.NewRecorder()
	signedRouter("topsecret").ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifySignatureSkippedWithoutSecret(t *testing.T) {
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))

	w := httptest.NewRecorder()
	signedRouter("").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
