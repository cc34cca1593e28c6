package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-manager/services"
)

func TestLoginLimiterPerAddress(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := newLoginLimiter()
	l.now = func() time.Time { return now }

	for i := 0; i < loginBurst; i++ {
		assert.True(t, l.allow("10.0.0.1"), "attempt %d", i)
	}
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))

	now = now.Add(2 * time.Second)
	assert.True(t, l.allow("10.0.0.1"))

	now = now.Add(limiterTTL + time.Second)
	l.allow("10.0.0.3")
	assert.Len(t, l.visitors, 1)
}

func TestLoginHandler(t *testing.T) {
	auth, err := services.NewAuthService("123", "secret")
	require.NoError(t, err)
	h := NewAuthHandler(auth)
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.limiter.now = func() time.Time { return frozen }

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.RemoteAddr = "192.0.2.7:41234"
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	rec := login(`{"password":"123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	_, err = auth.ParseToken(out["token"])
	assert.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, login(`{"password":"nope"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, login(`{}`).Code)

	for i := 0; i < loginBurst; i++ {
		login(`{"password":"nope"}`)
	}
	assert.Equal(t, http.StatusTooManyRequests, login(`{"password":"123"}`).Code)
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:8080"
	assert.Equal(t, "2001:db8::1", clientAddr(req))

	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", clientAddr(req))
}
