package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/tournament-manager/services"
)

type stubParser map[string]error

func (s stubParser) ParseToken(token string) (jwt.MapClaims, error) {
	if err, ok := s[token]; ok {
		return nil, err
	}
	return jwt.MapClaims{"role": services.RoleAdmin}, nil
}

var parser = stubParser{
	"expired": errors.New("token is expired"),
	"player":  services.ErrForbiddenOperation,
}

func serve(mw func(http.Handler) http.Handler, authHeader string) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticate(t *testing.T) {
	auth := Authenticate(parser)

	rec, seen := serve(auth, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, services.IsPrivileged(seen.Context()))

	rec, seen = serve(auth, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, services.IsPrivileged(seen.Context()))
	role, err := RoleFromContext(seen.Context())
	assert.NoError(t, err)
	assert.Equal(t, services.RoleAdmin, role)

	rec, _ = serve(auth, "bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, header := range []string{"Bearer expired", "Basic abc", "Bearer ", "token"} {
		rec, seen = serve(auth, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Nil(t, seen)
	}

	rec, _ = serve(auth, "Bearer player")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	h := func(next http.Handler) http.Handler {
		return Authenticate(parser)(RequireAdmin(next))
	}

	rec, seen := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	rec, seen = serve(h, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, seen)
}
