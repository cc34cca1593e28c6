package handlers

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Dosada05/tournament-manager/services"
)

const (
	loginRate  = rate.Limit(1) // попыток в секунду на адрес
	loginBurst = 5
	limiterTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter ограничивает перебор пароля: отдельный bucket на каждый RemoteAddr.
type loginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{visitors: make(map[string]*visitor), now: time.Now}
}

func (l *loginLimiter) allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterTTL {
			delete(l.visitors, key)
		}
	}

	v, ok := l.visitors[addr]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(loginRate, loginBurst)}
		l.visitors[addr] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

type AuthHandler struct {
	authService services.AuthService
	limiter     *loginLimiter
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     newLoginLimiter(),
	}
}

// Login godoc
// @Summary Вход администратора
// @Description Возвращает JWT, который нужно передавать в заголовке Authorization: Bearer <token>.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Пароль администратора"
// @Success 200 {object} map[string]string "token"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Failure 429 {object} map[string]string "Слишком много попыток"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.allow(clientAddr(r)) {
		rateLimitExceededResponse(w, r)
		return
	}

	var input services.LoginInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, jsonResponse{"token": token})
}

// clientAddr relies on chi's RealIP middleware having rewritten RemoteAddr.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
