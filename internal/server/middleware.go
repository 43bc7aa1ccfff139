package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/amityadav/helpcenter/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const callerKey contextKey = "caller"

// AuthMiddleware verifies HS256 bearer tokens on tool endpoints
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates the middleware; an empty secret disables it
func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// Handler wraps next with token verification
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		// Token format: "Bearer <token>"
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthenticated", Message: "authorization token is not provided"})
			return
		}

		caller, err := m.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthenticated", Message: "invalid token: " + err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Verify checks the signature and expiry and returns the subject claim
func (m *AuthMiddleware) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", errors.New("token has no subject")
	}
	return subject, nil
}

// CallerFromContext returns the verified JWT subject
func CallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerKey).(string)
	return caller, ok
}

// zendeskTokenMiddleware forwards a caller-supplied Zendesk token to the search client
func zendeskTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := r.Header.Get(ZendeskTokenHeader); tok != "" {
			r = r.WithContext(auth.WithToken(r.Context(), tok))
		}
		next.ServeHTTP(w, r)
	})
}

// CreateRecoveryHandler wraps handler with panic recovery
func CreateRecoveryHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[PANIC RECOVERED] %v\n%s", err, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "InternalError", Message: "internal server error"})
			}
		}()
		handler.ServeHTTP(w, r)
	})
}

func formatSeconds(s float64) string {
	return strconv.Itoa(int(s + 0.5))
}
