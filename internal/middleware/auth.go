package middleware

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"orgadmin-service/pkg/errors"
)

// Claims are the session-token claims. Role is whatever the token issuer put
// there and is advisory only; authorization always re-resolves the actor's
// role from the organization membership list.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const claimsContextKey contextKey = "session-claims"

// SessionAuth verifies bearer session tokens and attaches the claims to the
// request context. The actor's identity (subject) is the only trusted output.
type SessionAuth struct {
	keyFunc jwt.Keyfunc
	methods []string
}

func NewSessionAuth(publicKey *rsa.PublicKey) *SessionAuth {
	return &SessionAuth{
		keyFunc: func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return publicKey, nil
		},
		methods: []string{"RS256"},
	}
}

// NewSessionAuthWithKeyfunc builds a verifier around an arbitrary key
// function. Tests use this with an HS256 secret.
func NewSessionAuthWithKeyfunc(keyFunc jwt.Keyfunc, methods ...string) *SessionAuth {
	return &SessionAuth{keyFunc: keyFunc, methods: methods}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			errors.WriteError(w, errors.Unauthorized("missing or invalid authorization header"))
			return
		}

		tokenStr := authHeader[7:]
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, a.keyFunc,
			jwt.WithValidMethods(a.methods))
		if err != nil || !token.Valid {
			errors.WriteError(w, errors.Unauthorized("invalid session token"))
			return
		}
		if claims.Subject == "" {
			errors.WriteError(w, errors.Unauthorized("session token has no subject"))
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims returns the verified session claims, or nil outside the
// authenticated chain.
func GetClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*Claims)
	return claims
}

// SetTestClaims injects claims into a context. Test helper only.
func SetTestClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}
