// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const operatorKey ctxKey = "operator"

// CertAuth is a middleware that enforces mutual TLS authentication.
//
// Requests without a verified client certificate are rejected. On success
// the Common Name (CN) of the certificate is stored in the request context
// as the operator editing the entries, so commits can be attributed.
func CertAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil || len(r.TLS.PeerCertificates) == 0 {
			http.Error(w, "no client certificate provided", http.StatusUnauthorized)
			return
		}
		cert := r.TLS.PeerCertificates[0]
		ctx := context.WithValue(r.Context(), operatorKey, cert.Subject.CommonName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorFromContext extracts the operator (Common Name from client certificate)
// from the request context. Returns an empty string if not found.
func GetOperatorFromContext(ctx context.Context) string {
	val := ctx.Value(operatorKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
