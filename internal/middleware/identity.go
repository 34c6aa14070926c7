package middleware

import (
	"fmt"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/auth"
)

// IdentityResolver maps an inbound request to a rate-limit identity key.
// A verifiable bearer token yields "user:<id>"; anything else falls back
// to "ip:<address>". Verification failure never rejects the request, rate
// limiting works for unauthenticated callers too.
type IdentityResolver struct {
	verifier auth.Verifier
}

// NewIdentityResolver creates an identity resolver.
func NewIdentityResolver(verifier auth.Verifier) *IdentityResolver {
	return &IdentityResolver{verifier: verifier}
}

// Resolve returns the identity key for a request.
func (r *IdentityResolver) Resolve(ctx huma.Context) string {
	if token := bearerToken(ctx); token != "" {
		if userID, err := r.verifier.Verify(token); err == nil {
			return fmt.Sprintf("user:%d", userID)
		}
	}

	return "ip:" + clientIP(ctx)
}

// bearerToken extracts the token from an Authorization header, if any.
func bearerToken(ctx huma.Context) string {
	header := ctx.Header("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}

	return ""
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	// X-Forwarded-For may contain multiple hops; the first is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}
