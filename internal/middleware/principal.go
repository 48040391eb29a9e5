package middleware

import (
	"context"
	"net/http"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// PrincipalHeader is the request header carrying the caller's opaque
// principal token. The registry never inspects the token's structure;
// verifying it (signatures, sessions) belongs to the transport layer in
// front of this service.
const PrincipalHeader = "X-Principal"

type principalKeyType struct{}

var principalKey principalKeyType

// NewPrincipalExtractor returns a middleware that copies the X-Principal
// header into the request context. A missing header is not rejected here —
// read-only endpoints work anonymously; handlers for mutating endpoints
// fail with 401 when PrincipalFrom finds nothing.
func NewPrincipalExtractor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := r.Header.Get(PrincipalHeader); p != "" {
				ctx := context.WithValue(r.Context(), principalKey, domain.Principal(p))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFrom returns the caller principal stored by NewPrincipalExtractor,
// and whether one was present on the request.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}
