package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

type callerKey struct{}

// Identity resolves the caller descriptor from the trusted gateway
// headers. Authentication itself happens upstream; by the time a
// request reaches this service the headers are authoritative.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			caller := domain.Caller{
				Subject: req.Header.Get("X-User-Id"),
				Role:    req.Header.Get("X-User-Role"),
			}
			if org := req.Header.Get("X-User-Organization"); org != "" {
				if id, err := strconv.ParseInt(org, 10, 64); err == nil {
					caller.OrganizationID = id
				}
			}

			ctx := context.WithValue(req.Context(), callerKey{}, caller)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// CallerFromContext returns the resolved caller; the zero caller (no
// role, no organization) has no data access.
func CallerFromContext(ctx context.Context) domain.Caller {
	caller, _ := ctx.Value(callerKey{}).(domain.Caller)
	return caller
}
