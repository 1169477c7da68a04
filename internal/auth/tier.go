package auth

import (
	"context"
	"net"
	"net/http"

	"github.com/mgavilanes/campline-be/internal/access"
	"github.com/rs/zerolog/log"
)

const tierClaimsKey = contextKey("accessTier")

// Classifier resolves a network address to an access classification.
type Classifier interface {
	Classify(address string) (access.Classification, error)
}

// TierMiddleware classifies the caller's network address against the
// access table on every request and threads the result through the
// request context. A lookup failure degrades to unclassified so a
// storage error never grants access.
func TierMiddleware(classifier Classifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier, err := classifier.Classify(clientAddress(r))
			if err != nil {
				log.Error().Err(err).Msg("Access classification failed, treating caller as unclassified")
				tier = access.Classification{Tier: access.TierUnclassified}
			}
			ctx := context.WithValue(r.Context(), tierClaimsKey, tier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TierFromContext returns the caller's access classification, falling
// back to unclassified when the middleware did not run.
func TierFromContext(ctx context.Context) access.Classification {
	if c, ok := ctx.Value(tierClaimsKey).(access.Classification); ok {
		return c
	}
	return access.Classification{Tier: access.TierUnclassified}
}

// RequireAdmin rejects requests whose address does not classify as
// admin. It must run after TierMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !TierFromContext(r.Context()).IsAdmin() {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddress extracts the bare host from RemoteAddr. The RealIP
// middleware rewrites RemoteAddr to the forwarded address without a
// port, so both forms must be handled.
func clientAddress(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
