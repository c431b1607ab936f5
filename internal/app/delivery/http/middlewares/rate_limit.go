package middlewares

import (
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimiter limits each client IP to MaxRequests per
// MaxTimeRequestsPerSeconds window.
func (m *Middlewares) RateLimiter() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.BuildNewCustomError(
				nil,
				exceptions.ErrKindBadRequest,
				constvars.StatusTooManyRequests,
				constvars.ErrClientTooManyRequests,
				constvars.ErrDevTooManyRequests,
			))
		}),
	)
}
