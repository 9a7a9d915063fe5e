package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type ReadyzCheck func(ctx context.Context) error

func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func Readyz(timeout time.Duration, checks ...ReadyzCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		for _, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, ErrNotReady, http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}

var errBreakerOpen = errors.New("upstream circuit open")

// BreakerCheck fails while cb is open. A nil breaker is always ready.
func BreakerCheck(cb *gobreaker.CircuitBreaker) ReadyzCheck {
	return func(context.Context) error {
		if cb != nil && cb.State() == gobreaker.StateOpen {
			return errBreakerOpen
		}
		return nil
	}
}
