package httpserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"warranty/internal/apiclient"
	"warranty/internal/i18n"
	"warranty/internal/observability"
	"warranty/internal/telegram"
	"warranty/internal/util"
)

const (
	HeaderRequestID  = "X-Request-ID"
	HeaderInitData   = "X-Telegram-Init-Data"
	HeaderDataSource = "X-Data-Source"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
			"request_id", apiclient.RequestIDFrom(r.Context()),
		)
	})
}

func Metrics(counter *prometheus.CounterVec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			counter.WithLabelValues(routeLabel(r), strconv.Itoa(sw.status)).Inc()
		})
	}
}

func routeLabel(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.URL.Path
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return r.URL.Path
	}
	return tpl
}

// RequestID reuses the caller's X-Request-ID or mints one, echoes it back and
// hands it to the upstream client.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if id == "" {
			id = util.NewRequestID()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(apiclient.WithRequestID(r.Context(), id)))
	})
}

// Bearer forwards the caller's token to upstream calls made for this request.
func Bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok && strings.TrimSpace(tok) != "" {
			r = r.WithContext(apiclient.WithBearer(r.Context(), strings.TrimSpace(tok)))
		}
		next.ServeHTTP(w, r)
	})
}

// InitData verifies Telegram WebApp init data and resolves the reply language.
// With an empty BotToken nothing is verified and only the language is set.
type InitData struct {
	BotToken string
	MaxAge   time.Duration
	Now      func() time.Time
}

func (m *InitData) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept-Language")
		ctx := withLanguage(r.Context(), i18n.Detect("", accept))
		if m.BotToken == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		r = r.WithContext(ctx)

		raw := r.Header.Get(HeaderInitData)
		if raw == "" {
			observability.InitData.WithLabelValues("missing").Inc()
			writeFailure(w, r, http.StatusUnauthorized, ErrMissingInitData, i18n.Message(LanguageFrom(ctx), i18n.Unauthorized, nil))
			return
		}
		now := time.Now
		if m.Now != nil {
			now = m.Now
		}
		d, err := telegram.Verify(m.BotToken, raw, m.MaxAge, now())
		if err != nil {
			observability.InitData.WithLabelValues("invalid").Inc()
			slog.WarnContext(ctx, "init data rejected", "err", err)
			writeFailure(w, r, http.StatusUnauthorized, ErrInvalidInitData, i18n.Message(LanguageFrom(ctx), i18n.Unauthorized, nil))
			return
		}
		observability.InitData.WithLabelValues("ok").Inc()

		if d.User != nil {
			ctx = withIdentity(ctx, d.User)
			ctx = withLanguage(ctx, i18n.Detect(d.User.LanguageCode, accept))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
