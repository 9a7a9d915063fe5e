package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"warranty/internal/apiclient"
	"warranty/internal/domain"
	"warranty/internal/fallback"
	"warranty/internal/i18n"
	"warranty/internal/util"
)

// envelope mirrors the upstream response wrapper so the Mini App parses the
// gateway and the API the same way.
type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Data       any    `json:"data"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Timestamp  string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, envelope{
		Success:    true,
		StatusCode: status,
		Data:       data,
		Path:       r.URL.Path,
		Method:     r.Method,
		Timestamp:  util.NowUTC().Format(time.RFC3339),
	})
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, envelope{
		Success:    false,
		StatusCode: status,
		Message:    msg,
		Error:      code,
		Path:       r.URL.Path,
		Method:     r.Method,
		Timestamp:  util.NowUTC().Format(time.RFC3339),
	})
}

// writeResult answers a read and tags it with where the data came from.
func writeResult[T any](w http.ResponseWriter, r *http.Request, res fallback.Result[T], err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set(HeaderDataSource, string(res.Source))
	writeData(w, r, http.StatusOK, res.Value)
}

func writeMutation(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, status, v)
}

// writeError maps local validation and upstream failures to a status and a
// message in the caller's language.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	lang := LanguageFrom(r.Context())

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		key := i18n.ValidationError
		if ve.Field == "phone" || ve.Field == "customer_phone" {
			key = i18n.InvalidPhone
		}
		writeFailure(w, r, http.StatusBadRequest, i18n.ValidationError, i18n.Message(lang, key, map[string]string{"field": ve.Field}))
		return
	}

	var ae *apiclient.Error
	if !errors.As(err, &ae) {
		slog.ErrorContext(r.Context(), "request failed", "err", err, "path", r.URL.Path)
		writeFailure(w, r, http.StatusInternalServerError, i18n.ServerError, i18n.Message(lang, i18n.ServerError, nil))
		return
	}

	switch {
	case ae.Status == 0:
		writeFailure(w, r, http.StatusBadGateway, i18n.NetworkError, i18n.Message(lang, i18n.NetworkError, nil))
	case ae.Status == http.StatusNotFound:
		writeFailure(w, r, ae.Status, i18n.NotFound, i18n.Message(lang, i18n.NotFound, nil))
	case ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden:
		writeFailure(w, r, ae.Status, i18n.Unauthorized, i18n.Message(lang, i18n.Unauthorized, nil))
	case ae.Status >= 500:
		writeFailure(w, r, ae.Status, i18n.ServerError, i18n.Message(lang, i18n.ServerError, nil))
	default:
		// other 4xx carry a backend explanation the user can act on
		msg := ae.Message
		if msg == "" {
			msg = i18n.Message(lang, i18n.ServerError, nil)
		}
		writeFailure(w, r, ae.Status, ErrUpstream, msg)
	}
}
