package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingHash = errors.New("init data: missing hash")
	ErrBadHash     = errors.New("init data: invalid hash")
	ErrExpired     = errors.New("init data: expired")
)

// User is the WebApp user as sent in init data.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

type InitData struct {
	User     *User
	QueryID  string
	AuthDate time.Time
	Hash     string
	Raw      url.Values
}

// Parse decodes init data without checking the signature.
func Parse(raw string) (InitData, error) {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return InitData{}, err
	}
	out := InitData{QueryID: v.Get("query_id"), Hash: v.Get("hash"), Raw: v}
	if s := v.Get("auth_date"); s != "" {
		sec, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return InitData{}, err
		}
		out.AuthDate = time.Unix(sec, 0).UTC()
	}
	if s := v.Get("user"); s != "" {
		var u User
		if err := json.Unmarshal([]byte(s), &u); err != nil {
			return InitData{}, err
		}
		out.User = &u
	}
	return out, nil
}

// Verify checks the init data signature for botToken and, when maxAge > 0,
// that auth_date is not older than maxAge at now.
func Verify(botToken, raw string, maxAge time.Duration, now time.Time) (InitData, error) {
	d, err := Parse(raw)
	if err != nil {
		return InitData{}, err
	}
	if d.Hash == "" {
		return InitData{}, ErrMissingHash
	}
	expected := Sign(botToken, d.Raw)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(d.Hash))) {
		return InitData{}, ErrBadHash
	}
	if maxAge > 0 && (d.AuthDate.IsZero() || now.Sub(d.AuthDate) > maxAge) {
		return InitData{}, ErrExpired
	}
	return d, nil
}

// Sign computes the hex hash Telegram puts in init data: HMAC-SHA256 over the
// sorted key=value lines (hash excluded), keyed by HMAC-SHA256("WebAppData", botToken).
func Sign(botToken string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+form.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
