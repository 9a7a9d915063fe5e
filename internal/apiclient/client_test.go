package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"warranty/internal/domain"
)

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{BaseURL: srv.URL, HTTP: srv.Client()}
}

func TestNotFoundCarriesStatusAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	})

	_, err := c.ProductByCode(context.Background(), "NOPE")
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if ae.Status != http.StatusNotFound || ae.Message != "not found" {
		t.Fatalf("unexpected error %+v", ae)
	}
	if !IsNotFound(err) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("404 should match domain.ErrNotFound")
	}
}

func TestValidationMessageListIsJoined(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":["phone must be a valid phone number","first_name should not be empty"],"error":"Bad Request","code":"E_VALIDATION"}`)
	})

	_, err := c.Register(context.Background(), domain.RegisterRequest{Phone: "+998 90 123-45-67"})
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if ae.Status != 400 || ae.Code != "E_VALIDATION" || ae.Message != "phone must be a valid phone number, first_name should not be empty" {
		t.Fatalf("unexpected error %+v", ae)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("400 must not match ErrNotFound")
	}
}

func TestUnsuccessfulEnvelopeWithMessageList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"statusCode":422,"message":["serial_number is taken"],"data":null}`)
	})

	_, err := c.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{ProductCode: "IP15PRO"})
	var ae *Error
	if !errors.As(err, &ae) || ae.Status != 422 || ae.Message != "serial_number is taken" {
		t.Fatalf("unexpected error %+v", err)
	}
}

func TestUpdateUserUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/7" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(b), `"first_name":"Ali"`) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":7,"first_name":"Ali"}}`)
	})

	u, err := c.UpdateUser(context.Background(), "7", domain.UserUpdateRequest{FirstName: "Ali"})
	if err != nil || u.ID != 7 || u.FirstName != "Ali" {
		t.Fatalf("unexpected user %+v err=%v", u, err)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/with-error" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"bad serial","code":"E_SERIAL"}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Get(context.Background(), "/with-error", nil)
	var ae *Error
	if !errors.As(err, &ae) || ae.Message != "bad serial" || ae.Code != "E_SERIAL" || ae.Status != 400 {
		t.Fatalf("unexpected error %+v", err)
	}

	err = c.Get(context.Background(), "/plain", nil)
	if !errors.As(err, &ae) || ae.Message != "HTTP 500" {
		t.Fatalf("unexpected error %+v", err)
	}
}

func TestEnvelopeIsUnwrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"statusCode":200,"message":"ok","data":{"id":"1","code":"IP15PRO","name":"iPhone 15 Pro","warranty_months":12},"path":"/products/IP15PRO","method":"GET","timestamp":"2024-01-01T00:00:00Z"}`)
	})

	p, err := c.ProductByCode(context.Background(), "IP15PRO")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if p.Name != "iPhone 15 Pro" || p.WarrantyMonths != 12 {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestBareBodyIsReturnedVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"1","name":"Toshkent"}]`)
	})

	regions, err := c.Regions(context.Background())
	if err != nil {
		t.Fatalf("regions: %v", err)
	}
	if len(regions) != 1 || regions[0].Name != "Toshkent" {
		t.Fatalf("unexpected regions %+v", regions)
	}
}

func TestEnvelopeWithoutDataIsNotUnwrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"status":"CREATED"}`)
	})

	resp, err := c.TelegramAuth(context.Background(), domain.TelegramAuthRequest{Phone: "+998 90 123-45-67"})
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if resp.Status != domain.AuthCreated {
		t.Fatalf("expected CREATED, got %q", resp.Status)
	}
}

func TestEmptyBodyYieldsZeroValue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	u, err := c.User(context.Background(), "1")
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if u.ID != 0 || u.FirstName != "" {
		t.Fatalf("expected zero user, got %+v", u)
	}
}

func TestUnsuccessfulEnvelopeIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"statusCode":409,"message":"serial already registered","data":null}`)
	})

	_, err := c.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{})
	status, ok := StatusOf(err)
	if !ok || status != 409 {
		t.Fatalf("expected 409, got %v (%v)", status, err)
	}
}

func TestNetworkFailureIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := &Client{BaseURL: base, HTTP: &http.Client{Timeout: time.Second}}
	_, err := c.Regions(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMalformedBodyIsStatusZero(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	})

	_, err := c.Warranty(context.Background(), "1")
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestHeaders(t *testing.T) {
	var got http.Header
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{}`)
	})
	c.Tokens = staticToken("session-token")

	ctx := WithRequestID(context.Background(), "req_test")
	if _, err := c.CreateService(ctx, domain.CreateServiceRequest{SerialNumber: "S1", Problem: "p"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("content type %q", got.Get("Content-Type"))
	}
	if got.Get("Authorization") != "Bearer session-token" {
		t.Fatalf("authorization %q", got.Get("Authorization"))
	}
	if got.Get("X-Request-ID") != "req_test" {
		t.Fatalf("request id %q", got.Get("X-Request-ID"))
	}
	if !strings.Contains(gotBody, `"serial_number":"S1"`) {
		t.Fatalf("body %q", gotBody)
	}

	// a forwarded bearer wins over the token source
	if _, err := c.Regions(WithBearer(ctx, "caller-token")); err == nil {
		t.Fatalf("expected decode error for {} into a list")
	}
	if got.Get("Authorization") != "Bearer caller-token" {
		t.Fatalf("authorization %q", got.Get("Authorization"))
	}
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	})
	if err := c.Get(context.Background(), "/regions", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if auth != "" {
		t.Fatalf("unexpected authorization %q", auth)
	}
}

func TestWarrantyQuery(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})
	if _, err := c.Warranties(context.Background(), domain.WarrantyFilter{SellerID: "1", Status: "active"}); err != nil {
		t.Fatalf("warranties: %v", err)
	}
	if query != "seller_id=1&status=active" {
		t.Fatalf("query %q", query)
	}
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	c.Breaker = NewBreaker("test", 2, time.Minute)

	for i := 0; i < 2; i++ {
		if err := c.Get(context.Background(), "/regions", nil); err == nil {
			t.Fatalf("expected error")
		}
	}
	err := c.Get(context.Background(), "/regions", nil)
	if !IsTransport(err) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls)
	}
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c.Breaker = NewBreaker("test", 1, time.Minute)

	for i := 0; i < 3; i++ {
		if err := c.Get(context.Background(), "/products/X", nil); !IsNotFound(err) {
			t.Fatalf("expected 404, got %v", err)
		}
	}
}

func TestResourceOf(t *testing.T) {
	cases := map[string]string{
		"/warranties/42":       "warranties",
		"/warranties?status=a": "warranties",
		"/products/serial/X":   "products",
		"/":                    "root",
	}
	for in, want := range cases {
		if got := resourceOf(in); got != want {
			t.Fatalf("resourceOf(%q) = %q, want %q", in, got, want)
		}
	}
}
