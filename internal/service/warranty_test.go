package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warranty/internal/apiclient"
	"warranty/internal/domain"
	"warranty/internal/fallback"
)

func downService(t *testing.T) *WarrantyService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := &apiclient.Client{BaseURL: base, HTTP: &http.Client{Timeout: time.Second}}
	return New(c, &fallback.Resolver{})
}

func liveService(t *testing.T, h http.HandlerFunc) *WarrantyService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(&apiclient.Client{BaseURL: srv.URL, HTTP: srv.Client()}, &fallback.Resolver{})
}

func TestProductByCodeFallsBackWhenAPIIsDown(t *testing.T) {
	s := downService(t)

	res, err := s.ProductByCode(context.Background(), "IP15PRO")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if !res.IsFallback() || res.Value.Name != "iPhone 15 Pro" {
		t.Fatalf("unexpected result %+v", res)
	}
	if !apiclient.IsTransport(res.Err) {
		t.Fatalf("expected masked transport error, got %v", res.Err)
	}
}

func TestProductByCodeUnknownCodeIsNotMasked(t *testing.T) {
	s := downService(t)

	_, err := s.ProductByCode(context.Background(), "ZZZ999")
	if !apiclient.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestProductByCodeSendsCodeAsTyped(t *testing.T) {
	var path string
	s := liveService(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Product not found"}`)
	})

	_, err := s.ProductByCode(context.Background(), " xx-001 ")
	if path != "/products/xx-001" {
		t.Fatalf("unexpected upstream path %q", path)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductByCodeLowercaseFallsBack(t *testing.T) {
	s := downService(t)

	res, err := s.ProductByCode(context.Background(), " ip15pro ")
	if err != nil || !res.IsFallback() || res.Value.Code != "IP15PRO" {
		t.Fatalf("unexpected result %+v err=%v", res, err)
	}
}

func TestProductByCodeTooShort(t *testing.T) {
	s := downService(t)
	if _, err := s.ProductByCode(context.Background(), " ip"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLiveReadIsTaggedLive(t *testing.T) {
	s := liveService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"10","name":"Xorazm"}]}`)
	})

	res, err := s.Regions(context.Background())
	if err != nil {
		t.Fatalf("regions: %v", err)
	}
	if res.Source != fallback.Live || len(res.Value) != 1 || res.Value[0].Name != "Xorazm" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestEveryReadDegradesWhenAPIIsDown(t *testing.T) {
	s := downService(t)
	s.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	checks := map[string]func() (bool, error){
		"user": func() (bool, error) { r, err := s.User(ctx, "1"); return r.IsFallback(), err },
		"serial": func() (bool, error) {
			r, err := s.WarrantyBySerial(ctx, "dmpxk3jkxk")
			return r.IsFallback() && r.Value.WarrantyStatus == domain.WarrantyActive, err
		},
		"warranties": func() (bool, error) {
			r, err := s.Warranties(ctx, domain.WarrantyFilter{})
			return r.IsFallback() && len(r.Value) == 5, err
		},
		"warranty": func() (bool, error) {
			r, err := s.Warranty(ctx, "2")
			return r.IsFallback() && r.Value.ProductCode == "SGS24", err
		},
		"services": func() (bool, error) {
			r, err := s.Services(ctx, domain.ServiceFilter{})
			return r.IsFallback() && len(r.Value) == 4, err
		},
		"service": func() (bool, error) {
			r, err := s.Service(ctx, "4")
			return r.IsFallback() && r.Value.Price == 3500000, err
		},
		"seller": func() (bool, error) {
			r, err := s.SellerStats(ctx, "1")
			return r.IsFallback() && r.Value.TotalWarranties == 5, err
		},
		"customer": func() (bool, error) {
			r, err := s.CustomerStats(ctx, "1")
			return r.IsFallback() && r.Value.TotalServices == 2, err
		},
		"technician": func() (bool, error) {
			r, err := s.TechnicianStats(ctx, "1")
			return r.IsFallback() && r.Value.TotalEarnings == 5000000, err
		},
		"regions":   func() (bool, error) { r, err := s.Regions(ctx); return r.IsFallback() && len(r.Value) == 3, err },
		"districts": func() (bool, error) { r, err := s.Districts(ctx, "1"); return r.IsFallback() && len(r.Value) == 2, err },
	}
	for name, check := range checks {
		ok, err := check()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if !ok {
			t.Fatalf("%s: expected fallback data", name)
		}
	}
}

func TestMutationsSurfaceTransportErrors(t *testing.T) {
	s := downService(t)

	_, err := s.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		ProductCode: "IP15PRO", SerialNumber: "X1", CustomerName: "A", CustomerPhone: "901234567", WarrantyPeriod: 12,
	})
	if !apiclient.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMutationsValidateBeforeCalling(t *testing.T) {
	called := false
	s := liveService(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := s.CreateService(context.Background(), domain.CreateServiceRequest{SerialNumber: "S1"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.TelegramAuth(context.Background(), "90 12"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatalf("api must not be called for invalid input")
	}
}

func TestTelegramAuthSendsCanonicalPhone(t *testing.T) {
	var body string
	s := liveService(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = io.WriteString(w, `{"success":true,"data":{"status":"REQUESTED"}}`)
	})

	resp, err := s.TelegramAuth(context.Background(), "8 90 123 45 67")
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if resp.Status != domain.AuthRequested {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if body != `{"phone":"+998 90 123-45-67"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestDisabledResolverPropagates(t *testing.T) {
	s := downService(t)
	s.Resolver = &fallback.Resolver{Disabled: true}

	_, err := s.Regions(context.Background())
	var ae *apiclient.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected api error, got %v", err)
	}
}
