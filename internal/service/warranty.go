package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"warranty/internal/domain"
	"warranty/internal/fallback"
)

// API is the remote warranty REST API, implemented by apiclient.Client.
type API interface {
	TelegramAuth(ctx context.Context, req domain.TelegramAuthRequest) (domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
	User(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, id string, req domain.UserUpdateRequest) (domain.User, error)
	ProductByCode(ctx context.Context, code string) (domain.Product, error)
	CheckSerial(ctx context.Context, serial string) (domain.SerialCheck, error)
	Warranties(ctx context.Context, f domain.WarrantyFilter) ([]domain.Warranty, error)
	Warranty(ctx context.Context, id string) (domain.Warranty, error)
	CreateWarranty(ctx context.Context, req domain.CreateWarrantyRequest) (domain.Warranty, error)
	Services(ctx context.Context, f domain.ServiceFilter) ([]domain.Service, error)
	Service(ctx context.Context, id string) (domain.Service, error)
	CreateService(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error)
	SellerStats(ctx context.Context, id string) (domain.SellerStats, error)
	CustomerStats(ctx context.Context, id string) (domain.CustomerStats, error)
	TechnicianStats(ctx context.Context, id string) (domain.TechnicianStats, error)
	Regions(ctx context.Context) ([]domain.Region, error)
	Districts(ctx context.Context, regionID string) ([]domain.District, error)
}

const (
	minProductCodeLen = 3
	minSerialLen      = 5
)

// WarrantyService is the data layer behind every screen. Reads degrade to the
// fallback dataset; mutations return the API error to the caller.
type WarrantyService struct {
	API      API
	Data     *fallback.Dataset
	Resolver *fallback.Resolver
	Now      func() time.Time
}

func New(api API, resolver *fallback.Resolver) *WarrantyService {
	return &WarrantyService{API: api, Data: fallback.Default(), Resolver: resolver, Now: time.Now}
}

func (s *WarrantyService) User(ctx context.Context, id string) (fallback.Result[domain.User], error) {
	if id == "" {
		return fallback.Result[domain.User]{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return fallback.Resolve(ctx, s.Resolver, "users", func(ctx context.Context) (domain.User, error) {
		return s.API.User(ctx, id)
	}, s.Data.User())
}

func (s *WarrantyService) ProductByCode(ctx context.Context, code string) (fallback.Result[domain.Product], error) {
	code = strings.TrimSpace(code)
	if len(code) < minProductCodeLen {
		return fallback.Result[domain.Product]{}, &domain.ValidationError{Field: "code", Reason: "too short"}
	}
	static, known := s.Data.Product(code)
	return resolveKnown(ctx, s.Resolver, "products", func(ctx context.Context) (domain.Product, error) {
		return s.API.ProductByCode(ctx, code)
	}, static, known)
}

func (s *WarrantyService) WarrantyBySerial(ctx context.Context, serial string) (fallback.Result[domain.SerialCheck], error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))
	if len(serial) < minSerialLen {
		return fallback.Result[domain.SerialCheck]{}, &domain.ValidationError{Field: "serial", Reason: "too short"}
	}
	static, known := s.Data.WarrantyBySerial(serial, s.now())
	return resolveKnown(ctx, s.Resolver, "products", func(ctx context.Context) (domain.SerialCheck, error) {
		return s.API.CheckSerial(ctx, serial)
	}, static, known)
}

func (s *WarrantyService) Warranties(ctx context.Context, f domain.WarrantyFilter) (fallback.Result[[]domain.Warranty], error) {
	return fallback.Resolve(ctx, s.Resolver, "warranties", func(ctx context.Context) ([]domain.Warranty, error) {
		return s.API.Warranties(ctx, f)
	}, s.Data.Warranties(f))
}

func (s *WarrantyService) Warranty(ctx context.Context, id string) (fallback.Result[domain.Warranty], error) {
	if id == "" {
		return fallback.Result[domain.Warranty]{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	static, known := s.Data.Warranty(id)
	return resolveKnown(ctx, s.Resolver, "warranties", func(ctx context.Context) (domain.Warranty, error) {
		return s.API.Warranty(ctx, id)
	}, static, known)
}

func (s *WarrantyService) Services(ctx context.Context, f domain.ServiceFilter) (fallback.Result[[]domain.Service], error) {
	return fallback.Resolve(ctx, s.Resolver, "services", func(ctx context.Context) ([]domain.Service, error) {
		return s.API.Services(ctx, f)
	}, s.Data.Services(f))
}

func (s *WarrantyService) Service(ctx context.Context, id string) (fallback.Result[domain.Service], error) {
	if id == "" {
		return fallback.Result[domain.Service]{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	static, known := s.Data.Service(id)
	return resolveKnown(ctx, s.Resolver, "services", func(ctx context.Context) (domain.Service, error) {
		return s.API.Service(ctx, id)
	}, static, known)
}

func (s *WarrantyService) SellerStats(ctx context.Context, id string) (fallback.Result[domain.SellerStats], error) {
	if id == "" {
		return fallback.Result[domain.SellerStats]{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return fallback.Resolve(ctx, s.Resolver, "stats", func(ctx context.Context) (domain.SellerStats, error) {
		return s.API.SellerStats(ctx, id)
	}, s.Data.SellerStats())
}

func (s *WarrantyService) CustomerStats(ctx context.Context, id string) (fallback.Result[domain.CustomerStats], error) {
	if id == "" {
		return fallback.Result[domain.CustomerStats]{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return fallback.Resolve(ctx, s.Resolver, "stats", func(ctx context.Context) (domain.CustomerStats, error) {
		return s.API.CustomerStats(ctx, id)
	}, s.Data.CustomerStats())
}

func (s *WarrantyService) TechnicianStats(ctx context.Context, id string) (fallback.Result[domain.TechnicianStats], error) {
	if id == "" {
		return fallback.Result[domain.TechnicianStats]{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return fallback.Resolve(ctx, s.Resolver, "stats", func(ctx context.Context) (domain.TechnicianStats, error) {
		return s.API.TechnicianStats(ctx, id)
	}, s.Data.TechnicianStats())
}

func (s *WarrantyService) Regions(ctx context.Context) (fallback.Result[[]domain.Region], error) {
	return fallback.Resolve(ctx, s.Resolver, "regions", s.API.Regions, s.Data.Regions())
}

func (s *WarrantyService) Districts(ctx context.Context, regionID string) (fallback.Result[[]domain.District], error) {
	if regionID == "" {
		return fallback.Result[[]domain.District]{}, &domain.ValidationError{Field: "region_id", Reason: "required"}
	}
	return fallback.Resolve(ctx, s.Resolver, "regions", func(ctx context.Context) ([]domain.District, error) {
		return s.API.Districts(ctx, regionID)
	}, s.Data.Districts(regionID))
}

func (s *WarrantyService) TelegramAuth(ctx context.Context, rawPhone string) (domain.AuthResponse, error) {
	req := domain.TelegramAuthRequest{Phone: rawPhone}
	if err := req.Normalize(); err != nil {
		return domain.AuthResponse{}, err
	}
	resp, err := s.API.TelegramAuth(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "telegram auth failed", "err", err)
		return domain.AuthResponse{}, err
	}
	return resp, nil
}

func (s *WarrantyService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	if err := req.Normalize(); err != nil {
		return domain.AuthResponse{}, err
	}
	resp, err := s.API.Register(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "register failed", "err", err, "telegram_id", req.TelegramID, "role", req.Role)
		return domain.AuthResponse{}, err
	}
	return resp, nil
}

func (s *WarrantyService) UpdateUser(ctx context.Context, id string, req domain.UserUpdateRequest) (domain.User, error) {
	if id == "" {
		return domain.User{}, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	if err := req.Normalize(); err != nil {
		return domain.User{}, err
	}
	u, err := s.API.UpdateUser(ctx, id, req)
	if err != nil {
		slog.ErrorContext(ctx, "update user failed", "err", err, "user_id", id)
		return domain.User{}, err
	}
	return u, nil
}

func (s *WarrantyService) CreateWarranty(ctx context.Context, req domain.CreateWarrantyRequest) (domain.Warranty, error) {
	if err := req.Normalize(); err != nil {
		return domain.Warranty{}, err
	}
	w, err := s.API.CreateWarranty(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "create warranty failed", "err", err, "product_code", req.ProductCode, "serial_number", req.SerialNumber)
		return domain.Warranty{}, err
	}
	return w, nil
}

func (s *WarrantyService) CreateService(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	if err := req.Normalize(); err != nil {
		return domain.Service{}, err
	}
	svc, err := s.API.CreateService(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "create service failed", "err", err, "serial_number", req.SerialNumber)
		return domain.Service{}, err
	}
	return svc, nil
}

func (s *WarrantyService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// resolveKnown only masks failures when the dataset has a record for the key;
// otherwise a made-up answer would be worse than the error.
func resolveKnown[T any](ctx context.Context, r *fallback.Resolver, resource string, call func(context.Context) (T, error), static T, known bool) (fallback.Result[T], error) {
	if known {
		return fallback.Resolve(ctx, r, resource, call, static)
	}
	v, err := call(ctx)
	if err != nil {
		return fallback.Result[T]{Err: err}, err
	}
	return fallback.Result[T]{Value: v, Source: fallback.Live}, nil
}
