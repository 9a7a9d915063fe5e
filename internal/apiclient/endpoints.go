package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"warranty/internal/domain"
)

func (c *Client) TelegramAuth(ctx context.Context, req domain.TelegramAuthRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.Post(ctx, "/auth/telegram", req, &out); err != nil {
		return domain.AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.Post(ctx, "/auth/register", req, &out); err != nil {
		return domain.AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) User(ctx context.Context, id string) (domain.User, error) {
	return Request[domain.User](ctx, c, http.MethodGet, "/users/"+url.PathEscape(id), nil)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req domain.UserUpdateRequest) (domain.User, error) {
	var out domain.User
	if err := c.Put(ctx, "/users/"+url.PathEscape(id), req, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

func (c *Client) ProductByCode(ctx context.Context, code string) (domain.Product, error) {
	return Request[domain.Product](ctx, c, http.MethodGet, "/products/"+url.PathEscape(code), nil)
}

func (c *Client) CheckSerial(ctx context.Context, serial string) (domain.SerialCheck, error) {
	return Request[domain.SerialCheck](ctx, c, http.MethodGet, "/products/serial/"+url.PathEscape(serial), nil)
}

func (c *Client) Warranties(ctx context.Context, f domain.WarrantyFilter) ([]domain.Warranty, error) {
	q := url.Values{}
	set(q, "seller_id", f.SellerID)
	set(q, "customer_id", f.CustomerID)
	set(q, "status", f.Status)
	set(q, "search", f.Search)
	return Request[[]domain.Warranty](ctx, c, http.MethodGet, withQuery("/warranties", q), nil)
}

func (c *Client) Warranty(ctx context.Context, id string) (domain.Warranty, error) {
	return Request[domain.Warranty](ctx, c, http.MethodGet, "/warranties/"+url.PathEscape(id), nil)
}

func (c *Client) CreateWarranty(ctx context.Context, req domain.CreateWarrantyRequest) (domain.Warranty, error) {
	var out domain.Warranty
	if err := c.Post(ctx, "/warranties", req, &out); err != nil {
		return domain.Warranty{}, err
	}
	return out, nil
}

func (c *Client) Services(ctx context.Context, f domain.ServiceFilter) ([]domain.Service, error) {
	q := url.Values{}
	set(q, "technician_id", f.TechnicianID)
	set(q, "customer_id", f.CustomerID)
	set(q, "status", f.Status)
	set(q, "search", f.Search)
	return Request[[]domain.Service](ctx, c, http.MethodGet, withQuery("/services", q), nil)
}

func (c *Client) Service(ctx context.Context, id string) (domain.Service, error) {
	return Request[domain.Service](ctx, c, http.MethodGet, "/services/"+url.PathEscape(id), nil)
}

func (c *Client) CreateService(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	var out domain.Service
	if err := c.Post(ctx, "/services", req, &out); err != nil {
		return domain.Service{}, err
	}
	return out, nil
}

func (c *Client) SellerStats(ctx context.Context, id string) (domain.SellerStats, error) {
	return Request[domain.SellerStats](ctx, c, http.MethodGet, "/stats/seller/"+url.PathEscape(id), nil)
}

func (c *Client) CustomerStats(ctx context.Context, id string) (domain.CustomerStats, error) {
	return Request[domain.CustomerStats](ctx, c, http.MethodGet, "/stats/customer/"+url.PathEscape(id), nil)
}

func (c *Client) TechnicianStats(ctx context.Context, id string) (domain.TechnicianStats, error) {
	return Request[domain.TechnicianStats](ctx, c, http.MethodGet, "/stats/technician/"+url.PathEscape(id), nil)
}

func (c *Client) Regions(ctx context.Context) ([]domain.Region, error) {
	return Request[[]domain.Region](ctx, c, http.MethodGet, "/regions", nil)
}

func (c *Client) Districts(ctx context.Context, regionID string) ([]domain.District, error) {
	return Request[[]domain.District](ctx, c, http.MethodGet, "/regions/"+url.PathEscape(regionID)+"/districts", nil)
}

func set(q url.Values, k, v string) {
	if v != "" {
		q.Set(k, v)
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
