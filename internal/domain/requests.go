package domain

import (
	"strings"

	"warranty/internal/phone"
)

type TelegramAuthRequest struct {
	Phone string `json:"phone"`
}

type AuthResponse struct {
	Status AuthStatus `json:"status"`
	User   *User      `json:"user,omitempty"`
	Token  string     `json:"token,omitempty"`
}

type RegisterRequest struct {
	TelegramID int64    `json:"telegram_id"`
	Phone      string   `json:"phone"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name,omitempty"`
	Role       UserRole `json:"role"`
	Company    string   `json:"company,omitempty"`
	RegionID   int64    `json:"region_id,omitempty"`
	DistrictID int64    `json:"district_id,omitempty"`
}

type UserUpdateRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type CreateWarrantyRequest struct {
	ProductCode    string `json:"product_code"`
	SerialNumber   string `json:"serial_number"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	WarrantyPeriod int    `json:"warranty_period"`
}

type CreateServiceRequest struct {
	SerialNumber string `json:"serial_number"`
	Problem      string `json:"problem"`
	Solution     string `json:"solution,omitempty"`
	IsWarranty   bool   `json:"is_warranty"`
	Price        int64  `json:"price"`
}

// Normalize canonicalizes the phone and reports the first invalid field.
func (r *TelegramAuthRequest) Normalize() error {
	r.Phone = phone.Normalize(r.Phone)
	if !phone.IsValid(r.Phone) {
		return invalid("phone", "invalid phone")
	}
	return nil
}

func (r *RegisterRequest) Normalize() error {
	r.Phone = phone.Normalize(r.Phone)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Company = strings.TrimSpace(r.Company)

	if !phone.IsValid(r.Phone) {
		return invalid("phone", "invalid phone")
	}
	if !r.Role.Valid() {
		return invalid("role", "unknown role")
	}
	if r.FirstName == "" {
		return invalid("first_name", "required")
	}
	// sellers and technicians belong to a shop
	if r.Role == RoleSeller || r.Role == RoleTechnician {
		if r.Company == "" {
			return invalid("company", "required")
		}
		if r.RegionID == 0 {
			return invalid("region_id", "required")
		}
		if r.DistrictID == 0 {
			return invalid("district_id", "required")
		}
	} else {
		r.Company, r.RegionID, r.DistrictID = "", 0, 0
	}
	return nil
}

func (r *UserUpdateRequest) Normalize() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" && r.LastName == "" {
		return invalid("first_name", "nothing to update")
	}
	return nil
}

func (r *CreateWarrantyRequest) Normalize() error {
	r.ProductCode = strings.ToUpper(strings.TrimSpace(r.ProductCode))
	r.SerialNumber = strings.ToUpper(strings.TrimSpace(r.SerialNumber))
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerPhone = phone.Normalize(r.CustomerPhone)

	switch {
	case r.ProductCode == "":
		return invalid("product_code", "required")
	case r.SerialNumber == "":
		return invalid("serial_number", "required")
	case r.CustomerName == "":
		return invalid("customer_name", "required")
	case !phone.IsValid(r.CustomerPhone):
		return invalid("customer_phone", "invalid phone")
	case r.WarrantyPeriod <= 0:
		return invalid("warranty_period", "must be positive")
	}
	return nil
}

func (r *CreateServiceRequest) Normalize() error {
	r.SerialNumber = strings.ToUpper(strings.TrimSpace(r.SerialNumber))
	r.Problem = strings.TrimSpace(r.Problem)
	r.Solution = strings.TrimSpace(r.Solution)

	switch {
	case r.SerialNumber == "":
		return invalid("serial_number", "required")
	case r.Problem == "":
		return invalid("problem", "required")
	case r.Price < 0:
		return invalid("price", "must not be negative")
	case r.IsWarranty && r.Price != 0:
		return invalid("price", "warranty repairs are free")
	}
	return nil
}
