package domain

type UserRole string

const (
	RoleSeller     UserRole = "seller"
	RoleCustomer   UserRole = "customer"
	RoleTechnician UserRole = "technician"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSeller, RoleCustomer, RoleTechnician:
		return true
	}
	return false
}

// AuthStatus is what the backend reports for a phone during login.
type AuthStatus string

const (
	AuthCreated   AuthStatus = "CREATED"
	AuthRequested AuthStatus = "REQUESTED"
	AuthNotFound  AuthStatus = "NOT_FOUND"
)

type WarrantyStatus string

const (
	WarrantyActive  WarrantyStatus = "active"
	WarrantyExpired WarrantyStatus = "expired"
	WarrantyPending WarrantyStatus = "pending"
	// WarrantyNone is only reported by serial lookups.
	WarrantyNone WarrantyStatus = "none"
)

type ServiceStatus string

const (
	ServicePending    ServiceStatus = "pending"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
	ServiceCancelled  ServiceStatus = "cancelled"
)

type User struct {
	ID         int64      `json:"id"`
	TelegramID string     `json:"telegram_id"`
	Phone      string     `json:"phone"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name,omitempty"`
	Role       UserRole   `json:"role"`
	Company    string     `json:"company,omitempty"`
	RegionID   int64      `json:"region_id,omitempty"`
	DistrictID int64      `json:"district_id,omitempty"`
	CreatedBy  *int64     `json:"created_by,omitempty"`
	Status     AuthStatus `json:"status"`
	CreatedAt  string     `json:"created_at"`
}

type Product struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Category       string `json:"category,omitempty"`
	Brand          string `json:"brand,omitempty"`
	WarrantyMonths int    `json:"warranty_months"`
}

type Warranty struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"product_id"`
	ProductCode    string         `json:"product_code"`
	ProductName    string         `json:"product_name"`
	SerialNumber   string         `json:"serial_number"`
	SellerID       string         `json:"seller_id"`
	SellerName     string         `json:"seller_name,omitempty"`
	CustomerID     string         `json:"customer_id,omitempty"`
	CustomerName   string         `json:"customer_name"`
	CustomerPhone  string         `json:"customer_phone"`
	WarrantyPeriod int            `json:"warranty_period"`
	Status         WarrantyStatus `json:"status"`
	StartDate      string         `json:"start_date"`
	ExpiryDate     string         `json:"expiry_date"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
	Services       []Service      `json:"services,omitempty"`
}

type Service struct {
	ID             string         `json:"id"`
	WarrantyID     string         `json:"warranty_id,omitempty"`
	ProductCode    string         `json:"product_code"`
	ProductName    string         `json:"product_name"`
	SerialNumber   string         `json:"serial_number"`
	TechnicianID   string         `json:"technician_id"`
	TechnicianName string         `json:"technician_name,omitempty"`
	CustomerName   string         `json:"customer_name"`
	CustomerPhone  string         `json:"customer_phone"`
	Problem        string         `json:"problem"`
	Solution       string         `json:"solution,omitempty"`
	IsWarranty     bool           `json:"is_warranty"`
	Price          int64          `json:"price"`
	Status         ServiceStatus  `json:"status"`
	WarrantyStatus WarrantyStatus `json:"warranty_status,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

// SerialCheck answers "is this unit under warranty".
type SerialCheck struct {
	Product        Product        `json:"product"`
	Warranty       *Warranty      `json:"warranty,omitempty"`
	WarrantyStatus WarrantyStatus `json:"warranty_status"`
}

type StatusCounts struct {
	Active  int `json:"active"`
	Expired int `json:"expired"`
	Pending int `json:"pending"`
}

type MonthCount struct {
	Month    string `json:"month"`
	Count    int    `json:"count"`
	Earnings int64  `json:"earnings,omitempty"`
}

type SellerStats struct {
	TotalWarranties   int          `json:"total_warranties"`
	ActiveWarranties  int          `json:"active_warranties"`
	ExpiredWarranties int          `json:"expired_warranties"`
	ThisMonth         int          `json:"this_month"`
	ThisWeek          int          `json:"this_week"`
	ByStatus          StatusCounts `json:"by_status"`
	MonthlyTrend      []MonthCount `json:"monthly_trend"`
}

type CustomerStats struct {
	TotalWarranties   int `json:"total_warranties"`
	ActiveWarranties  int `json:"active_warranties"`
	ExpiredWarranties int `json:"expired_warranties"`
	TotalServices     int `json:"total_services"`
	WarrantyServices  int `json:"warranty_services"`
	PaidServices      int `json:"paid_services"`
}

type TechnicianStats struct {
	TotalServices      int          `json:"total_services"`
	PendingServices    int          `json:"pending_services"`
	InProgressServices int          `json:"in_progress_services"`
	CompletedServices  int          `json:"completed_services"`
	WarrantyRepairs    int          `json:"warranty_repairs"`
	PaidRepairs        int          `json:"paid_repairs"`
	TotalEarnings      int64        `json:"total_earnings"`
	ThisMonthEarnings  int64        `json:"this_month_earnings"`
	MonthlyTrend       []MonthCount `json:"monthly_trend"`
}

type Region struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameUz string `json:"name_uz,omitempty"`
	NameRu string `json:"name_ru,omitempty"`
	NameEn string `json:"name_en,omitempty"`
}

type District struct {
	ID       string `json:"id"`
	RegionID string `json:"region_id"`
	Name     string `json:"name"`
	NameUz   string `json:"name_uz,omitempty"`
	NameRu   string `json:"name_ru,omitempty"`
	NameEn   string `json:"name_en,omitempty"`
}

type WarrantyFilter struct {
	SellerID   string
	CustomerID string
	Status     string
	Search     string
}

type ServiceFilter struct {
	TechnicianID string
	CustomerID   string
	Status       string
	Search       string
}
