package fallback

import (
	"slices"
	"sort"
	"strings"
	"time"

	"warranty/internal/domain"
)

// Dataset is the read-only demo data served when the API is unreachable.
// Accessors hand out copies; the records themselves are never mutated.
type Dataset struct {
	user            domain.User
	warranties      []domain.Warranty
	services        []domain.Service
	products        map[string]domain.Product
	sellerStats     domain.SellerStats
	customerStats   domain.CustomerStats
	technicianStats domain.TechnicianStats
	regions         []domain.Region
	districts       map[string][]domain.District
}

var std = newDataset()

// Default returns the process-wide dataset.
func Default() *Dataset { return std }

func (d *Dataset) User() domain.User { return d.user }

func (d *Dataset) Product(code string) (domain.Product, bool) {
	p, ok := d.products[strings.ToUpper(strings.TrimSpace(code))]
	return p, ok
}

func (d *Dataset) ProductCodes() []string {
	codes := make([]string, 0, len(d.products))
	for c := range d.products {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Warranties narrows by status and free-text search. Ownership filters are
// ignored: the whole dataset belongs to the one demo account.
func (d *Dataset) Warranties(f domain.WarrantyFilter) []domain.Warranty {
	out := make([]domain.Warranty, 0, len(d.warranties))
	for _, w := range d.warranties {
		if f.Status != "" && string(w.Status) != f.Status {
			continue
		}
		if !matches(f.Search, w.ProductName, w.ProductCode, w.SerialNumber, w.CustomerName, w.CustomerPhone) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (d *Dataset) Warranty(id string) (domain.Warranty, bool) {
	for _, w := range d.warranties {
		if w.ID == id {
			w.Services = d.servicesFor(w.ID)
			return w, true
		}
	}
	return domain.Warranty{}, false
}

// WarrantyBySerial derives active/expired from the expiry date at now.
func (d *Dataset) WarrantyBySerial(serial string, now time.Time) (domain.SerialCheck, bool) {
	serial = strings.ToUpper(strings.TrimSpace(serial))
	for _, w := range d.warranties {
		if strings.ToUpper(w.SerialNumber) != serial {
			continue
		}
		status := domain.WarrantyExpired
		if exp, err := time.Parse(time.DateOnly, w.ExpiryDate); err == nil && exp.After(now) {
			status = domain.WarrantyActive
		}
		p, ok := d.products[w.ProductCode]
		if !ok {
			p = domain.Product{ID: w.ProductID, Code: w.ProductCode, Name: w.ProductName, WarrantyMonths: w.WarrantyPeriod}
		}
		w.Status = status
		return domain.SerialCheck{Product: p, Warranty: &w, WarrantyStatus: status}, true
	}
	return domain.SerialCheck{}, false
}

func (d *Dataset) Services(f domain.ServiceFilter) []domain.Service {
	out := make([]domain.Service, 0, len(d.services))
	for _, s := range d.services {
		if f.Status != "" && string(s.Status) != f.Status {
			continue
		}
		if !matches(f.Search, s.ProductName, s.ProductCode, s.SerialNumber, s.CustomerName, s.Problem) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (d *Dataset) Service(id string) (domain.Service, bool) {
	for _, s := range d.services {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Service{}, false
}

func (d *Dataset) SellerStats() domain.SellerStats {
	s := d.sellerStats
	s.MonthlyTrend = slices.Clone(s.MonthlyTrend)
	return s
}

func (d *Dataset) CustomerStats() domain.CustomerStats { return d.customerStats }

func (d *Dataset) TechnicianStats() domain.TechnicianStats {
	s := d.technicianStats
	s.MonthlyTrend = slices.Clone(s.MonthlyTrend)
	return s
}

func (d *Dataset) Regions() []domain.Region { return slices.Clone(d.regions) }

// Districts of an unknown region is an empty list, not nil.
func (d *Dataset) Districts(regionID string) []domain.District {
	out := slices.Clone(d.districts[regionID])
	if out == nil {
		out = []domain.District{}
	}
	return out
}

func (d *Dataset) servicesFor(warrantyID string) []domain.Service {
	var out []domain.Service
	for _, s := range d.services {
		if s.WarrantyID == warrantyID {
			out = append(out, s)
		}
	}
	return out
}

func matches(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
