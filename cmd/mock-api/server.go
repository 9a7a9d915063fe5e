package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"warranty/internal/apiclient"
	"warranty/internal/config"
	"warranty/internal/domain"
	"warranty/internal/fallback"
)

type server struct {
	cfg   config.MockAPIConfig
	data  *fallback.Dataset
	idx   uint64
	rng   *rand.Rand
	rngMu sync.Mutex
	now   func() time.Time
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(s.outcomeMiddleware)

	v1.HandleFunc("/auth/telegram", s.handleTelegramAuth).Methods(http.MethodPost)
	v1.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	v1.HandleFunc("/users/{id}", s.handleUser).Methods(http.MethodGet, http.MethodPut)
	v1.HandleFunc("/products/serial/{serial}", s.handleSerial).Methods(http.MethodGet)
	v1.HandleFunc("/products/{code}", s.handleProduct).Methods(http.MethodGet)
	v1.HandleFunc("/warranties", s.handleWarranties).Methods(http.MethodGet)
	v1.HandleFunc("/warranties", s.handleCreateWarranty).Methods(http.MethodPost)
	v1.HandleFunc("/warranties/{id}", s.handleWarranty).Methods(http.MethodGet)
	v1.HandleFunc("/services", s.handleServices).Methods(http.MethodGet)
	v1.HandleFunc("/services", s.handleCreateService).Methods(http.MethodPost)
	v1.HandleFunc("/services/{id}", s.handleService).Methods(http.MethodGet)
	v1.HandleFunc("/stats/{role}/{id}", s.handleStats).Methods(http.MethodGet)
	v1.HandleFunc("/regions", s.handleRegions).Methods(http.MethodGet)
	v1.HandleFunc("/regions/{id}/districts", s.handleDistricts).Methods(http.MethodGet)
	return r
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		slog.Info("mock api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// outcomeMiddleware delays and fails requests according to MOCK_OUTCOME_MODE:
// ok, fail (always 500), weighted (MOCK_SUCCESS_RATE), unauthorized.
func (s *server) outcomeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.DelayMs > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(time.Duration(s.cfg.DelayMs) * time.Millisecond):
			}
		}
		switch s.nextOutcome() {
		case "fail":
			s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		case "unauthorized":
			s.writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) nextOutcome() string {
	switch strings.ToLower(s.cfg.OutcomeMode) {
	case "fail":
		return "fail"
	case "unauthorized":
		return "unauthorized"
	case "weighted":
		s.rngMu.Lock()
		ok := s.rng.Float64() <= s.cfg.SuccessRate
		s.rngMu.Unlock()
		if ok {
			return "ok"
		}
		return "fail"
	default:
		return "ok"
	}
}

func (s *server) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, apiclient.Envelope[any]{
		Success:    true,
		StatusCode: status,
		Data:       data,
		Path:       r.URL.Path,
		Method:     r.Method,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	})
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, apiclient.Envelope[any]{
		Success:    false,
		StatusCode: status,
		Message:    msg,
		Path:       r.URL.Path,
		Method:     r.Method,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, v interface{ Normalize() error }) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := v.Normalize(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *server) nextID() string {
	return strconv.FormatUint(atomic.AddUint64(&s.idx, 1)+100, 10)
}

func (s *server) handleTelegramAuth(w http.ResponseWriter, r *http.Request) {
	var req domain.TelegramAuthRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp := domain.AuthResponse{Status: domain.AuthStatus(strings.ToUpper(s.cfg.AuthStatus))}
	if resp.Status == domain.AuthCreated {
		u := s.data.User()
		u.Phone = req.Phone
		resp.User = &u
		resp.Token = "mock_" + uuid.NewString()
	}
	s.writeData(w, r, http.StatusOK, resp)
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}
	id, _ := strconv.ParseInt(s.nextID(), 10, 64)
	u := domain.User{
		ID:         id,
		TelegramID: strconv.FormatInt(req.TelegramID, 10),
		Phone:      req.Phone,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		Company:    req.Company,
		RegionID:   req.RegionID,
		DistrictID: req.DistrictID,
		Status:     domain.AuthRequested,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	// customers are approved right away, staff waits for an admin
	if u.Role == domain.RoleCustomer {
		u.Status = domain.AuthCreated
		s.writeData(w, r, http.StatusCreated, domain.AuthResponse{Status: u.Status, User: &u, Token: "mock_" + uuid.NewString()})
		return
	}
	s.writeData(w, r, http.StatusCreated, domain.AuthResponse{Status: u.Status, User: &u})
}

func (s *server) handleUser(w http.ResponseWriter, r *http.Request) {
	u := s.data.User()
	if mux.Vars(r)["id"] != strconv.FormatInt(u.ID, 10) {
		s.writeError(w, r, http.StatusNotFound, "User not found")
		return
	}
	if r.Method == http.MethodPut {
		var req domain.UserUpdateRequest
		if !s.decode(w, r, &req) {
			return
		}
		if req.FirstName != "" {
			u.FirstName = req.FirstName
		}
		if req.LastName != "" {
			u.LastName = req.LastName
		}
	}
	s.writeData(w, r, http.StatusOK, u)
}

func (s *server) handleProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.Product(mux.Vars(r)["code"])
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	s.writeData(w, r, http.StatusOK, p)
}

func (s *server) handleSerial(w http.ResponseWriter, r *http.Request) {
	check, ok := s.data.WarrantyBySerial(mux.Vars(r)["serial"], s.now())
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Serial number not found")
		return
	}
	s.writeData(w, r, http.StatusOK, check)
}

func (s *server) handleWarranties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeData(w, r, http.StatusOK, s.data.Warranties(domain.WarrantyFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}))
}

func (s *server) handleWarranty(w http.ResponseWriter, r *http.Request) {
	wr, ok := s.data.Warranty(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Warranty not found")
		return
	}
	s.writeData(w, r, http.StatusOK, wr)
}

func (s *server) handleCreateWarranty(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWarrantyRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, ok := s.data.Product(req.ProductCode)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	if _, taken := s.data.WarrantyBySerial(req.SerialNumber, s.now()); taken {
		s.writeError(w, r, http.StatusConflict, "Serial number already registered")
		return
	}
	now := s.now().UTC()
	wr := domain.Warranty{
		ID:             s.nextID(),
		ProductID:      p.ID,
		ProductCode:    p.Code,
		ProductName:    p.Name,
		SerialNumber:   req.SerialNumber,
		SellerID:       strconv.FormatInt(s.data.User().ID, 10),
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		WarrantyPeriod: req.WarrantyPeriod,
		Status:         domain.WarrantyActive,
		StartDate:      now.Format(time.DateOnly),
		ExpiryDate:     now.AddDate(0, req.WarrantyPeriod, 0).Format(time.DateOnly),
		CreatedAt:      now.Format(time.RFC3339),
		UpdatedAt:      now.Format(time.RFC3339),
	}
	s.writeData(w, r, http.StatusCreated, wr)
}

func (s *server) handleServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeData(w, r, http.StatusOK, s.data.Services(domain.ServiceFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}))
}

func (s *server) handleService(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.data.Service(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Service not found")
		return
	}
	s.writeData(w, r, http.StatusOK, svc)
}

func (s *server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceRequest
	if !s.decode(w, r, &req) {
		return
	}
	check, ok := s.data.WarrantyBySerial(req.SerialNumber, s.now())
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Serial number not found")
		return
	}
	now := s.now().UTC().Format(time.RFC3339)
	s.writeData(w, r, http.StatusCreated, domain.Service{
		ID:             s.nextID(),
		WarrantyID:     check.Warranty.ID,
		ProductCode:    check.Product.Code,
		ProductName:    check.Product.Name,
		SerialNumber:   req.SerialNumber,
		TechnicianID:   strconv.FormatInt(s.data.User().ID, 10),
		CustomerName:   check.Warranty.CustomerName,
		CustomerPhone:  check.Warranty.CustomerPhone,
		Problem:        req.Problem,
		Solution:       req.Solution,
		IsWarranty:     req.IsWarranty,
		Price:          req.Price,
		Status:         domain.ServicePending,
		WarrantyStatus: check.WarrantyStatus,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	switch domain.UserRole(mux.Vars(r)["role"]) {
	case domain.RoleSeller:
		s.writeData(w, r, http.StatusOK, s.data.SellerStats())
	case domain.RoleCustomer:
		s.writeData(w, r, http.StatusOK, s.data.CustomerStats())
	case domain.RoleTechnician:
		s.writeData(w, r, http.StatusOK, s.data.TechnicianStats())
	default:
		s.writeError(w, r, http.StatusNotFound, "Unknown role")
	}
}

func (s *server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, r, http.StatusOK, s.data.Regions())
}

func (s *server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, r, http.StatusOK, s.data.Districts(mux.Vars(r)["id"]))
}
