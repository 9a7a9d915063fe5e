package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"warranty/internal/domain"
	"warranty/internal/i18n"
	"warranty/internal/phone"
	"warranty/internal/service"
)

type API struct {
	Svc *service.WarrantyService
}

func (a *API) Register(r *mux.Router) {
	r.HandleFunc("/auth/telegram", a.handleTelegramAuth).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", a.handleRegister).Methods(http.MethodPost)

	r.HandleFunc("/users/{id}", a.handleUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", a.handleUpdateUser).Methods(http.MethodPut)

	r.HandleFunc("/products/serial/{serial}", a.handleSerial).Methods(http.MethodGet)
	r.HandleFunc("/products/{code}", a.handleProduct).Methods(http.MethodGet)

	r.HandleFunc("/warranties", a.handleWarranties).Methods(http.MethodGet)
	r.HandleFunc("/warranties", a.handleCreateWarranty).Methods(http.MethodPost)
	r.HandleFunc("/warranties/{id}", a.handleWarranty).Methods(http.MethodGet)

	r.HandleFunc("/services", a.handleServices).Methods(http.MethodGet)
	r.HandleFunc("/services", a.handleCreateService).Methods(http.MethodPost)
	r.HandleFunc("/services/{id}", a.handleService).Methods(http.MethodGet)

	r.HandleFunc("/stats/seller/{id}", a.handleSellerStats).Methods(http.MethodGet)
	r.HandleFunc("/stats/customer/{id}", a.handleCustomerStats).Methods(http.MethodGet)
	r.HandleFunc("/stats/technician/{id}", a.handleTechnicianStats).Methods(http.MethodGet)

	r.HandleFunc("/regions", a.handleRegions).Methods(http.MethodGet)
	r.HandleFunc("/regions/{id}/districts", a.handleDistricts).Methods(http.MethodGet)

	r.HandleFunc("/phone/normalize", a.handleNormalizePhone).Methods(http.MethodPost)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, r, http.StatusBadRequest, ErrInvalidJSON, i18n.Message(LanguageFrom(r.Context()), i18n.ValidationError, map[string]string{"field": "body"}))
		return false
	}
	return true
}

func (a *API) handleTelegramAuth(w http.ResponseWriter, r *http.Request) {
	var req domain.TelegramAuthRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := a.Svc.TelegramAuth(r.Context(), req.Phone)
	writeMutation(w, r, http.StatusOK, resp, err)
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	// the verified Telegram identity wins over whatever the body claims
	if u, ok := IdentityFrom(r.Context()); ok {
		req.TelegramID = u.ID
		if req.FirstName == "" {
			req.FirstName = u.FirstName
		}
		if req.LastName == "" {
			req.LastName = u.LastName
		}
	}
	resp, err := a.Svc.Register(r.Context(), req)
	writeMutation(w, r, http.StatusCreated, resp, err)
}

func (a *API) handleUser(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.User(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.UserUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := a.Svc.UpdateUser(r.Context(), mux.Vars(r)["id"], req)
	writeMutation(w, r, http.StatusOK, u, err)
}

func (a *API) handleProduct(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.ProductByCode(r.Context(), mux.Vars(r)["code"])
	writeResult(w, r, res, err)
}

func (a *API) handleSerial(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.WarrantyBySerial(r.Context(), mux.Vars(r)["serial"])
	writeResult(w, r, res, err)
}

func (a *API) handleWarranties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := a.Svc.Warranties(r.Context(), domain.WarrantyFilter{
		SellerID:   q.Get("seller_id"),
		CustomerID: q.Get("customer_id"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	})
	writeResult(w, r, res, err)
}

func (a *API) handleWarranty(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.Warranty(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

func (a *API) handleCreateWarranty(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWarrantyRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := a.Svc.CreateWarranty(r.Context(), req)
	writeMutation(w, r, http.StatusCreated, out, err)
}

func (a *API) handleServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := a.Svc.Services(r.Context(), domain.ServiceFilter{
		TechnicianID: q.Get("technician_id"),
		CustomerID:   q.Get("customer_id"),
		Status:       q.Get("status"),
		Search:       q.Get("search"),
	})
	writeResult(w, r, res, err)
}

func (a *API) handleService(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.Service(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

func (a *API) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := a.Svc.CreateService(r.Context(), req)
	writeMutation(w, r, http.StatusCreated, out, err)
}

func (a *API) handleSellerStats(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.SellerStats(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

func (a *API) handleCustomerStats(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.CustomerStats(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

func (a *API) handleTechnicianStats(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.TechnicianStats(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

func (a *API) handleRegions(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.Regions(r.Context())
	writeResult(w, r, res, err)
}

func (a *API) handleDistricts(w http.ResponseWriter, r *http.Request) {
	res, err := a.Svc.Districts(r.Context(), mux.Vars(r)["id"])
	writeResult(w, r, res, err)
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type phoneResponse struct {
	Phone string `json:"phone"`
	Valid bool   `json:"valid"`
	E164  string `json:"e164,omitempty"`
}

func (a *API) handleNormalizePhone(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !decode(w, r, &req) {
		return
	}
	out := phoneResponse{Phone: phone.Normalize(req.Phone)}
	out.Valid = phone.IsValid(out.Phone)
	if out.Valid {
		out.E164 = phone.E164(out.Phone)
	}
	writeData(w, r, http.StatusOK, out)
}
