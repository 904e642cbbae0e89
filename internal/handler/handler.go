package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finsight/finsight-service/internal/finance"
	"github.com/finsight/finsight-service/internal/integrations/rates"
	"github.com/finsight/finsight-service/internal/middleware"
	"github.com/finsight/finsight-service/internal/models"
	"github.com/finsight/finsight-service/internal/repository"
	"github.com/finsight/finsight-service/internal/service"
)

type Handler struct {
	svc   *service.Service
	rates *rates.Client
}

func NewHandler(svc *service.Service, ratesClient *rates.Client) *Handler {
	return &Handler{svc: svc, rates: ratesClient}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		http.Error(w, "Email already registered", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and sets the access token cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "Failed to load user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Consent generates and stores a fresh financial bundle for the user
func (h *Handler) Consent(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.Consent(r.Context())
	if err != nil {
		http.Error(w, "Failed to store financial data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "Financial data encrypted and stored securely.",
		"record_id": record.ID,
	})
}

// FinancialData returns the user's latest bundle, decrypted
func (h *Handler) FinancialData(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.FinancialData(r.Context())
	if errors.Is(err, repository.ErrNoRecord) {
		http.Error(w, "No financial data found for user", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load financial data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Summary returns the aggregated metrics for the user's latest bundle
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if errors.Is(err, repository.ErrNoRecord) {
		http.Error(w, "No financial data found for user", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to aggregate financial data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Simulate runs the wealth projection under user-supplied parameters
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var params models.SimulationParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Simulate(r.Context(), params)
	if errors.Is(err, finance.ErrInvalidParameter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, repository.ErrNoRecord) {
		http.Error(w, "No financial data found for user", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to run simulation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Anomalies returns the anomaly report for the user's latest bundle
func (h *Handler) Anomalies(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Anomalies(r.Context())
	if errors.Is(err, repository.ErrNoRecord) {
		http.Error(w, "No financial data found for user", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to detect anomalies", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// BenchmarkRate returns the current benchmark policy rate with the advisory
// growth-rate suggestion derived from it
func (h *Handler) BenchmarkRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.GetBenchmarkRate()
	if err != nil {
		http.Error(w, "Failed to get benchmark rate", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"benchmark_rate":        rate,
		"suggested_growth_rate": rates.SuggestedGrowthRate(rate),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
