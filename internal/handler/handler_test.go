package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight-service/internal/config"
	"github.com/finsight/finsight-service/internal/integrations/rates"
	"github.com/finsight/finsight-service/internal/middleware"
	"github.com/finsight/finsight-service/internal/models"
	"github.com/finsight/finsight-service/internal/repository"
	"github.com/finsight/finsight-service/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		HMACSecret:    "test-hmac-secret",
		EncryptionKey: bytes.Repeat([]byte{0x22}, 32),
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := repository.NewMemoryRepository()
	svc := service.NewService(repo, logger, cfg, nil)
	h := NewHandler(svc, rates.NewClient(cfg, logger))

	r := mux.NewRouter()
	r.HandleFunc("/auth/signup", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/benchmark-rate", h.BenchmarkRate).Methods("GET")
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/user/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/consent", h.Consent).Methods("POST")
	authRouter.HandleFunc("/financial-data", h.FinancialData).Methods("GET")
	authRouter.HandleFunc("/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/simulate", h.Simulate).Methods("POST")
	authRouter.HandleFunc("/anomalies", h.Anomalies).Methods("GET")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func signupAndLogin(t *testing.T, baseURL string) string {
	t.Helper()
	resp := postJSON(t, baseURL+"/auth/signup", map[string]string{
		"username": "asha", "email": "asha@example.com", "password": "s3cret",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, baseURL+"/auth/login", map[string]string{
		"email": "asha@example.com", "password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])

	// The token is also set as an HttpOnly cookie.
	var cookieSet bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			cookieSet = c.HttpOnly && c.Value != ""
		}
	}
	require.True(t, cookieSet, "login must set the access token cookie")

	return body["token"]
}

func TestSignupValidation(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/auth/signup", map[string]string{"username": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSignupDuplicateEmail(t *testing.T) {
	server := newTestServer(t)
	signupAndLogin(t, server.URL)

	resp := postJSON(t, server.URL+"/auth/signup", map[string]string{
		"username": "again", "email": "asha@example.com", "password": "other",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := newTestServer(t)
	signupAndLogin(t, server.URL)

	resp := postJSON(t, server.URL+"/auth/login", map[string]string{
		"email": "asha@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/user/me", "/financial-data", "/summary", "/anomalies"} {
		resp := getJSON(t, server.URL+path, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp := getJSON(t, server.URL+"/summary", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMe(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server.URL)

	resp := getJSON(t, server.URL+"/user/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "asha@example.com", body["email"])
}

func TestDashboardFlow(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server.URL)

	// No data before consent.
	resp := getJSON(t, server.URL+"/summary", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/consent", nil, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, server.URL+"/financial-data", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data models.FinancialData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	resp.Body.Close()
	assert.Len(t, data.Banks, 4)

	resp = getJSON(t, server.URL+"/summary", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary models.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	resp.Body.Close()
	assert.InDelta(t,
		summary.BankBalanceTotal+summary.MutualFundValueTotal+summary.StockValueTotal-summary.LoanOutstandingTotal,
		summary.NetWorth, 1e-6)

	resp = getJSON(t, server.URL+"/anomalies", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report models.AnomalyReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()
	assert.Equal(t, len(report.Anomalies), report.Count)
}

func TestSimulateEndpoint(t *testing.T) {
	server := newTestServer(t)
	token := signupAndLogin(t, server.URL)

	resp := postJSON(t, server.URL+"/consent", nil, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	params := models.SimulationParams{
		HorizonYears:                5,
		MutualFundGrowthRate:        0.10,
		StockGrowthRate:             0.12,
		AdditionalMonthlyInvestment: 1000,
	}
	resp = postJSON(t, server.URL+"/simulate", params, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result service.SimulationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	require.NotNil(t, result.Projection)
	assert.Len(t, result.Projection.Years, 6)

	// Invalid horizon surfaces as a 400.
	resp = postJSON(t, server.URL+"/simulate", models.SimulationParams{HorizonYears: 0}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
