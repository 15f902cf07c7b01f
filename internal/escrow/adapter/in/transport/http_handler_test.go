package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rideescrow/internal/catalog"
	"rideescrow/internal/escrow/adapter/in/transport"
	"rideescrow/internal/escrow/adapter/out/repo"
	"rideescrow/internal/escrow/application/usecase"
	"rideescrow/internal/funds"
	"rideescrow/internal/registry"
	"rideescrow/internal/shared/auth"
	"rideescrow/internal/shared/config"
	"rideescrow/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	server  *httptest.Server
	jwt     *auth.JWTService
	gateway *funds.MemGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewLoggerWithWriters("test", io.Discard, io.Discard)

	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "test_secret", ExpiryMinutes: 5})

	reg := registry.NewService(registry.NewMemRepository(), log)
	cat := catalog.NewService(catalog.NewMemRepository(), reg, nil, log)
	gateway := funds.NewMemGateway()
	ledger := repo.NewMemRideLedger()
	engine := usecase.NewSettlementEngine(ledger, gateway, reg, cat, nil, nil, log)

	handler := transport.NewHTTPHandler(reg, cat, gateway, engine, engine, engine, engine, log)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, transport.JWTMiddleware(jwtService, log))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{server: server, jwt: jwtService, gateway: gateway}
}

func (ts *testServer) token(t *testing.T, participantID string) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(participantID)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// setupRide registers a rider and a driver, funds the rider and creates
// one destination with fare 1000. Returns the rider and driver tokens.
func (ts *testServer) setupRide(t *testing.T) (riderToken, driverToken string) {
	t.Helper()
	riderToken = ts.token(t, "rider-1")
	driverToken = ts.token(t, "driver-1")

	resp, _ := ts.do(t, http.MethodPost, "/participants", riderToken, map[string]string{"role": "RIDER"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/participants", driverToken, map[string]string{"role": "DRIVER"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/destinations", driverToken, map[string]any{"location": "Airport", "fare": 1000})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/wallet/deposits", riderToken, map[string]any{"amount": 1000})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return riderToken, driverToken
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/participants", "", map[string]string{"role": "RIDER"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/wallet", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthNoAuth(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterParticipant(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, "alice")

	resp, body := ts.do(t, http.MethodPost, "/participants", token, map[string]string{"role": "RIDER"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", body["participant_id"])
	assert.Equal(t, "RIDER", body["role"])

	// Same role twice conflicts; the other role is fine.
	resp, _ = ts.do(t, http.MethodPost, "/participants", token, map[string]string{"role": "RIDER"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/participants", token, map[string]string{"role": "DRIVER"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/participants", token, map[string]string{"role": "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddDestinationRequiresDriver(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, "alice")

	resp, _ := ts.do(t, http.MethodPost, "/destinations", token, map[string]any{"location": "Airport", "fare": 1000})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWallet(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, "alice")

	resp, body := ts.do(t, http.MethodPost, "/wallet/deposits", token, map[string]any{"amount": 500})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(500), body["balance"])

	resp, body = ts.do(t, http.MethodGet, "/wallet", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(500), body["balance"])

	resp, _ = ts.do(t, http.MethodPost, "/wallet/deposits", token, map[string]any{"amount": -10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBookRideFlow(t *testing.T) {
	ts := newTestServer(t)
	riderToken, driverToken := ts.setupRide(t)

	resp, body := ts.do(t, http.MethodPost, "/rides", riderToken, map[string]any{
		"destination_id": 0,
		"payment_amount": 1000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(0), body["ride_id"])
	assert.Equal(t, float64(100), body["driver_share"])
	assert.Equal(t, float64(900), body["escrowed_amount"])
	assert.Equal(t, "BOOKED", body["status"])

	// Both parties can read the ride.
	resp, body = ts.do(t, http.MethodGet, "/rides/0", driverToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "BOOKED", body["status"])

	// Completion pays the escrow out to the driver.
	resp, body = ts.do(t, http.MethodPost, "/rides/0/complete", driverToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "COMPLETED", body["status"])
	assert.Equal(t, float64(900), body["payout_amount"])

	balance, err := ts.gateway.BalanceOf(context.Background(), "driver-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestBookRideErrors(t *testing.T) {
	ts := newTestServer(t)
	riderToken, _ := ts.setupRide(t)

	// Payment must equal the fare exactly.
	resp, _ := ts.do(t, http.MethodPost, "/rides", riderToken, map[string]any{
		"destination_id": 0,
		"payment_amount": 999,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown destination.
	resp, _ = ts.do(t, http.MethodPost, "/rides", riderToken, map[string]any{
		"destination_id": 42,
		"payment_amount": 1000,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unregistered caller.
	resp, _ = ts.do(t, http.MethodPost, "/rides", ts.token(t, "stranger"), map[string]any{
		"destination_id": 0,
		"payment_amount": 1000,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCancelRideFlow(t *testing.T) {
	ts := newTestServer(t)
	riderToken, driverToken := ts.setupRide(t)

	resp, _ := ts.do(t, http.MethodPost, "/rides", riderToken, map[string]any{
		"destination_id": 0,
		"payment_amount": 1000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The driver cannot cancel.
	resp, _ = ts.do(t, http.MethodPost, "/rides/0/cancel", driverToken, map[string]any{"reason": "no show"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := ts.do(t, http.MethodPost, "/rides/0/cancel", riderToken, map[string]any{"reason": "changed plans"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", body["status"])
	assert.Equal(t, float64(855), body["refund_amount"])
	assert.Equal(t, float64(45), body["retained_fee"])

	// Cancelling again conflicts.
	resp, _ = ts.do(t, http.MethodPost, "/rides/0/cancel", riderToken, map[string]any{"reason": "again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRideNotFound(t *testing.T) {
	ts := newTestServer(t)
	riderToken, _ := ts.setupRide(t)

	for _, path := range []string{"/rides/99", "/rides/99/complete", "/rides/99/cancel"} {
		method := http.MethodPost
		if path == "/rides/99" {
			method = http.MethodGet
		}
		resp, _ := ts.do(t, method, path, riderToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, fmt.Sprintf("%s %s", method, path))
	}
}

func TestInvalidRideID(t *testing.T) {
	ts := newTestServer(t)
	riderToken, _ := ts.setupRide(t)

	resp, _ := ts.do(t, http.MethodGet, "/rides/abc", riderToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
