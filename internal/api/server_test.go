package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoharness/cartool-core/internal/auth"
	"github.com/autoharness/cartool-core/internal/functions"
	"github.com/autoharness/cartool-core/internal/infrastructure/config"
	"github.com/autoharness/cartool-core/internal/infrastructure/database"
	"github.com/autoharness/cartool-core/internal/infrastructure/logging"
	"github.com/autoharness/cartool-core/internal/property"
	"github.com/autoharness/cartool-core/internal/vehicleconfig"
	"github.com/autoharness/cartool-core/internal/vhal"
	"github.com/autoharness/cartool-core/internal/vhal/simvhal"
	"github.com/autoharness/cartool-core/migrations"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

// newSimService seeds an in-memory simulator from the shipped fixture.
func newSimService(t *testing.T) *simvhal.Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{Path: database.MemoryPath, BusyTimeout: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	require.NoError(t, db.Migrate(ctx, migrations.FS))

	fx, err := simvhal.LoadFixture("../../configs/sim_vehicle.yaml")
	require.NoError(t, err)

	store := simvhal.New(db)
	require.NoError(t, store.Seed(ctx, fx))
	return store
}

// testServer creates a Server over svc. An empty secret disables auth.
func testServer(t *testing.T, svc vhal.Service, secret string) *Server {
	t.Helper()

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	repo := property.NewRepository(vehicleconfig.Registry(), svc)

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS: config.WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret: secret,
				Issuer: "cartool",
			},
		},
		Logger:     log,
		Functions:  functions.NewTable(repo),
		Repository: repo,
		Version:    "test",
	})
	require.NoError(t, err)
	return srv
}

// do sends a request through the full router and returns the recorder.
func do(t *testing.T, srv *Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// bearer returns an Authorization header carrying an operator token.
func bearer(t *testing.T) http.Header {
	t.Helper()
	return bearerFor(t, auth.RoleOperator)
}

func bearerFor(t *testing.T, role auth.Role) http.Header {
	t.Helper()
	token, err := auth.GenerateToken(config.JWTConfig{Secret: testSecret, Issuer: "cartool"}, "tester", role, time.Minute)
	require.NoError(t, err)
	return http.Header{"Authorization": {"Bearer " + token}}
}

func TestNew_RequiresDependencies(t *testing.T) {
	log := logging.Default()
	repo := property.NewRepository(vehicleconfig.Registry(), nil)
	table := functions.NewTable(repo)

	tests := []struct {
		name string
		deps Deps
		want string
	}{
		{"logger", Deps{Functions: table, Repository: repo}, "logger is required"},
		{"functions", Deps{Logger: log, Repository: repo}, "function table is required"},
		{"repository", Deps{Logger: log, Functions: table}, "property repository is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.deps)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, newSimService(t), testSecret)

	// No token: health is public.
	rec := do(t, srv, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.EqualValues(t, 17, body["functions"])
}

func TestRequestID(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	rec := do(t, srv, http.MethodGet, "/api/v1/health", "", http.Header{"X-Request-Id": {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(t, srv, http.MethodGet, "/api/v1/health", "", nil)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t, newSimService(t), "")
	srv.cfg.CORS.AllowedOrigins = []string{"http://dash.local"}

	rec := do(t, srv, http.MethodOptions, "/api/v1/functions", "", http.Header{"Origin": {"http://dash.local"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://dash.local", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, srv, http.MethodOptions, "/api/v1/functions", "", http.Header{"Origin": {"http://evil.local"}})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleListFunctions(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	rec := do(t, srv, http.MethodGet, "/api/v1/functions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	type functionList struct {
		Functions []functions.Schema `json:"functions"`
		Count     int                `json:"count"`
	}
	body := decodeBody[functionList](t, rec)
	assert.Equal(t, 17, body.Count)
	require.Len(t, body.Functions, 17)
	assert.Equal(t, "getPropertyList", body.Functions[0].Name)
	assert.Equal(t, functions.Category, body.Functions[0].Category)
}

func TestHandleGetFunction(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	rec := do(t, srv, http.MethodGet, "/api/v1/functions/setFloatProperty", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	schema := decodeBody[functions.Schema](t, rec)
	assert.Equal(t, "setFloatProperty", schema.Name)
	assert.Len(t, schema.Parameters, 3)

	rec = do(t, srv, http.MethodGet, "/api/v1/functions/launchRocket", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInvokeFunction(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	tests := []struct {
		name       string
		function   string
		body       string
		wantStatus int
		wantCode   string
		wantResult any
		wantMsg    string
	}{
		{
			name:       "read int",
			function:   "getIntProperty",
			body:       `{"propertyName":"HVAC_FAN_SPEED","areaId":1}`,
			wantStatus: http.StatusOK,
			wantResult: float64(3),
		},
		{
			name:       "read string",
			function:   "getStringProperty",
			body:       `{"propertyName":"INFO_MAKE","areaId":0}`,
			wantStatus: http.StatusOK,
			wantResult: "Polestar",
		},
		{
			name:       "read boolean",
			function:   "getBooleanProperty",
			body:       `{"propertyName":"PARKING_BRAKE_ON","areaId":0}`,
			wantStatus: http.StatusOK,
			wantResult: true,
		},
		{
			name:       "not in allow-list",
			function:   "getIntProperty",
			body:       `{"propertyName":"ENGINE_RPM","areaId":0}`,
			wantStatus: http.StatusForbidden,
			wantCode:   ErrCodeNotAuthorized,
			wantMsg:    "Property 'ENGINE_RPM' does not exist or is not authorized",
		},
		{
			name:       "area unavailable",
			function:   "getIntProperty",
			body:       `{"propertyName":"WINDOW_POS","areaId":256}`,
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeNotAvailable,
			wantMsg:    "Property 'WINDOW_POS' is currently not available",
		},
		{
			name:       "missing area",
			function:   "getIntProperty",
			body:       `{"propertyName":"HVAC_FAN_SPEED"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "unknown argument",
			function:   "getPropertyList",
			body:       `{"verbose":true}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "unknown function",
			function:   "launchRocket",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "read-only write",
			function:   "setIntProperty",
			body:       `{"propertyName":"INFO_MODEL_YEAR","areaId":0,"value":2030}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeRejected,
		},
		{
			name:       "out of range write",
			function:   "setIntProperty",
			body:       `{"propertyName":"HVAC_FAN_SPEED","areaId":1,"value":9}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/v1/functions/"+tt.function, tt.body, nil)
			require.Equal(t, tt.wantStatus, rec.Code, "body: %s", rec.Body.String())

			if tt.wantStatus == http.StatusOK {
				body := decodeBody[map[string]any](t, rec)
				assert.Equal(t, tt.wantResult, body["result"])
				return
			}

			e := decodeBody[Error](t, rec)
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.Equal(t, tt.wantCode, e.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, e.Message)
			}
		})
	}
}

func TestHandleInvokeFunction_WriteThenRead(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	rec := do(t, srv, http.MethodPost, "/api/v1/functions/setFloatProperty",
		`{"propertyName":"HVAC_TEMPERATURE_SET","areaId":4,"value":19.5}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"result":"success"}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/v1/functions/getFloatProperty",
		`{"propertyName":"HVAC_TEMPERATURE_SET","areaId":4}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"result":19.5}`, rec.Body.String())
}

func TestHandleInvokeFunction_EmptyBody(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	rec := do(t, srv, http.MethodPost, "/api/v1/functions/getPropertyList", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[map[string]any](t, rec)
	catalog, ok := body["result"].(string)
	require.True(t, ok, "result should be the catalog JSON string")
	assert.True(t, strings.HasPrefix(catalog, "["))
}

func TestHandleListProperties(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	rec := do(t, srv, http.MethodGet, "/api/v1/properties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	profiles := decodeBody[[]map[string]any](t, rec)
	require.NotEmpty(t, profiles)
	assert.Equal(t, "INFO_VIN", profiles[0]["propertyName"])

	names := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		names[p["propertyName"].(string)] = true
	}
	assert.True(t, names["VENDOR_MASSAGE_LEVEL"])
}

// faultyService wraps a real service and injects faults.
type faultyService struct {
	vhal.Service
	availErr error
	value    vhal.Value
}

func (f faultyService) IsAvailable(ctx context.Context, id vhal.PropertyID, areaID int32) (bool, error) {
	if f.availErr != nil {
		return false, f.availErr
	}
	return f.Service.IsAvailable(ctx, id, areaID)
}

func (f faultyService) Get(ctx context.Context, id vhal.PropertyID, areaID int32, kind vhal.DataType) (vhal.Value, error) {
	if f.value != nil {
		return f.value, nil
	}
	return f.Service.Get(ctx, id, areaID, kind)
}

func TestHandleInvokeFunction_ServiceUnavailable(t *testing.T) {
	svc := faultyService{
		Service:  newSimService(t),
		availErr: fmt.Errorf("%w: no response", vhal.ErrServiceUnavailable),
	}
	srv := testServer(t, svc, "")

	rec := do(t, srv, http.MethodPost, "/api/v1/functions/getIntProperty",
		`{"propertyName":"HVAC_FAN_SPEED","areaId":1}`, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrCodeServiceUnavailable, decodeBody[Error](t, rec).Code)
}

func TestHandleInvokeFunction_InternalErrorIsOpaque(t *testing.T) {
	// A string where an int was asked for breaks a core invariant.
	svc := faultyService{
		Service: newSimService(t),
		value:   vhal.StringValue("three"),
	}
	srv := testServer(t, svc, "")

	rec := do(t, srv, http.MethodPost, "/api/v1/functions/getIntProperty",
		`{"propertyName":"HVAC_FAN_SPEED","areaId":1}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	e := decodeBody[Error](t, rec)
	assert.Equal(t, ErrCodeInternal, e.Code)
	assert.Equal(t, internalMessage, e.Message)
	assert.NotContains(t, rec.Body.String(), "HVAC_FAN_SPEED")
}

func TestFunctionError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not authorized", &property.AccessError{Property: "X", Err: property.ErrNotAuthorized}, http.StatusForbidden, ErrCodeNotAuthorized},
		{"not available", &property.AccessError{Property: "X", Err: property.ErrNotAvailable}, http.StatusConflict, ErrCodeNotAvailable},
		{"unknown function", fmt.Errorf("%w: f", functions.ErrUnknownFunction), http.StatusNotFound, ErrCodeNotFound},
		{"invalid arguments", fmt.Errorf("%w: bad", functions.ErrInvalidArguments), http.StatusBadRequest, ErrCodeBadRequest},
		{"service unavailable", fmt.Errorf("reading X: %w", vhal.ErrServiceUnavailable), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"write rejected", fmt.Errorf("writing X: %w", vhal.ErrWriteRejected), http.StatusUnprocessableEntity, ErrCodeRejected},
		{"type mismatch", fmt.Errorf("writing X: %w", vhal.ErrTypeMismatch), http.StatusUnprocessableEntity, ErrCodeRejected},
		{"internal", fmt.Errorf("%w: broken", property.ErrInternal), http.StatusInternalServerError, ErrCodeInternal},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := functionError(tt.err)
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.Equal(t, tt.wantCode, e.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, internalMessage, e.Message)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := testServer(t, newSimService(t), testSecret)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "tester",
			Issuer:    "cartool",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Role: auth.RoleOperator,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     http.Header
		wantStatus int
	}{
		{"operator token", bearer(t), http.StatusOK},
		{"viewer token", bearerFor(t, auth.RoleViewer), http.StatusOK},
		{"missing header", nil, http.StatusUnauthorized},
		{"not bearer", http.Header{"Authorization": {"Basic dXNlcjpwYXNz"}}, http.StatusUnauthorized},
		{"garbage", http.Header{"Authorization": {"Bearer not-a-jwt"}}, http.StatusUnauthorized},
		{"expired", http.Header{"Authorization": {"Bearer " + expired}}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/v1/functions", "", tt.header)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestInvokePermissions(t *testing.T) {
	srv := testServer(t, newSimService(t), testSecret)
	viewer := bearerFor(t, auth.RoleViewer)
	operator := bearer(t)
	setFan := `{"propertyName":"HVAC_FAN_SPEED","areaId":1,"value":4}`

	tests := []struct {
		name       string
		header     http.Header
		function   string
		body       string
		wantStatus int
	}{
		{"viewer reads", viewer, "getIntProperty", `{"propertyName":"HVAC_FAN_SPEED","areaId":1}`, http.StatusOK},
		{"viewer lists properties", viewer, "getPropertyList", ``, http.StatusOK},
		{"viewer cannot write", viewer, "setIntProperty", setFan, http.StatusForbidden},
		{"viewer unknown function", viewer, "launchRocket", ``, http.StatusNotFound},
		{"operator writes", operator, "setIntProperty", setFan, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/v1/functions/"+tt.function, tt.body, tt.header)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, ErrCodeForbidden, decodeBody[Error](t, rec).Code)
			}
		})
	}

	// The rejected write left the value alone; the operator write landed.
	rec := do(t, srv, http.MethodPost, "/api/v1/functions/getIntProperty",
		`{"propertyName":"HVAC_FAN_SPEED","areaId":1}`, viewer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), decodeBody[map[string]any](t, rec)["result"])
}

func TestPermitted_AuthDisabled(t *testing.T) {
	srv := testServer(t, newSimService(t), "")
	assert.True(t, srv.permitted("", auth.PermPropertyWrite))
	assert.True(t, srv.permitted("", auth.PermAuditRead))

	srv.secCfg.JWT.Secret = testSecret
	assert.False(t, srv.permitted("", auth.PermPropertyRead))
	assert.True(t, srv.permitted(auth.RoleViewer, auth.PermPropertyRead))
}

func TestInvokePermission(t *testing.T) {
	srv := testServer(t, newSimService(t), "")
	assert.Equal(t, auth.PermPropertyWrite, srv.invokePermission("setFloatArrayProperty"))
	assert.Equal(t, auth.PermPropertyRead, srv.invokePermission("getFloatArrayProperty"))
	assert.Equal(t, auth.PermPropertyRead, srv.invokePermission("getPropertyList"))
	assert.Equal(t, auth.PermPropertyRead, srv.invokePermission("launchRocket"))
}

func TestTicketStore(t *testing.T) {
	store := newTicketStore()

	ticket := store.issue(auth.RoleViewer)
	assert.Len(t, ticket, ticketBytes*2)
	role, ok := store.consume(ticket)
	assert.True(t, ok)
	assert.Equal(t, auth.RoleViewer, role)
	_, ok = store.consume(ticket)
	assert.False(t, ok, "tickets are single-use")
	_, ok = store.consume("unknown")
	assert.False(t, ok)

	store.tickets["stale"] = pendingTicket{role: auth.RoleOperator, expiresAt: time.Now().Add(-time.Second)}
	_, ok = store.consume("stale")
	assert.False(t, ok)

	store.tickets["stale"] = pendingTicket{expiresAt: time.Now().Add(-time.Second)}
	store.tickets["fresh"] = pendingTicket{expiresAt: time.Now().Add(time.Minute)}
	store.cleanExpired()
	assert.NotContains(t, store.tickets, "stale")
	assert.Contains(t, store.tickets, "fresh")
}

func TestServerLifecycle(t *testing.T) {
	srv := testServer(t, newSimService(t), "")

	assert.Error(t, srv.HealthCheck(context.Background()))
	assert.NoError(t, srv.Close(), "closing an unstarted server is a no-op")

	require.NoError(t, srv.Start(context.Background()))
	assert.NoError(t, srv.HealthCheck(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, srv.HealthCheck(ctx))

	assert.NoError(t, srv.Close())
}

func TestListProperties_RequiresRead(t *testing.T) {
	srv := testServer(t, newSimService(t), testSecret)

	rec := do(t, srv, http.MethodGet, "/api/v1/properties", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/v1/properties", "", bearerFor(t, auth.RoleViewer))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The catalog route carries one more middleware than the ticket route:
	// the read permission check.
	routes, ok := srv.buildRouter().(chi.Routes)
	require.True(t, ok)
	counts := map[string]int{}
	require.NoError(t, chi.Walk(routes, func(method, route string, _ http.Handler, mws ...func(http.Handler) http.Handler) error {
		counts[method+" "+route] = len(mws)
		return nil
	}))
	assert.Equal(t, counts["POST /api/v1/auth/ws-ticket"]+1, counts["GET /api/v1/properties"])

	// A role without read is turned away before the handler runs.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKeyRole, auth.Role("guest")))
	rec = httptest.NewRecorder()
	srv.requirePermission(auth.PermPropertyRead)(http.HandlerFunc(srv.handleListProperties)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ErrCodeForbidden, decodeBody[Error](t, rec).Code)
}
