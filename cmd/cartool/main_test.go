package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoharness/cartool-core/internal/audit"
	"github.com/autoharness/cartool-core/internal/auth"
	"github.com/autoharness/cartool-core/internal/infrastructure/config"
	"github.com/autoharness/cartool-core/internal/infrastructure/logging"
	"github.com/autoharness/cartool-core/internal/vehicleconfig"
	"github.com/autoharness/cartool-core/internal/vhal"
)

const (
	fixturePath     = "../../configs/sim_vehicle.yaml"
	definitionsPath = "../../configs/vehicle_properties.yaml"
	testSecret      = "test-secret-key-at-least-32-characters-long"
)

// simConfig returns a sim-backed configuration using a temp database.
func simConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)

	cfg.Vehicle.Service = config.VehicleServiceSim
	cfg.Vehicle.Sim.Fixture = fixturePath
	cfg.Database.Path = filepath.Join(t.TempDir(), "cartool.db")
	cfg.Logging.Level = "error"
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = 0
	return cfg
}

func testLogger() *logging.Logger {
	return logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := loadConfig("/nonexistent/path/config.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/nonexistent/path/config.yaml")
	})

	t.Run("environment path", func(t *testing.T) {
		path := writeConfig(t, "api:\n  port: 9191\n")
		t.Setenv("CARTOOL_CONFIG", path)

		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 9191, cfg.API.Port)
	})

	t.Run("defaults without a file", func(t *testing.T) {
		t.Setenv("CARTOOL_CONFIG", "")

		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, config.VehicleServiceSim, cfg.Vehicle.Service)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeConfig(t, "vehicle:\n  service: carrier-pigeon\n")
		_, err := loadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vehicle.service")
	})
}

func TestLoadRegistry(t *testing.T) {
	cfg := simConfig(t)

	reg, err := loadRegistry(cfg)
	require.NoError(t, err)
	assert.Same(t, vehicleconfig.Registry(), reg)
	assert.Equal(t, "builtin", registrySource(cfg))

	cfg.Registry.ConfigFile = definitionsPath
	fromFile, err := loadRegistry(cfg)
	require.NoError(t, err)
	assert.Equal(t, vehicleconfig.Registry().Len(), fromFile.Len())
	assert.Equal(t, definitionsPath, registrySource(cfg))

	cfg.Registry.ConfigFile = "/nonexistent/vehicle_properties.yaml"
	_, err = loadRegistry(cfg)
	assert.Error(t, err)
}

// openSim opens the configured database and the sim service on it.
func openSim(t *testing.T, cfg *config.Config) (vhal.Service, func()) {
	t.Helper()
	ctx := context.Background()
	log := testLogger()

	db, err := openDatabase(ctx, cfg, log)
	require.NoError(t, err)
	svc, closeFn, err := openVehicleService(ctx, cfg, db, log)
	require.NoError(t, err)
	return svc, func() {
		closeFn()
		closeDatabase(db, log)
	}
}

func TestOpenVehicleService_Sim(t *testing.T) {
	ctx := context.Background()
	cfg := simConfig(t)

	svc, closeFn := openSim(t, cfg)
	descriptors, err := svc.ListDescriptors(ctx, vehicleconfig.Registry().IDs())
	require.NoError(t, err)
	assert.NotEmpty(t, descriptors)

	require.NoError(t, svc.Set(ctx, vhal.HVACFanSpeed, 1, vhal.Int32Value(6)))
	closeFn()

	// Reopening keeps written values.
	svc, closeFn = openSim(t, cfg)
	v, err := svc.Get(ctx, vhal.HVACFanSpeed, 1, vhal.DataTypeInt32)
	require.NoError(t, err)
	assert.Equal(t, vhal.Int32Value(6), v)
	closeFn()

	// Reseeding restores the fixture.
	cfg.Vehicle.Sim.Reseed = true
	svc, closeFn = openSim(t, cfg)
	defer closeFn()
	v, err = svc.Get(ctx, vhal.HVACFanSpeed, 1, vhal.DataTypeInt32)
	require.NoError(t, err)
	assert.Equal(t, vhal.Int32Value(3), v)
}

func TestOpenVehicleService_Errors(t *testing.T) {
	ctx := context.Background()
	log := testLogger()

	cfg := simConfig(t)
	cfg.Vehicle.Service = "carrier-pigeon"
	_, _, err := openVehicleService(ctx, cfg, nil, log)
	assert.ErrorContains(t, err, "unknown vehicle service")

	cfg = simConfig(t)
	_, _, err = openVehicleService(ctx, cfg, nil, log)
	assert.ErrorContains(t, err, "requires a database")

	cfg.Vehicle.Sim.Fixture = "/nonexistent/fixture.yaml"
	db, err := openDatabase(ctx, cfg, log)
	require.NoError(t, err)
	defer closeDatabase(db, log)
	_, _, err = openVehicleService(ctx, cfg, db, log)
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	path := writeConfig(t, "security:\n  jwt:\n    secret: \""+testSecret+"\"\n")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--config", path, "--subject", "dashboard", "--role", "viewer", "--ttl", "1h"})
	require.NoError(t, cmd.Execute())

	token := strings.TrimSpace(out.String())
	claims, err := auth.ParseToken(token, config.JWTConfig{Secret: testSecret, Issuer: "cartool"})
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
	assert.Equal(t, auth.RoleViewer, claims.Role)
}

func TestTokenCmd_RejectsUnknownRole(t *testing.T) {
	path := writeConfig(t, "security:\n  jwt:\n    secret: \""+testSecret+"\"\n")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "--config", path, "--role", "admin"})
	assert.ErrorIs(t, cmd.Execute(), auth.ErrInvalidRole)
}

func TestTokenCmd_RequiresSecret(t *testing.T) {
	path := writeConfig(t, "api:\n  port: 8080\n")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "--config", path})
	assert.Error(t, cmd.Execute())
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := simConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestServe_AuditsFunctionCalls(t *testing.T) {
	cfg := simConfig(t)
	port := freePort(t)
	cfg.API.Port = port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	base := fmt.Sprintf("http://127.0.0.1:%d/api/v1", port)
	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Post(base+"/functions/getIntProperty", "application/json", //nolint:noctx // Test request
			strings.NewReader(`{"propertyName":"HVAC_FAN_SPEED","areaId":1}`))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	resp.Body.Close() //nolint:errcheck // Test cleanup
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(base + "/audit?property=HVAC_FAN_SPEED") //nolint:noctx // Test request
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // Test cleanup
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page audit.ListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "getIntProperty", page.Entries[0].Function)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServe_FailsOnBadRegistry(t *testing.T) {
	cfg := simConfig(t)
	cfg.Registry.ConfigFile = "/nonexistent/vehicle_properties.yaml"

	err := serve(context.Background(), cfg)
	assert.ErrorContains(t, err, "loading property registry")
}
