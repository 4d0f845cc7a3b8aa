// Command cartool serves the vehicle property functions over HTTP and
// WebSocket.
//
// Usage:
//
//	cartool serve --config configs/config.yaml
//	cartool simulate --config configs/config.yaml
//	cartool token --subject dashboard --role viewer --ttl 24h
//
// serve exposes the allow-listed properties of the configured vehicle
// service. simulate runs the SQLite-backed vehicle on the MQTT broker so a
// serve instance with vehicle.service=mqtt can reach it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/autoharness/cartool-core/internal/api"
	"github.com/autoharness/cartool-core/internal/audit"
	"github.com/autoharness/cartool-core/internal/auth"
	"github.com/autoharness/cartool-core/internal/functions"
	"github.com/autoharness/cartool-core/internal/infrastructure/config"
	"github.com/autoharness/cartool-core/internal/infrastructure/database"
	"github.com/autoharness/cartool-core/internal/infrastructure/influxdb"
	"github.com/autoharness/cartool-core/internal/infrastructure/logging"
	"github.com/autoharness/cartool-core/internal/property"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// defaultConfigPath is used when neither --config nor CARTOOL_CONFIG is set
// and the file exists.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "cartool",
		Short: "Vehicle property function server",
		Long: `cartool exposes an allow-listed set of vehicle properties as
callable functions.

Each property is read and written by name. The property catalog
describes access, data type, areas and value ranges for every property
the connected vehicle supports.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default $CARTOOL_CONFIG or "+defaultConfigPath+")")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(simulateCmd(&configPath))
	root.AddCommand(tokenCmd(&configPath))
	return root
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the property functions over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func simulateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulated vehicle as an MQTT vehicle service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return simulate(cmd.Context(), cfg)
		},
	}
}

func tokenCmd(configPath *string) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token signed with security.jwt.secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			token, err := auth.GenerateToken(cfg.Security.JWT, subject, auth.Role(role), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "cartool-client", "token subject")
	cmd.Flags().StringVar(&role, "role", string(auth.RoleOperator), "token role (viewer or operator)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

// loadConfig resolves the configuration file. An explicit path must exist;
// without one the built-in defaults are used unless the default file is
// present.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("CARTOOL_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
			return config.Default()
		}
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// serve wires the vehicle service, property core and API, then blocks until
// ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.Logging, version)
	log.Info("starting cartool",
		"version", version,
		"commit", commit,
		"build_date", date,
		"vehicle_service", cfg.Vehicle.Service,
	)

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	log.Info("property registry loaded",
		"properties", reg.Len(),
		"source", registrySource(cfg),
	)

	var db *database.DB
	if cfg.Vehicle.Service == config.VehicleServiceSim || cfg.Audit.Enabled {
		db, err = openDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeDatabase(db, log)
	}

	svc, closeVehicle, err := openVehicleService(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeVehicle()

	repo := property.NewRepository(reg, svc)
	repo.SetLogger(log)

	table := functions.NewTable(repo)
	table.SetLogger(log)

	var (
		recorders functions.Recorders
		auditRepo audit.Repository
	)
	if cfg.Audit.Enabled {
		sqliteAudit := audit.NewSQLiteRepository(db.DB)
		auditRepo = sqliteAudit
		auditRecorder := audit.NewRecorder(sqliteAudit)
		auditRecorder.SetLogger(log)
		recorders = append(recorders, auditRecorder)
		log.Info("function audit log enabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetLogger(log)
		recorders = append(recorders, influxClient)
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}
	if len(recorders) > 0 {
		table.SetRecorder(recorders)
	}

	if cfg.Security.JWT.Secret == "" {
		log.Warn("security.jwt.secret is empty, API authentication is disabled")
	}

	server, err := api.New(api.Deps{
		Config:     cfg.API,
		WS:         cfg.WebSocket,
		Security:   cfg.Security,
		Logger:     log,
		Functions:  table,
		Repository: repo,
		Audit:      auditRepo,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	return nil
}

// simulate publishes the simulated vehicle on the broker until ctx is
// cancelled.
func simulate(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.Logging, version).With("component", "simulator")

	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDatabase(db, log)

	store, err := newSimStore(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	mqttClient, err := connectMQTT(cfg, log)
	if err != nil {
		return err
	}
	defer closeMQTT(mqttClient, log)

	responder := newResponder(mqttClient, cfg, store, log)
	if err := responder.Start(); err != nil {
		return fmt.Errorf("starting vehicle responder: %w", err)
	}
	defer responder.Close() //nolint:errcheck // Unsubscribe on shutdown is best-effort

	log.Info("simulated vehicle serving",
		"topic_prefix", cfg.Vehicle.MQTT.TopicPrefix,
		"fixture", cfg.Vehicle.Sim.Fixture,
	)
	<-ctx.Done()
	log.Info("simulated vehicle stopped")
	return nil
}
