package main

import (
	"context"
	"fmt"

	"github.com/autoharness/cartool-core/internal/infrastructure/config"
	"github.com/autoharness/cartool-core/internal/infrastructure/database"
	"github.com/autoharness/cartool-core/internal/infrastructure/logging"
	"github.com/autoharness/cartool-core/internal/infrastructure/mqtt"
	"github.com/autoharness/cartool-core/internal/registry"
	"github.com/autoharness/cartool-core/internal/vehicleconfig"
	"github.com/autoharness/cartool-core/internal/vhal"
	"github.com/autoharness/cartool-core/internal/vhal/mqttvhal"
	"github.com/autoharness/cartool-core/internal/vhal/simvhal"
	"github.com/autoharness/cartool-core/migrations"
)

// loadRegistry returns the allow-list: the configured definition file when
// set, otherwise the list compiled into the binary.
func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Registry.ConfigFile == "" {
		return vehicleconfig.Registry(), nil
	}
	reg, err := registry.LoadFile(cfg.Registry.ConfigFile, registry.DefaultResolver)
	if err != nil {
		return nil, fmt.Errorf("loading property registry: %w", err)
	}
	return reg, nil
}

func registrySource(cfg *config.Config) string {
	if cfg.Registry.ConfigFile == "" {
		return "builtin"
	}
	return cfg.Registry.ConfigFile
}

// openDatabase opens the SQLite database and applies the embedded migrations.
func openDatabase(ctx context.Context, cfg *config.Config, log *logging.Logger) (*database.DB, error) {
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	log.Info("database connected", "path", cfg.Database.Path)

	if err := db.Migrate(ctx, migrations.FS); err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// openVehicleService connects the configured vehicle service. The sim
// service keeps its state in db, which the caller owns. The returned func
// releases everything openVehicleService opened.
func openVehicleService(ctx context.Context, cfg *config.Config, db *database.DB, log *logging.Logger) (vhal.Service, func(), error) {
	switch cfg.Vehicle.Service {
	case config.VehicleServiceSim:
		if db == nil {
			return nil, nil, fmt.Errorf("sim vehicle service requires a database")
		}
		store, err := newSimStore(ctx, cfg, db, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.VehicleServiceMQTT:
		mqttClient, err := connectMQTT(cfg, log)
		if err != nil {
			return nil, nil, err
		}

		client := mqttvhal.NewClient(mqttClient,
			cfg.Vehicle.MQTT.TopicPrefix,
			byte(cfg.MQTT.QoS), //nolint:gosec // QoS validated to 0-2
			cfg.GetVehicleRequestTimeout(),
		)
		client.SetLogger(log.With("component", "vehicle_client"))
		if err := client.Start(); err != nil {
			closeMQTT(mqttClient, log)
			return nil, nil, fmt.Errorf("starting vehicle client: %w", err)
		}
		log.Info("vehicle service client started",
			"topic_prefix", cfg.Vehicle.MQTT.TopicPrefix,
			"request_timeout", cfg.GetVehicleRequestTimeout(),
		)

		return client, func() {
			client.Close() //nolint:errcheck // Unsubscribe on shutdown is best-effort
			closeMQTT(mqttClient, log)
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown vehicle service %q", cfg.Vehicle.Service)
	}
}

// newSimStore seeds the simulator tables in db from the fixture. Existing
// values are kept unless vehicle.sim.reseed is set.
func newSimStore(ctx context.Context, cfg *config.Config, db *database.DB, log *logging.Logger) (*simvhal.Store, error) {
	fx, err := simvhal.LoadFixture(cfg.Vehicle.Sim.Fixture)
	if err != nil {
		return nil, err
	}

	store := simvhal.New(db)
	store.SetLogger(log.With("component", "simulator"))

	if cfg.Vehicle.Sim.Reseed {
		err = store.Seed(ctx, fx)
		log.Info("simulator reseeded", "fixture", cfg.Vehicle.Sim.Fixture)
	} else {
		var seeded bool
		seeded, err = store.SeedIfEmpty(ctx, fx)
		log.Info("simulator ready", "fixture", cfg.Vehicle.Sim.Fixture, "seeded", seeded)
	}
	if err != nil {
		return nil, fmt.Errorf("seeding simulator: %w", err)
	}
	return store, nil
}

// connectMQTT connects to the broker and routes connection events to log.
func connectMQTT(cfg *config.Config, log *logging.Logger) (*mqtt.Client, error) {
	client, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return nil, fmt.Errorf("connecting to MQTT: %w", err)
	}
	client.SetLogger(log)
	client.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	client.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)
	return client, nil
}

// newResponder serves svc on the broker under the vehicle topic prefix.
func newResponder(t mqttvhal.Transport, cfg *config.Config, svc vhal.Service, log *logging.Logger) *mqttvhal.Server {
	responder := mqttvhal.NewServer(t,
		cfg.Vehicle.MQTT.TopicPrefix,
		byte(cfg.MQTT.QoS), //nolint:gosec // QoS validated to 0-2
		svc,
	)
	responder.SetLogger(log)
	return responder
}

func closeDatabase(db *database.DB, log *logging.Logger) {
	log.Info("closing database")
	if err := db.Close(); err != nil {
		log.Error("error closing database", "error", err)
	}
}

func closeMQTT(client *mqtt.Client, log *logging.Logger) {
	log.Info("disconnecting from MQTT")
	if err := client.Close(); err != nil {
		log.Error("error closing MQTT", "error", err)
	}
}
