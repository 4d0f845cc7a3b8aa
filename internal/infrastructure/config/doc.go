// Package config handles loading and validating cartool configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (CARTOOL_*)
//   - Validation of required fields
//   - Default value handling
//
// Sensitive values (MQTT password, InfluxDB token, JWT secret) should be
// set through the environment rather than the file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Vehicle.Service)
package config
