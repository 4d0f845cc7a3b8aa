// Command propgen validates the vehicle property definition file and
// generates the allow-list registry consumed by the server.
//
// Usage:
//
//	propgen generate --config configs/vehicle_properties.yaml --output internal/vehicleconfig/allowed_properties_gen.go
//	propgen validate --config configs/vehicle_properties.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "propgen",
		Short: "Vehicle property registry generator",
		Long: `propgen turns the vehicle property definition file into the
allow-list registry used by cartool.

Platform properties are listed by name and resolved to their platform id.
Vendor properties carry a literal id outside the system-owned range.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(generateCmd())
	root.AddCommand(validateCmd())
	return root
}

func generateCmd() *cobra.Command {
	var (
		configPath string
		outputPath string
		pkgName    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Validate the definition file and write the generated registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := generateFile(configPath, outputPath, pkgName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  generated %s (%d properties)\n", outputPath, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/vehicle_properties.yaml", "definition file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "internal/vehicleconfig/allowed_properties_gen.go", "generated Go file")
	cmd.Flags().StringVar(&pkgName, "package", "vehicleconfig", "package name of the generated file")
	return cmd
}

func validateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the definition file without generating code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := loadEntries(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d properties OK\n", configPath, len(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/vehicle_properties.yaml", "definition file")
	return cmd
}
