package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openfmb-energy/openfmb-client/client"
	"github.com/openfmb-energy/openfmb-client/internal/config"
	"github.com/openfmb-energy/openfmb-client/internal/logger"
	"github.com/openfmb-energy/openfmb-client/internal/mockapi"
	"github.com/openfmb-energy/openfmb-client/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "openfmb",
		Short: "OpenFMB telemetry client",
		Long:  `Command line client for retrieving device telemetry from an OpenFMB microgrid monitoring backend`,
	}

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	rootCmd.AddCommand(
		devicesCmd(),
		lastStateCmd(),
		historicalCmd(),
		healthCmd(),
		mockCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env (when present) and the environment config, and builds the
// logger and API client from them.
func setup() (*config.Config, *client.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	log := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	apiClient := client.New(cfg.APIBaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log),
	)

	return cfg, apiClient, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the device UUIDs registered with the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, apiClient, err := setup()
			if err != nil {
				return err
			}

			devices, err := apiClient.GetDevices()
			if err != nil {
				return err
			}
			return printJSON(devices)
		},
	}
}

func lastStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-state <device-uuid>",
		Short: "Show the latest measurement for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceUUID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid device uuid %q: %w", args[0], err)
			}

			_, apiClient, err := setup()
			if err != nil {
				return err
			}

			m, err := apiClient.GetLastState(deviceUUID)
			if err != nil {
				return err
			}
			return printJSON(m)
		},
	}
}

func historicalCmd() *cobra.Command {
	var (
		limit int
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "historical <device-uuid>",
		Short: "Show historical measurements for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceUUID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid device uuid %q: %w", args[0], err)
			}

			query := client.HistoricalQuery{Limit: limit}
			if start != "" {
				if query.Start, err = time.Parse(time.RFC3339, start); err != nil {
					return fmt.Errorf("invalid --start timestamp %q: %w", start, err)
				}
			}
			if end != "" {
				if query.End, err = time.Parse(time.RFC3339, end); err != nil {
					return fmt.Errorf("invalid --end timestamp %q: %w", end, err)
				}
			}

			_, apiClient, err := setup()
			if err != nil {
				return err
			}

			measurements, err := apiClient.GetHistoricalData(deviceUUID, query)
			if err != nil {
				return err
			}
			return printJSON(measurements)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", client.DefaultHistoricalLimit, "maximum number of records (1-5000)")
	cmd.Flags().StringVar(&start, "start", "", "inclusive start timestamp (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "inclusive end timestamp (RFC 3339)")

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe backend and database connectivity",
		Long:  `Exits 0 when the backend reports a healthy database, non-zero otherwise, so scripts can gate on it before starting a control loop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, apiClient, err := setup()
			if err != nil {
				return err
			}

			if !apiClient.CheckHealth() {
				return fmt.Errorf("OpenFMB API at %s is unhealthy", cfg.APIBaseURL)
			}

			fmt.Println("ok")
			return nil
		},
	}
}

func mockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mock",
		Short: "Run an in-memory mock OpenFMB backend",
		Long:  `Serves canned devices and measurement series on the same four endpoints as the real backend, for local development without a live microgrid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			log := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mockapi.NewServer(log)
			if err := server.Start(ctx, cfg.MockHost, cfg.MockPort); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			log.Info("mock OpenFMB API shutdown complete")
			return nil
		},
	}
}
