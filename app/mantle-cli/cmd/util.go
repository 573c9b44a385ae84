package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/cchalm/mantle-cli/internal/mantle"
	"github.com/cchalm/mantle-cli/internal/telemetry"
)

// setupContext returns a context that is cancelled on the first interrupt.
// A second interrupt forces shutdown.
func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx
}

// createClient resolves endpoint configuration from the environment and
// constructs the API client. Missing configuration is a terminal error.
func createClient() (*mantle.Client, mantle.Config, error) {
	cfg, err := mantle.LoadConfig()
	if err != nil {
		return nil, mantle.Config{}, err
	}
	return mantle.NewClient(cfg), cfg, nil
}

func createTelemetryProvider(ctx context.Context) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.Config{
		Enabled:        config.TelemetryEnabled,
		OTLPEndpoint:   config.OTLPEndpoint,
		ServiceVersion: version,
	}
	return telemetry.NewProvider(ctx, telemetryConfig)
}
