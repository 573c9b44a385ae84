package cmd

var config = Config{}

// Config holds flag-bound configuration shared across commands. Endpoint
// credentials are not here: they are resolved from the environment by
// mantle.LoadConfig, and only by commands that actually talk to the network.
type Config struct {
	// Chat options
	Model          string
	System         string
	NoStream       bool
	UseCompletions bool
	Background     bool

	// Telemetry config
	TelemetryEnabled bool
	OTLPEndpoint     string
}
