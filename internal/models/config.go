package models

// Config holds the application configuration
type Config struct {
	LogLevel string        `json:"log_level"`
	Server   ServerConfig  `json:"server"`
	Gateway  GatewayConfig `json:"gateway"`
	Chatbot  ChatbotConfig `json:"chatbot"`
	Vertex   VertexConfig  `json:"vertex"`
	Tracing  TracingConfig `json:"tracing"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Port          int    `json:"port"`
	WebhookSecret string `json:"webhook_secret"`
}

// GatewayConfig holds WAHA gateway related configuration
type GatewayConfig struct {
	APIBaseURL string `json:"api_base_url"`
	APIKey     string `json:"api_key"`
	TimeoutSec int    `json:"timeout_sec"`
}

// ChatbotConfig holds chatbot backend related configuration.
// Enabled gates the dispatch step; while false the pipeline substitutes
// the stub success envelope instead of calling the backend.
type ChatbotConfig struct {
	APIBaseURL    string `json:"api_base_url"`
	Enabled       bool   `json:"enabled"`
	Assistant     string `json:"assistant"`
	AssistantName string `json:"assistant_name"`
	TimeoutSec    int    `json:"timeout_sec"`
}

// VertexConfig holds Google Cloud / Vertex AI related configuration
type VertexConfig struct {
	CredentialsFile string `json:"credentials_file"`
	Project         string `json:"project"`
	Location        string `json:"location"`
	Model           string `json:"model"`
}

// TracingConfig holds OpenTelemetry related configuration. When
// disabled, span calls are no-ops on the default tracer provider.
type TracingConfig struct {
	Enabled      bool    `json:"enabled"`
	Environment  string  `json:"environment"`
	OTLPEndpoint string  `json:"otlp_endpoint"`
	SampleRate   float64 `json:"sample_rate"`
	UseStdout    bool    `json:"use_stdout"`
}

type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
