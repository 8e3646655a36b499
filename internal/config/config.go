package config

import (
	"encoding/json"
	"os"
	"strconv"

	"wahabridge/internal/constants"
	"wahabridge/internal/models"
)

var (
	ErrMissingGatewayURL    = models.ConfigError{Message: "missing gateway API URL"}
	ErrMissingVertexProject = models.ConfigError{Message: "missing GCP project for Vertex AI"}
	ErrMissingChatbotURL    = models.ConfigError{Message: "missing chatbot API URL (chatbot dispatch is enabled)"}
)

// LoadConfig reads the JSON config file, applies environment variable
// overrides, fills defaults and validates. The file is optional; a
// missing file means environment-only configuration.
func LoadConfig(path string) (*models.Config, error) {
	var config models.Config

	if path != "" {
		file, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(file, &config); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnvironmentOverrides(&config)
	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	// SECURITY: the webhook secret should be set via environment
	if v := os.Getenv("WAHABRIDGE_WEBHOOK_SECRET"); v != "" {
		c.Server.WebhookSecret = v
	}

	if v := os.Getenv("WAHA_API_URL"); v != "" {
		c.Gateway.APIBaseURL = v
	}
	if v := os.Getenv("WAHA_API_KEY"); v != "" {
		c.Gateway.APIKey = v
	}

	if v := os.Getenv("CHATBOT_API_URL"); v != "" {
		c.Chatbot.APIBaseURL = v
	}
	if v := os.Getenv("CHATBOT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Chatbot.Enabled = enabled
		}
	}
	if v := os.Getenv("ASSISTANT"); v != "" {
		c.Chatbot.Assistant = v
	}
	if v := os.Getenv("ASSISTANT_NAME"); v != "" {
		c.Chatbot.AssistantName = v
	}

	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Tracing.Enabled = enabled
		}
	}
	if v := os.Getenv("TRACING_OTLP_ENDPOINT"); v != "" {
		c.Tracing.OTLPEndpoint = v
	}

	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Vertex.CredentialsFile = v
	}
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		c.Vertex.Project = v
	}
	if v := os.Getenv("GCP_LOCATION"); v != "" {
		c.Vertex.Location = v
	}
	if v := os.Getenv("VERTEX_AI_MODEL"); v != "" {
		c.Vertex.Model = v
	}
}

func applyDefaults(c *models.Config) {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Gateway.TimeoutSec <= 0 {
		c.Gateway.TimeoutSec = constants.DefaultGatewayTimeoutSec
	}
	if c.Chatbot.TimeoutSec <= 0 {
		c.Chatbot.TimeoutSec = constants.DefaultChatbotTimeoutSec
	}
	if c.Vertex.Location == "" {
		c.Vertex.Location = constants.DefaultVertexLocation
	}
	if c.Vertex.Model == "" {
		c.Vertex.Model = constants.DefaultVertexModel
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = "development"
	}
	if c.Tracing.OTLPEndpoint == "" {
		c.Tracing.OTLPEndpoint = constants.DefaultOTLPEndpoint
	}
	if c.Tracing.SampleRate <= 0 {
		c.Tracing.SampleRate = constants.DefaultTracingSampleRate
	}
}

func validate(c *models.Config) error {
	if c.Gateway.APIBaseURL == "" {
		return ErrMissingGatewayURL
	}
	if c.Vertex.Project == "" {
		return ErrMissingVertexProject
	}
	if c.Chatbot.Enabled && c.Chatbot.APIBaseURL == "" {
		return ErrMissingChatbotURL
	}
	return nil
}
