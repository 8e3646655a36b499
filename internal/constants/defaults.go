package constants

// Default server configuration values
const (
	DefaultServerPort            = 8090
	DefaultServerReadTimeoutSec  = 15
	DefaultServerWriteTimeoutSec = 15
	DefaultServerIdleTimeoutSec  = 60
	DefaultGracefulShutdownSec   = 30
)

// Default timeout values for external calls
const (
	DefaultGatewayTimeoutSec = 30
	DefaultChatbotTimeoutSec = 30
	MediaDownloadTimeoutSec  = 60
)

// Default Vertex AI generation parameters
const (
	DefaultVertexLocation     = "us-central1"
	DefaultVertexModel        = "gemini-2.0-flash-exp"
	GenerationTemperature     = 0.1
	GenerationTopP            = 0.95
	GenerationMaxOutputTokens = 8192
)

// Default tracing settings
const (
	DefaultOTLPEndpoint      = "http://localhost:4318/v1/traces"
	DefaultTracingSampleRate = 0.1
)
