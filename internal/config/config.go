// Package config provides environment configuration for the chat-relay binaries.
package config

import (
	"os"
	"strconv"
	"time"
)

// Relay holds configuration for the relay server.
type Relay struct {
	// Server settings
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Shared token expected from callers. Empty disables the check.
	ForwardToken string

	// Downstream delivery
	DownstreamMode  string // webhook, nats, or log
	WebhookURL      string
	WebhookAPIKey   string
	NATSURL         string
	NATSToken       string
	NATSSubject     string
	NATSLeadSubject string

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Widget holds configuration for the client-side conversation core.
type Widget struct {
	// Chat backend
	APIURL       string
	APIAuthToken string

	// Relay
	ForwardTranscriptURL string
	ForwardLeadURL       string
	ForwardToken         string
	ClientID             string

	// Display strings
	IntroText      string
	HeaderTitle    string
	HeaderSubtitle string
	HelperText     string

	// Business metadata passed through to the backend
	BusinessName     string
	BusinessLocation string
	BusinessPhone    string
	BusinessEmail    string
	BusinessContext  string
	BusinessHours    string

	// Page context (the CLI stands in for a browser page here)
	Page  string
	Title string

	LogLevel string
}

// Backend holds configuration for the development chat backend.
type Backend struct {
	Port            string
	Provider        string
	Model           string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	LogLevel        string
}

// LoadRelay reads relay configuration from environment variables.
func LoadRelay() *Relay {
	return &Relay{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),

		ForwardToken: getEnv("FORWARD_TOKEN", ""),

		DownstreamMode:  getEnv("DOWNSTREAM_MODE", "log"),
		WebhookURL:      getEnv("CRM_WEBHOOK_URL", ""),
		WebhookAPIKey:   getEnv("CRM_API_KEY", ""),
		NATSURL:         getEnv("NATS_URL", "nats://localhost:4222"),
		NATSToken:       getEnv("NATS_TOKEN", ""),
		NATSSubject:     getEnv("NATS_SUBJECT", "chat.transcript.stored"),
		NATSLeadSubject: getEnv("NATS_LEAD_SUBJECT", "chat.lead.stored"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// LoadWidget reads widget configuration from environment variables.
func LoadWidget() *Widget {
	return &Widget{
		APIURL:       getEnv("CHAT_API_URL", ""),
		APIAuthToken: getEnv("CHAT_API_AUTH_TOKEN", ""),

		ForwardTranscriptURL: getEnv("FORWARD_TRANSCRIPT_URL", ""),
		ForwardLeadURL:       getEnv("FORWARD_LEAD_URL", ""),
		ForwardToken:         getEnv("FORWARD_TOKEN", ""),
		ClientID:             getEnv("CLIENT_ID", ""),

		IntroText:      getEnv("INTRO_TEXT", ""),
		HeaderTitle:    getEnv("HEADER_TITLE", "Chat with us"),
		HeaderSubtitle: getEnv("HEADER_SUBTITLE", "We're here to help!"),
		HelperText:     getEnv("HELPER_TEXT", "Hi, how can we help?"),

		BusinessName:     getEnv("BUSINESS_NAME", ""),
		BusinessLocation: getEnv("BUSINESS_LOCATION", ""),
		BusinessPhone:    getEnv("BUSINESS_PHONE", ""),
		BusinessEmail:    getEnv("BUSINESS_EMAIL", ""),
		BusinessContext:  getEnv("BUSINESS_CONTEXT", ""),
		BusinessHours:    getEnv("BUSINESS_HOURS", ""),

		Page:  getEnv("PAGE_URL", "cli://chatctl"),
		Title: getEnv("PAGE_TITLE", "chatctl"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// LoadBackend reads development chat backend configuration from environment
// variables.
func LoadBackend() *Backend {
	return &Backend{
		Port:            getEnv("PORT", "8090"),
		Provider:        getEnv("LLM_PROVIDER", ""),
		Model:           getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
