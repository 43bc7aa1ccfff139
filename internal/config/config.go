package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	ZendeskSubdomain     string
	ZendeskAccessToken   string
	ZendeskClientID      string
	ZendeskClientSecret  string
	ZendeskScopes        []string
	ZendeskMaxBodyLength int
	HTTPAddr             string
	ToolJWTSecret        string
	GoogleAPIKey         string
	AgentModel           string
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		ZendeskSubdomain:     normalizeSubdomain(os.Getenv("ZENDESK_SUBDOMAIN")),
		ZendeskAccessToken:   os.Getenv("ZENDESK_ACCESS_TOKEN"),
		ZendeskClientID:      os.Getenv("ZENDESK_CLIENT_ID"),
		ZendeskClientSecret:  os.Getenv("ZENDESK_CLIENT_SECRET"),
		ZendeskScopes:        getEnvList("ZENDESK_SCOPES", []string{"read"}),
		ZendeskMaxBodyLength: getEnvInt("ZENDESK_MAX_BODY_LENGTH", 500),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		ToolJWTSecret:        os.Getenv("TOOL_JWT_SECRET"),
		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		AgentModel:           getEnv("AGENT_MODEL", "gemini-2.5-flash"),
	}
}

// normalizeSubdomain accepts "acme", "acme.zendesk.com" or a full URL
func normalizeSubdomain(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "https://")
	value = strings.TrimPrefix(value, "http://")
	value = strings.TrimSuffix(value, "/")
	return strings.TrimSuffix(value, ".zendesk.com")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	out := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' })
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
