package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds service configuration.
type Config struct {
	ServerAddr        string
	WorkflowAPIURL    string
	IdentityAPIURL    string
	UpstreamTimeout   time.Duration
	LLMAPIURL         string
	LLMAPIKey         string
	LLMModel          string
	LLMTimeout        time.Duration
	ContextOrderLimit int
}

// Load reads configuration from environment.
func Load() (*Config, error) {
	workflowURL := os.Getenv("WORKFLOW_API_URL")
	if workflowURL == "" {
		return nil, fmt.Errorf("WORKFLOW_API_URL is required")
	}
	identityURL := os.Getenv("IDENTITY_API_URL")
	if identityURL == "" {
		return nil, fmt.Errorf("IDENTITY_API_URL is required")
	}
	llmURL := os.Getenv("LLM_API_URL")
	if llmURL == "" {
		return nil, fmt.Errorf("LLM_API_URL is required")
	}

	return &Config{
		ServerAddr:        getenv("SERVER_ADDR", "0.0.0.0:8080"),
		WorkflowAPIURL:    workflowURL,
		IdentityAPIURL:    identityURL,
		UpstreamTimeout:   parseDuration(getenv("UPSTREAM_TIMEOUT", "15s"), 15*time.Second),
		LLMAPIURL:         llmURL,
		LLMAPIKey:         os.Getenv("LLM_API_KEY"),
		LLMModel:          getenv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:        parseDuration(getenv("LLM_TIMEOUT", "60s"), 60*time.Second),
		ContextOrderLimit: parseInt(getenv("CONTEXT_ORDER_LIMIT", "10"), 10),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}
