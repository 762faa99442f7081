package config

import (
	"fmt"
	"time"
)

const (
	TransportSSE       = "sse"
	TransportWebSocket = "websocket"
)

type Config struct {
	Env            string
	APIBaseURL     string
	APIToken       string
	EmployeeID     int64
	EmployeeEmail  string
	Transport      string
	DatabaseURL    string
	AutoStart      bool
	ReloadInterval time.Duration
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.EmployeeID <= 0 {
		return fmt.Errorf("EMPLOYEE_ID must be positive, got %d", c.EmployeeID)
	}
	if c.Transport != TransportSSE && c.Transport != TransportWebSocket {
		return fmt.Errorf("REALTIME_TRANSPORT must be %q or %q, got %q", TransportSSE, TransportWebSocket, c.Transport)
	}
	if c.ReloadInterval <= 0 {
		return fmt.Errorf("RELOAD_INTERVAL_MIN must be positive, got %s", c.ReloadInterval)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "API_BASE_URL", value: c.APIBaseURL},
		{name: "API_TOKEN", value: c.APIToken},
		{name: "EMPLOYEE_EMAIL", value: c.EmployeeEmail},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
