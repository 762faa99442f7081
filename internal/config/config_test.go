package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:            "development",
		APIBaseURL:     "https://api.segus.example",
		APIToken:       "token",
		EmployeeID:     12,
		EmployeeEmail:  "amira@segus.tn",
		Transport:      TransportSSE,
		ReloadInterval: 5 * time.Minute,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when API_BASE_URL is missing")
	}
}

func TestValidate_BadTransport(t *testing.T) {
	cfg := validConfig()
	cfg.Transport = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestValidate_BadEmployeeID(t *testing.T) {
	cfg := validConfig()
	cfg.EmployeeID = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive employee id")
	}
}

func TestValidate_BadReloadInterval(t *testing.T) {
	cfg := validConfig()
	cfg.ReloadInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive reload interval")
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected production mode")
	}
}
