package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/segusengineering/worksync/internal/config"
)

type envConfig struct {
	Env            string `env:"ENV" envDefault:"production"`
	APIBaseURL     string `env:"API_BASE_URL,required"`
	APIToken       string `env:"API_TOKEN,required"`
	EmployeeID     int64  `env:"EMPLOYEE_ID,required"`
	EmployeeEmail  string `env:"EMPLOYEE_EMAIL,required"`
	Transport      string `env:"REALTIME_TRANSPORT" envDefault:"sse"`
	DatabaseURL    string `env:"DATABASE_URL"`
	AutoStart      bool   `env:"AUTO_START_SESSION" envDefault:"false"`
	ReloadInterval int    `env:"RELOAD_INTERVAL_MIN" envDefault:"5"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:            raw.Env,
		APIBaseURL:     raw.APIBaseURL,
		APIToken:       raw.APIToken,
		EmployeeID:     raw.EmployeeID,
		EmployeeEmail:  raw.EmployeeEmail,
		Transport:      raw.Transport,
		DatabaseURL:    raw.DatabaseURL,
		AutoStart:      raw.AutoStart,
		ReloadInterval: time.Duration(raw.ReloadInterval) * time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
