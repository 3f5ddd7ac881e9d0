// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreDB     StoreBackend = "db"
	StoreRedis  StoreBackend = "redis"
)

type ReportConfig struct {
	URL     string        `envconfig:"APN_REPORT_URL"     default:"http://apn.softcoil.com/apnReport"`
	Timeout time.Duration `envconfig:"APN_REPORT_TIMEOUT" default:"1000ms"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"         default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB"           default:"0"`
	Prefix   string        `envconfig:"REDIS_KEY_PREFIX"   default:"apn:"`
	Timeout  time.Duration `envconfig:"REDIS_TIMEOUT"      default:"2s"`
}

type RabbitMQConfig struct {
	// URL is optional; collected reports are not published when it is empty.
	URL      string `envconfig:"RABBITMQ_URL"`
	Exchange string `envconfig:"RABBITMQ_REPORT_EXCHANGE" default:"apn.reports"`
}

// Config holds the typed settings of the server.
type Config struct {
	Report          ReportConfig
	Redis           RedisConfig
	RabbitMQ        RabbitMQConfig
	StoreBackend    StoreBackend `envconfig:"STORE_BACKEND"        default:"memory"`
	CatalogOverride string       `envconfig:"APN_CATALOG_OVERRIDE"`
}

// LoadConfig reads Config from the environment after loading any env file.
func LoadConfig() (*Config, error) {
	LoadEnvFile()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	switch cfg.StoreBackend {
	case StoreMemory, StoreDB, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.Report.Timeout <= 0 {
		return nil, fmt.Errorf("APN_REPORT_TIMEOUT must be positive, got %s", cfg.Report.Timeout)
	}
	return &cfg, nil
}
