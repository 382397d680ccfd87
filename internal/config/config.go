package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PrintshopConfig struct {
	Env          string `yaml:"env" env:"PRINTSHOP_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	OrderDB      `yaml:"order_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	BlobStore    `yaml:"blob_store"`
	Retention    `yaml:"retention"`
	Points       `yaml:"points"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type OrderDB struct {
	// postgres or memory
	Driver         string `yaml:"driver" env:"ORDER_DB_DRIVER" env-default:"postgres"`
	Dsn            string `yaml:"dsn" env:"ORDER_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"ORDER_DB_MIGRATIONS_PATH"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled          bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host             string `yaml:"host" env:"KAFKA_HOST"`
	Port             string `yaml:"port" env:"KAFKA_PORT"`
	LedgerTopic      string `yaml:"ledger_topic" env-default:"loyalty-ledger"`
	MaintenanceTopic string `yaml:"maintenance_topic" env-default:"printshop-maintenance"`
	ClientsTopic     string `yaml:"clients_topic" env-default:"identity-clients"`
	GroupID          string `yaml:"group_id" env-default:"printshop-order-service"`
}

type BlobStore struct {
	// gcs or memory
	Driver string `yaml:"driver" env:"BLOB_STORE_DRIVER" env-default:"gcs"`
	Bucket string `yaml:"bucket" env:"BLOB_STORE_BUCKET"`
}

type Retention struct {
	AutoPurge bool          `yaml:"auto_purge" env:"RETENTION_AUTO_PURGE" env-default:"false"`
	Interval  time.Duration `yaml:"interval" env-default:"1h"`
	MaxAge    time.Duration `yaml:"max_age" env-default:"720h"`
}

type Points struct {
	// earned or net
	ReconcileMode string `yaml:"reconcile_mode" env:"POINTS_RECONCILE_MODE" env-default:"earned"`
}

func (k KafkaService) Brokers() []string {
	return []string{fmt.Sprintf("%s:%s", k.Host, k.Port)}
}

// Load reads the YAML file at path, applying env overrides.
func Load(path string) (*PrintshopConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg PrintshopConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *PrintshopConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PRINTSHOP_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PRINTSHOP_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	return cfg
}

func (c *PrintshopConfig) validate() error {
	switch c.OrderDB.Driver {
	case "postgres":
		if c.OrderDB.Dsn == "" {
			return fmt.Errorf("order_db.dsn is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown order_db.driver %q", c.OrderDB.Driver)
	}

	switch c.BlobStore.Driver {
	case "gcs":
		if c.BlobStore.Bucket == "" {
			return fmt.Errorf("blob_store.bucket is required for the gcs driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown blob_store.driver %q", c.BlobStore.Driver)
	}

	switch c.Points.ReconcileMode {
	case "earned", "net":
	default:
		return fmt.Errorf("unknown points.reconcile_mode %q", c.Points.ReconcileMode)
	}

	if c.KafkaService.Enabled && (c.KafkaService.Host == "" || c.KafkaService.Port == "") {
		return fmt.Errorf("kafka-service host and port are required when kafka is enabled")
	}

	if c.Retention.AutoPurge && c.Retention.Interval <= 0 {
		return fmt.Errorf("retention.interval must be positive when auto_purge is on")
	}

	return nil
}
