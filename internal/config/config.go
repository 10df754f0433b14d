package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type DistributionConfig struct {
	Env            string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	GRPCServer     `yaml:"grpc_server"`
	DistributionDB `yaml:"distribution_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka_service"`
	Redis          `yaml:"redis"`
	Auth           `yaml:"auth"`
	Distribution   `yaml:"distribution"`
	Leads          `yaml:"leads"`
}

type HTTPServer struct {
	Host           string   `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port           string   `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type DistributionDB struct {
	Dsn            string `yaml:"dsn" env:"DISTRIBUTION_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"DISTRIBUTION_DB_MIGRATIONS"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type KafkaService struct {
	Host      string `yaml:"host" env:"KAFKA_HOST"`
	Port      string `yaml:"port" env:"KAFKA_PORT"`
	LeadTopic string `yaml:"lead_topic" env-default:"lead-events"`
}

// Brokers returns nil when kafka is not configured.
func (k KafkaService) Brokers() []string {
	if k.Host == "" {
		return nil
	}
	return []string{fmt.Sprintf("%s:%s", k.Host, k.Port)}
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type Distribution struct {
	DefaultPages []string      `yaml:"default_pages"`
	FallbackPath string        `yaml:"fallback_path" env-default:"/"`
	BucketCookie string        `yaml:"bucket_cookie" env-default:"td_bucket"`
	BucketTTL    time.Duration `yaml:"bucket_ttl" env-default:"168h"`
}

type Leads struct {
	CaptureDeadlineHours int           `yaml:"capture_deadline_hours" env-default:"6"`
	ManualDeadlineHours  int           `yaml:"manual_deadline_hours" env-default:"6"`
	SweepInterval        time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

// Load reads the config file at path, environment variables override file values.
func Load(path string) (*DistributionConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg DistributionConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg.DistributionDB.Dsn == "" {
		return nil, fmt.Errorf("distribution_db.dsn is required")
	}

	return &cfg, nil
}

func MustLoad() *DistributionConfig {
	// Processing env config variable and file
	configPath := os.Getenv("DISTRIBUTION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("DISTRIBUTION_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	return cfg
}
