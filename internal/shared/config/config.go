package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the full service configuration.
type Config struct {
	Database DBConfig
	RabbitMQ MQConfig
	Services ServicesConfig
	JWT      JWTConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type MQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type ServicesConfig struct {
	EscrowServicePort int
	AuditServicePort  int
}

type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// Load reads flat YAML files from CONFIG_DIR (default ./config);
// environment variables override file values.
func Load() Config {
	configDir := getEnv("CONFIG_DIR", "./config")
	cfg := Config{}

	dbKV, _ := parseYAML(filepath.Join(configDir, "db.yaml"))
	cfg.Database.Host = getStr("DB_HOST", dbKV, "host", "localhost")
	cfg.Database.Port = getInt("DB_PORT", dbKV, "port", 5432)
	cfg.Database.User = getStr("DB_USER", dbKV, "user", "rideescrow_user")
	cfg.Database.Password = getStr("DB_PASSWORD", dbKV, "password", "rideescrow_pass")
	cfg.Database.Database = getStr("DB_NAME", dbKV, "database", "rideescrow_db")
	cfg.Database.SSLMode = getStr("DB_SSLMODE", dbKV, "sslmode", "disable")

	mqKV, _ := parseYAML(filepath.Join(configDir, "mq.yaml"))
	cfg.RabbitMQ.Host = getStr("RABBITMQ_HOST", mqKV, "host", "localhost")
	cfg.RabbitMQ.Port = getInt("RABBITMQ_PORT", mqKV, "port", 5672)
	cfg.RabbitMQ.User = getStr("RABBITMQ_USER", mqKV, "user", "guest")
	cfg.RabbitMQ.Password = getStr("RABBITMQ_PASSWORD", mqKV, "password", "guest")
	cfg.RabbitMQ.VHost = getStr("RABBITMQ_VHOST", mqKV, "vhost", "/")

	svcKV, _ := parseYAML(filepath.Join(configDir, "service.yaml"))
	cfg.Services.EscrowServicePort = getInt("ESCROW_SERVICE_PORT", svcKV, "escrow_service", 3000)
	cfg.Services.AuditServicePort = getInt("AUDIT_SERVICE_PORT", svcKV, "audit_service", 3001)

	jwtKV, _ := parseYAML(filepath.Join(configDir, "jwt.yaml"))
	cfg.JWT.Secret = getStr("JWT_SECRET", jwtKV, "secret", "dev_secret")
	cfg.JWT.ExpiryMinutes = getInt("JWT_EXPIRY_MINUTES", jwtKV, "expiry_minutes", 60)

	return cfg
}

// parseYAML handles flat "key: value" files only. Comments and blank
// lines are skipped. Returns nil map when the file is absent.
func parseYAML(path string) (map[string]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		result[key] = val
	}
	return result, sc.Err()
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getStr(envKey string, kv map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if val, ok := kv[key]; ok && val != "" {
		return val
	}
	return def
}

func getInt(envKey string, kv map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if val, ok := kv[key]; ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

// DSN returns the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// AMQPURL returns the RabbitMQ connection URL.
func (c MQConfig) AMQPURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}
