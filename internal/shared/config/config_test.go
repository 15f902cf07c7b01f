package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())

	cfg := Load()
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "rideescrow_db", cfg.Database.Database)
	assert.Equal(t, 3000, cfg.Services.EscrowServicePort)
	assert.Equal(t, 3001, cfg.Services.AuditServicePort)
	assert.Equal(t, 60, cfg.JWT.ExpiryMinutes)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db.yaml"), []byte(
		"host: db.internal\nport: 6432\nuser: svc\npassword: \"s3cret\"\ndatabase: escrow\n",
	), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service.yaml"), []byte(
		"# ports\nescrow_service: 8080\n",
	), 0o600))
	t.Setenv("CONFIG_DIR", dir)

	cfg := Load()
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "svc", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 8080, cfg.Services.EscrowServicePort)
	// Files not present fall back to defaults.
	assert.Equal(t, 3001, cfg.Services.AuditServicePort)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db.yaml"), []byte("host: from-file\n"), 0o600))
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("DB_HOST", "from-env")

	cfg := Load()
	assert.Equal(t, "from-env", cfg.Database.Host)
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}

func TestAMQPURL(t *testing.T) {
	c := MQConfig{Host: "mq", Port: 5672, User: "guest", Password: "guest", VHost: "/"}
	assert.Equal(t, "amqp://guest:guest@mq:5672/", c.AMQPURL())
}
