package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
order_db:
  driver: memory
blob_store:
  driver: memory
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPServer.Port)
	assert.Equal(t, "9090", cfg.GRPCServer.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, "earned", cfg.Points.ReconcileMode)
	assert.Equal(t, time.Hour, cfg.Retention.Interval)
	assert.Equal(t, 720*time.Hour, cfg.Retention.MaxAge)
	assert.False(t, cfg.KafkaService.Enabled)
	assert.Equal(t, "loyalty-ledger", cfg.KafkaService.LedgerTopic)
}

func TestLoadReadsKafkaSection(t *testing.T) {
	path := writeConfig(t, `
order_db:
  driver: memory
blob_store:
  driver: memory
kafka-service:
  enabled: true
  host: kafka
  port: "9092"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaService.Brokers())
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"postgres without dsn": `
order_db:
  driver: postgres
blob_store:
  driver: memory
`,
		"gcs without bucket": `
order_db:
  driver: memory
blob_store:
  driver: gcs
`,
		"unknown reconcile mode": `
order_db:
  driver: memory
blob_store:
  driver: memory
points:
  reconcile_mode: gross
`,
		"kafka without brokers": `
order_db:
  driver: memory
blob_store:
  driver: memory
kafka-service:
  enabled: true
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
