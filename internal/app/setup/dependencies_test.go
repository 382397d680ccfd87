package setup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitStoreClosesDBWhenMigrationsFail(t *testing.T) {
	dsn := os.Getenv("PRINTSHOP_TEST_DSN")
	if dsn == "" {
		t.Skip("PRINTSHOP_TEST_DSN not set")
	}
	d := &Dependencies{
		Config: &config.PrintshopConfig{OrderDB: config.OrderDB{
			Driver:         "postgres",
			Dsn:            dsn,
			MigrationsPath: filepath.Join(t.TempDir(), "missing"),
		}},
		Logger: zap.NewNop(),
	}

	err := d.initStore(context.Background())
	require.Error(t, err)
	require.NotNil(t, d.DB)
	require.Len(t, d.closers, 1)

	require.NoError(t, d.Close())
	sqlDB, err := d.DB.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "connection pool is still open")
}

func TestInitStoreMemoryDriver(t *testing.T) {
	d := &Dependencies{
		Config: &config.PrintshopConfig{OrderDB: config.OrderDB{Driver: "memory"}},
		Logger: zap.NewNop(),
	}
	require.NoError(t, d.initStore(context.Background()))
	assert.Nil(t, d.DB)
	assert.Empty(t, d.closers)
	assert.NotNil(t, d.Repositories.OrderRepo)
}
