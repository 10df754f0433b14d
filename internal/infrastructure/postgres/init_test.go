package postgres

import (
	"testing"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/config"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/stretchr/testify/require"
)

func TestInitDB_UnreachableDatabaseReturnsError(t *testing.T) {
	cfg := &config.DistributionConfig{
		DistributionDB: config.DistributionDB{
			Dsn:            "host=127.0.0.1 port=1 user=postgres dbname=distribution sslmode=disable connect_timeout=1",
			MigrationsPath: "migrations",
		},
	}

	db, err := InitDB(cfg, logger.NewNop())
	require.Error(t, err)
	require.Nil(t, db)
	require.ErrorContains(t, err, "failed to init db")
}
