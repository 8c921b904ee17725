package testhelpers

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"github.com/traffic-route-matcher/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewTrafficEventRepositoryForTest creates a traffic event repository with a small chunk size
// so that multi-chunk upserts are exercised
func NewTrafficEventRepositoryForTest(db *sqlx.DB, logger *zap.Logger, chunkSize int) repository.TrafficEventRepository {
	return postgres.NewTrafficEventRepository(NewDBForTest(db, logger), "traffic_events", chunkSize, time.UTC)
}
