// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// EnsureSchema creates no indexes: every record family is schemaless and
// queried only by _id. It confirms the server still answers and logs
// where each family lives.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := deps.MongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error("schema check: mongo ping failed", zap.Error(err))
		return err
	}

	for name, ref := range appCfg.collections() {
		logger.Info("collection",
			zap.String("family", name),
			zap.String("database", ref.Database),
			zap.String("collection", ref.Collection))
	}
	return nil
}
