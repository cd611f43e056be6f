package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	mongorepo "github.com/jafarshop/storefront/internal/repository/mongo"
	"github.com/jafarshop/storefront/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the PostgreSQL schema and MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.StorageDriver == config.StorageDriverMemory {
			logger.Info("Nothing to migrate for in-memory storage")
			return nil
		}

		st, err := openStores(cmd.Context(), cfg, nil, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := postgres.Migrate(cmd.Context(), st.db); err != nil {
			return err
		}
		if err := mongorepo.EnsureIndexes(cmd.Context(), st.mongoDB); err != nil {
			return err
		}

		logger.Info("Migration complete", zap.String("database", cfg.Database.DBName), zap.String("mongo_database", cfg.Mongo.Database))
		return nil
	},
}
