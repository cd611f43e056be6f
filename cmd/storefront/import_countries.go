package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/service"
)

var importCountriesCmd = &cobra.Command{
	Use:   "import-countries <file.yaml>",
	Short: "Upsert country reference data from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, err := openStores(cmd.Context(), cfg, nil, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		// The CLI operates with admin capability.
		operator := &domain.Principal{Role: domain.RoleAdmin}
		n, err := service.NewCountryService(st.repos, logger).ImportCountries(cmd.Context(), operator, f)
		if err != nil {
			return fmt.Errorf("import stopped after %d countries: %w", n, err)
		}

		logger.Info("Countries imported", zap.Int("count", n), zap.String("file", args[0]))
		return nil
	},
}
