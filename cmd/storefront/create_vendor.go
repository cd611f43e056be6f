package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/service"
)

var (
	vendorEmail  string
	vendorRole   string
	vendorAPIKey string
)

const createVendorExample = `  storefront create-vendor "Zain Shop" --email ops@zain.example
  storefront create-vendor "Back office" --role admin`

var createVendorCmd = &cobra.Command{
	Use:     "create-vendor <name>",
	Short:   "Create a vendor (or admin) account and print its API key",
	Example: createVendorExample,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		st, err := openStores(cmd.Context(), cfg, nil, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		vendors := service.NewVendorService(st.repos, logger)
		vendor, apiKey, err := vendors.CreateVendor(cmd.Context(), args[0], vendorEmail, domain.Role(vendorRole), vendorAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create vendor: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Vendor created successfully!\n\n")
		fmt.Fprintf(out, "Vendor ID: %s\n", vendor.ID.String())
		fmt.Fprintf(out, "Vendor Name: %s\n", vendor.Name)
		fmt.Fprintf(out, "Role: %s\n", vendor.Role)
		fmt.Fprintf(out, "API Key: %s\n", apiKey)
		fmt.Fprintf(out, "\n⚠️  IMPORTANT: Save this API key securely! You won't be able to see it again.\n")
		fmt.Fprintf(out, "\nUse this API key in the Authorization header:\n")
		fmt.Fprintf(out, "Authorization: Bearer %s\n", apiKey)
		return nil
	},
}

func init() {
	createVendorCmd.Flags().StringVar(&vendorEmail, "email", "", "contact email")
	createVendorCmd.Flags().StringVar(&vendorRole, "role", string(domain.RoleVendor), "vendor or admin")
	createVendorCmd.Flags().StringVar(&vendorAPIKey, "api-key", "", "API key to assign (generated when empty)")
}
