package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func configureCmd() *cobra.Command {
	configureRoot := &cobra.Command{
		Use:   "configure",
		Short: "Manage marketplace credentials",
		Long: "Set or inspect the marketplace credential tuple (API key, API secret,\n" +
			"supplier id) held by the daemon. Replacement is atomic and takes effect\n" +
			"on the next marketplace request.",
	}

	configureRoot.AddCommand(
		configureSetCmd(),
		configureStatusCmd(),
	)

	return configureRoot
}

func configureSetCmd() *cobra.Command {
	var (
		apiKey     string
		apiSecret  string
		supplierID string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the credential tuple",
		Example: `  msync configure set --api-key k --api-secret s --supplier-id 1234
  msync configure set --api-key "$TY_KEY" --api-secret "$TY_SECRET" --supplier-id "$TY_SUPPLIER"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			status, err := c.SetCredentials(context.Background(), apiKey, apiSecret, supplierID)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(status)
			}
			fmt.Printf("Credentials set for supplier %s.\n", status.SupplierID)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "marketplace API key")
	cmd.Flags().StringVar(&apiSecret, "api-secret", "", "marketplace API secret")
	cmd.Flags().StringVar(&supplierID, "supplier-id", "", "supplier account id")
	cobra.CheckErr(cmd.MarkFlagRequired("api-key"))
	cobra.CheckErr(cmd.MarkFlagRequired("api-secret"))
	cobra.CheckErr(cmd.MarkFlagRequired("supplier-id"))

	return cmd
}

func configureStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show credential status",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			status, err := c.GetCredentialStatus(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(status)
			}
			if !status.Configured {
				fmt.Println("Not configured.")
				return nil
			}
			fmt.Printf("Configured for supplier %s.\n", status.SupplierID)
			return nil
		},
	}
}
