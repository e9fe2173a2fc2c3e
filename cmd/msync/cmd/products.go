package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/commercekit/marketsync/internal/api/client"
	domain "github.com/commercekit/marketsync/pkg/types"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Push, import, and list products",
	}

	productsRoot.AddCommand(
		productsPushCmd(),
		productsImportCmd(),
		productsListCmd(),
	)

	return productsRoot
}

func productsPushCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a product to the marketplace",
		Long: "Reads a local product from a JSON file and submits it for creation on\n" +
			"the marketplace. The command returns a batch id; approval arrives later\n" +
			"and is tracked with 'msync batch'.",
		Example: `  msync products push --file product.json
  msync products push --file product.json --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file) //nolint:gosec // path from CLI flag
			if err != nil {
				return fmt.Errorf("reading product file: %w", err)
			}

			var p domain.LocalProduct
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("parsing product file: %w", err)
			}

			c := newClient()
			ack, err := c.PushProduct(context.Background(), &p)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(ack)
			}
			fmt.Printf("Submitted. Batch: %s\n", ack.BatchRequestID)
			fmt.Printf("Track with: msync batch status %s\n", ack.BatchRequestID)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file containing the product")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func productsImportCmd() *cobra.Command {
	var persist bool

	cmd := &cobra.Command{
		Use:   "import <barcode>",
		Short: "Import a marketplace product as a local draft",
		Args:  cobra.ExactArgs(1),
		Example: `  msync products import 8681234567890
  msync products import 8681234567890 --persist`,
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			draft, err := c.ImportProduct(context.Background(), args[0], persist)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(draft)
			}
			return printDraftDetail(draft)
		},
	}

	cmd.Flags().BoolVar(&persist, "persist", false, "also store the draft in the daemon")

	return cmd
}

func productsListCmd() *cobra.Command {
	var opts apiclient.ProductListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketplace products",
		Example: `  msync products list
  msync products list --approved false
  msync products list --barcode 8681234567890`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			page, err := c.ListProducts(context.Background(), opts)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(page)
			}
			if len(page.Content) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			if err := printProductsTable(page.Content); err != nil {
				return err
			}
			fmt.Printf("\nPage %d of %d (%d products)\n",
				page.Page+1, page.TotalPages, page.TotalElements)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&opts.Size, "size", 50, "page size")
	cmd.Flags().StringVar(&opts.Approved, "approved", "", "filter by approval (true/false)")
	cmd.Flags().StringVar(&opts.OnSale, "on-sale", "", "filter by on-sale flag (true/false)")
	cmd.Flags().StringVar(&opts.Barcode, "barcode", "", "filter by exact barcode")

	return cmd
}
