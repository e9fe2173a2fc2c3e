package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commercekit/marketsync/internal/trendyol"
)

func stockCmd() *cobra.Command {
	stockRoot := &cobra.Command{
		Use:   "stock",
		Short: "Update stock and prices",
	}

	stockRoot.AddCommand(
		stockSetCmd(),
		stockBulkCmd(),
	)

	return stockRoot
}

func stockSetCmd() *cobra.Command {
	var (
		quantity  int
		salePrice float64
		listPrice float64
	)

	cmd := &cobra.Command{
		Use:   "set <barcode>",
		Short: "Update one product's stock and price",
		Args:  cobra.ExactArgs(1),
		Example: `  msync stock set 8681234567890 --quantity 25
  msync stock set 8681234567890 --quantity 25 --sale-price 149.90 --list-price 199.90`,
		RunE: func(_ *cobra.Command, args []string) error {
			item := trendyol.StockPriceUpdate{
				Barcode:   args[0],
				Quantity:  quantity,
				SalePrice: salePrice,
				ListPrice: listPrice,
			}

			c := newClient()
			ack, err := c.SubmitInventory(context.Background(), []trendyol.StockPriceUpdate{item})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(ack)
			}
			fmt.Printf("Submitted. Batch: %s\n", ack.BatchRequestID)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "new stock quantity")
	cmd.Flags().Float64Var(&salePrice, "sale-price", 0, "new sale price")
	cmd.Flags().Float64Var(&listPrice, "list-price", 0, "new list price")
	cobra.CheckErr(cmd.MarkFlagRequired("quantity"))

	return cmd
}

func stockBulkCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Update many products from a JSON file",
		Long: "Reads a JSON array of stock/price updates and submits them as one\n" +
			"batch. Per-item failures surface in the batch status, matched back\n" +
			"to input lines by index.",
		Example: `  msync stock bulk --file updates.json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file) //nolint:gosec // path from CLI flag
			if err != nil {
				return fmt.Errorf("reading updates file: %w", err)
			}

			var items []trendyol.StockPriceUpdate
			if err := json.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("parsing updates file: %w", err)
			}

			c := newClient()
			ack, err := c.SubmitInventory(context.Background(), items)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(ack)
			}
			fmt.Printf("Submitted %d items. Batch: %s\n", len(items), ack.BatchRequestID)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file containing the updates")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}
