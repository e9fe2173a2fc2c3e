package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/commercekit/marketsync/internal/api/client"
)

func ordersCmd() *cobra.Command {
	ordersRoot := &cobra.Command{
		Use:   "orders",
		Short: "List, import, and invoice marketplace orders",
	}

	ordersRoot.AddCommand(
		ordersListCmd(),
		ordersImportCmd(),
		ordersInvoiceCmd(),
	)

	return ordersRoot
}

func ordersListCmd() *cobra.Command {
	var opts apiclient.OrderListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketplace orders",
		Example: `  msync orders list
  msync orders list --status Created
  msync orders list --start-date 2026-08-01T00:00:00Z`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			page, err := c.ListOrders(context.Background(), opts)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(page)
			}
			if len(page.Content) == 0 {
				fmt.Println("No orders found.")
				return nil
			}
			if err := printOrdersTable(page.Content); err != nil {
				return err
			}
			fmt.Printf("\nPage %d of %d (%d orders)\n",
				page.Page+1, page.TotalPages, page.TotalElements)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&opts.Size, "size", 50, "page size")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by order status")
	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", "RFC 3339 lower bound")
	cmd.Flags().StringVar(&opts.EndDate, "end-date", "", "RFC 3339 upper bound")

	return cmd
}

func ordersImportCmd() *cobra.Command {
	var (
		status    string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import orders into the daemon",
		Example: `  msync orders import
  msync orders import --status Created --start-date 2026-08-01T00:00:00Z`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			n, err := c.ImportOrders(context.Background(), status, startDate, endDate)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(map[string]int{"imported": n})
			}
			fmt.Printf("Imported %d orders.\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by order status")
	cmd.Flags().StringVar(&startDate, "start-date", "", "RFC 3339 lower bound")
	cmd.Flags().StringVar(&endDate, "end-date", "", "RFC 3339 upper bound")

	return cmd
}

func ordersInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoice <order_id>",
		Short: "Create an invoice for an order",
		Args:  cobra.ExactArgs(1),
		Example: `  msync orders invoice 880291
  msync orders invoice 880291 --output json`,
		RunE: func(_ *cobra.Command, args []string) error {
			orderID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("order id must be numeric: %w", err)
			}

			c := newClient()
			ref, err := c.CreateInvoice(context.Background(), orderID)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(ref)
			}
			return printInvoiceDetail(ref)
		},
	}
}
