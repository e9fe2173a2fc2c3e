package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func refdataCmd() *cobra.Command {
	refdataRoot := &cobra.Command{
		Use:   "refdata",
		Short: "Browse marketplace reference data",
		Long: "Browse the daemon's cached marketplace lookup tables (categories,\n" +
			"brands, cargo providers) and category attribute schemas. Tables load\n" +
			"on first use and stay cached until invalidated.",
	}

	refdataRoot.AddCommand(
		refdataListCmd(),
		refdataInvalidateCmd(),
		refdataAttributesCmd(),
	)

	return refdataRoot
}

func refdataListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <kind>",
		Short:     "List a reference table (category, brand, cargo)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"category", "brand", "cargo"},
		Example: `  msync refdata list category
  msync refdata list cargo --output json`,
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			entries, err := c.ListRefdata(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}
			return printRefdataTable(entries)
		},
	}
}

func refdataInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "invalidate <kind>",
		Short:     "Invalidate a cached reference table",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"category", "brand", "cargo"},
		Example:   `  msync refdata invalidate brand`,
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.InvalidateRefdata(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Invalidated %s cache.\n", args[0])
			return nil
		},
	}
}

func refdataAttributesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attributes <category_id>",
		Short: "Show a category's attribute schema",
		Args:  cobra.ExactArgs(1),
		Example: `  msync refdata attributes 1162
  msync refdata attributes 1162 --output json`,
		RunE: func(_ *cobra.Command, args []string) error {
			categoryID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("category id must be numeric: %w", err)
			}

			c := newClient()
			schema, err := c.GetCategoryAttributes(context.Background(), categoryID)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(schema)
			}
			return printAttributeSchema(schema)
		},
	}
}
