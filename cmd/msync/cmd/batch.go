package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/commercekit/marketsync/internal/api/client"
)

func batchCmd() *cobra.Command {
	batchRoot := &cobra.Command{
		Use:   "batch",
		Short: "Track asynchronous batch submissions",
		Long: "Product pushes and stock updates are accepted asynchronously; the\n" +
			"marketplace reports the real outcome through batch polling. These\n" +
			"commands inspect and wait on those batches.",
	}

	batchRoot.AddCommand(
		batchStatusCmd(),
		batchWaitCmd(),
		batchWatchCmd(),
	)

	return batchRoot
}

func batchStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <batch_id>",
		Short: "Show the current state of a batch",
		Args:  cobra.ExactArgs(1),
		Example: `  msync batch status 5631d1a1-ec81-496f-9407-99876554433
  msync batch status 5631d1a1-ec81-496f-9407-99876554433 --output json`,
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			b, err := c.GetBatch(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(b)
			}
			return printBatchDetail(b)
		},
	}
}

func batchWaitCmd() *cobra.Command {
	var (
		interval   int
		maxWait    int
		background bool
	)

	cmd := &cobra.Command{
		Use:   "wait <batch_id>",
		Short: "Wait for a batch to finish",
		Args:  cobra.ExactArgs(1),
		Example: `  msync batch wait 5631d1a1-ec81-496f-9407-99876554433
  msync batch wait 5631d1a1-ec81-496f-9407-99876554433 --max-wait 600
  msync batch wait 5631d1a1-ec81-496f-9407-99876554433 --background`,
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			result, err := c.WaitBatch(context.Background(), args[0], apiclient.WaitOptions{
				IntervalSeconds: interval,
				MaxWaitSeconds:  maxWait,
				Background:      background,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			if result.WatchID != "" {
				fmt.Printf("Watching in background. Watch: %s\n", result.WatchID)
				fmt.Printf("Check with: msync batch watch %s\n", result.WatchID)
				return nil
			}
			return printBatchDetail(result.Batch)
		},
	}

	cmd.Flags().IntVar(&interval, "interval", 0, "seconds between polls (daemon default 5)")
	cmd.Flags().IntVar(&maxWait, "max-wait", 0, "give up after this many seconds (daemon default 300)")
	cmd.Flags().BoolVar(&background, "background", false, "watch server-side and return immediately")

	return cmd
}

func batchWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <watch_id>",
		Short: "Show a background batch watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			w, err := c.GetWatch(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(w)
			}
			fmt.Printf("Watch: %s\nBatch: %s\nState: %s\n", w.WatchID, w.BatchID, w.State)
			if w.Error != "" {
				fmt.Printf("Error: %s\n", w.Error)
			}
			if w.Batch != nil {
				fmt.Println()
				return printBatchDetail(w.Batch)
			}
			return nil
		},
	}
}
