package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitfantasy/nimo-fab/internal/oms/service"
	"github.com/spf13/cobra"
)

func ordersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"jo"},
		Short:   "Manage job orders",
	}
	cmd.AddCommand(
		ordersListCmd(opts),
		ordersShowCmd(opts),
		ordersCreateCmd(opts),
		ordersHistoryCmd(opts),
		ordersTransitionCmd(opts, "confirm", "Confirm a Preparing job order into a delivery order"),
		ordersTransitionCmd(opts, "complete", "Complete a Delivering job order"),
		ordersTransitionCmd(opts, "cancel", "Cancel a Preparing or Delivering job order"),
	)
	return cmd
}

func ordersListCmd(opts *rootOptions) *cobra.Command {
	var (
		q      service.ListOrdersQuery
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job orders issued in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			orders, err := a.services.Dashboard.ListOrders(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), orders)
			}
			return printOrderTable(cmd.OutOrStdout(), orders)
		},
	}
	cmd.Flags().StringVar(&q.Month, "month", "", "issue month 1-12 (default current month)")
	cmd.Flags().StringVar(&q.Year, "year", "", "issue year (default current year)")
	cmd.Flags().StringVar(&q.Status, "status", "", "Preparing, Delivering, Completed or Canceled")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func ordersShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <jo-number>",
		Short: "Show a job order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.services.Order.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), order)
		},
	}
}

func ordersCreateCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft job order from a JSON request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var req service.CreateOrderRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("invalid request: %w", err)
			}

			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.services.Order.CreateDraft(cmd.Context(), opts.operator, &req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), order)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "request JSON file, - for stdin")
	return cmd
}

func ordersHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <jo-number>",
		Short: "Show the recorded transitions of a job order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			logs, err := a.services.Order.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), logs)
		},
	}
}

// ordersTransitionCmd confirm/complete/cancel 共用
func ordersTransitionCmd(opts *rootOptions, event, short string) *cobra.Command {
	return &cobra.Command{
		Use:   event + " <jo-number>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var result interface{}
			switch event {
			case "confirm":
				result, err = a.services.Order.Confirm(ctx, opts.operator, args[0])
			case "complete":
				result, err = a.services.Status.Complete(ctx, opts.operator, args[0])
			case "cancel":
				result, err = a.services.Status.Cancel(ctx, opts.operator, args[0])
			default:
				err = fmt.Errorf("unknown event %q", event)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}
