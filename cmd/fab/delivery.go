package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func deliveryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delivery",
		Aliases: []string{"do"},
		Short:   "Look up delivery orders",
	}
	cmd.AddCommand(deliveryShowCmd(opts), deliveryExportCmd(opts))
	return cmd
}

func deliveryShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <do-number>",
		Short: "Show a delivery order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			do, err := a.services.Delivery.GetDelivery(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), do)
		},
	}
}

func deliveryExportCmd(opts *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <do-number>",
		Short: "Write the printable delivery note workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			f, filename, err := a.services.Delivery.ExportDeliveryNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := filepath.Join(dir, filename)
			if err := f.SaveAs(out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "o", ".", "output directory")
	return cmd
}
