package main

import (
	"os"

	"github.com/spf13/cobra"
)

func masterCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "master",
		Short: "Maintain the client and item masterlists",
	}
	cmd.AddCommand(masterImportCmd(opts))
	return cmd
}

func masterImportCmd(opts *rootOptions) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "import <client|item> <file.csv>",
		Short: "Replace a masterlist with the rows of a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			a, err := loadApp(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.services.Import.ImportMasterCSV(cmd.Context(), args[0], f, encoding)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "file encoding: utf-8, gbk, gb18030 or windows-1252")
	return cmd
}
