package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Load a YAML catalog into the database",
		Long: `Load devices, brands, warranties and services from a YAML file.

Names are matched ignoring case, so seeding the same file twice changes
nothing. A service whose name already exists is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, label, err := openStore(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := seedFromFile(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %s\n", label, report)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}
