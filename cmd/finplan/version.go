package main

import (
	"fmt"

	"github.com/rpgo/finplan/internal/common"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "finplan", common.GetFullVersion())
			return nil
		},
	}
}
