// Command finplan runs the financial projection calculators from the command
// line or as a REST API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	logLevel   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "finplan",
		Short:         "Financial projection calculators",
		Long:          "finplan projects mortgages, compound growth, retirement savings and net worth.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log calculation inputs and timings")

	root.AddCommand(
		newServeCmd(opts),
		newCalculatorCmd(opts, calcMortgage),
		newCalculatorCmd(opts, calcCompound),
		newCalculatorCmd(opts, calcRetirement),
		newCalculatorCmd(opts, calcNetWorth),
		newExampleCmd(),
		newVersionCmd(),
	)
	return root
}
