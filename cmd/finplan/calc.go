package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rpgo/finplan/internal/calculation"
	"github.com/rpgo/finplan/internal/common"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/internal/output"
	"github.com/spf13/cobra"
)

// calculator describes one calculator subcommand.
type calculator struct {
	use     string
	aliases []string
	kind    domain.CalculatorKind
	short   string
	run     func(ctx context.Context, ce *calculation.CalculationEngine, p *config.InputParser, file string) (any, error)
}

var calcMortgage = calculator{
	use:   "mortgage",
	kind:  domain.KindMortgage,
	short: "Amortize a mortgage and estimate the full monthly payment",
	run: func(ctx context.Context, ce *calculation.CalculationEngine, p *config.InputParser, file string) (any, error) {
		in, err := p.LoadMortgage(file)
		if err != nil {
			return nil, err
		}
		return result(ce.Mortgage(ctx, *in))
	},
}

var calcCompound = calculator{
	use:     "compound",
	aliases: []string{"compound-interest"},
	kind:    domain.KindCompoundInterest,
	short:   "Project compound growth with monthly contributions",
	run: func(ctx context.Context, ce *calculation.CalculationEngine, p *config.InputParser, file string) (any, error) {
		in, err := p.LoadCompoundInterest(file)
		if err != nil {
			return nil, err
		}
		return result(ce.CompoundInterest(ctx, *in))
	},
}

var calcRetirement = calculator{
	use:   "retirement",
	kind:  domain.KindRetirement,
	short: "Project retirement savings, readiness and withdrawal options",
	run: func(ctx context.Context, ce *calculation.CalculationEngine, p *config.InputParser, file string) (any, error) {
		in, err := p.LoadRetirement(file)
		if err != nil {
			return nil, err
		}
		return result(ce.Retirement(ctx, *in))
	},
}

var calcNetWorth = calculator{
	use:     "networth",
	aliases: []string{"net-worth"},
	kind:    domain.KindNetWorth,
	short:   "Summarize assets and liabilities into a net worth statement",
	run: func(ctx context.Context, ce *calculation.CalculationEngine, p *config.InputParser, file string) (any, error) {
		in, err := p.LoadNetWorth(file)
		if err != nil {
			return nil, err
		}
		return result(ce.NetWorth(ctx, *in))
	},
}

// result widens a typed result without producing a non-nil interface for a
// nil pointer.
func result[R any](r *R, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newCalculatorCmd(root *rootOptions, c calculator) *cobra.Command {
	var inputFile, format, outputFile, chartFile string
	cmd := &cobra.Command{
		Use:     c.use,
		Aliases: c.aliases,
		Short:   c.short,
		Long: fmt.Sprintf("%s.\n\nThe input file is YAML or JSON; run `finplan example %s` for a template.",
			c.short, c.kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatterByName(format)
			if err != nil {
				return err
			}

			cfg, err := loadAppConfig(root)
			if err != nil {
				return err
			}
			logger := common.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

			ce := calculation.NewCalculationEngine()
			ce.SetLogger(common.NewCalcLogger(logger))
			ce.Debug = root.debug

			res, err := c.run(cmd.Context(), ce, config.NewInputParser(), inputFile)
			if err != nil {
				return err
			}
			doc, err := output.FromResult(res)
			if err != nil {
				return err
			}

			if outputFile != "" {
				if err := output.WriteFormatted(formatter, doc, outputFile); err != nil {
					return err
				}
				logger.Info().Str("file", outputFile).Str("format", formatter.Name()).Msg("Report written")
			} else {
				data, err := formatter.Format(doc)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}

			if chartFile != "" {
				png, err := output.RenderChart(doc)
				if err != nil {
					return err
				}
				if err := os.WriteFile(chartFile, png, 0o644); err != nil {
					return fmt.Errorf("failed to write chart %s: %w", chartFile, err)
				}
				logger.Info().Str("file", chartFile).Msg("Chart written")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file (YAML or JSON)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&chartFile, "chart", "", "also render the projection chart to this PNG file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// loadAppConfig loads the config file named by --config, applying the
// --log-level override.
func loadAppConfig(root *rootOptions) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(root.configFile)
	if err != nil {
		return nil, err
	}
	if root.logLevel != "" {
		cfg.Logging.Level = root.logLevel
	}
	return cfg, nil
}
