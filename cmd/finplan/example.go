package main

import (
	"fmt"

	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExampleCmd() *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:       "example KIND",
		Short:     "Write an example input file for a calculator",
		Long:      "Writes an example YAML input for mortgage, compound-interest, retirement or net-worth.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"mortgage", "compound-interest", "retirement", "net-worth"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseCalculatorKind(args[0])
			if err != nil {
				return err
			}
			parser := config.NewInputParser()
			if outputFile != "" {
				if err := parser.WriteExample(kind, outputFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Example %s input written to %s\n", kind.Title(), outputFile)
				return nil
			}

			example, err := parser.CreateExample(kind)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(example)
			if err != nil {
				return fmt.Errorf("failed to marshal example: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
