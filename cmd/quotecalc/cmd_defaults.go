package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/cotizador/internal/pricing"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in pricing rules as an overrides document",
	RunE:  runDefaults,
}

func runDefaults(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(pricing.DefaultRules().Overrides())
	if err != nil {
		return fmt.Errorf("encode default rules: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
