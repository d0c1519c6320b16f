package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/cotizador/internal/loader"
	"github.com/Simplici0/cotizador/internal/logging"
	"github.com/Simplici0/cotizador/internal/pricing"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	rules        string
	catalog      string
	overrideMode string
	logLevel     string
}

var rootCmd = &cobra.Command{
	Use:           "quotecalc",
	Short:         "Price labor-services quotes from YAML requests",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logging.Init(rootFlags.logLevel, true, cmd.ErrOrStderr())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.rules, "rules", "", "Rule overrides YAML (defaults when empty)")
	pf.StringVar(&rootFlags.catalog, "catalog", "", "PPE catalog YAML (zero-priced standard items when empty)")
	pf.StringVar(&rootFlags.overrideMode, "override-mode", string(pricing.OverrideMerge), "How overrides combine with defaults: merge or replace")
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.Version = version
}

// pricingInputs resolves the rule set and catalog shared by every request
// of one invocation.
func pricingInputs() (pricing.RuleSet, pricing.Catalog, error) {
	mode, err := pricing.ParseOverrideMode(rootFlags.overrideMode)
	if err != nil {
		return pricing.RuleSet{}, nil, err
	}
	rules, err := loader.LoadRules(rootFlags.rules, mode)
	if err != nil {
		return pricing.RuleSet{}, nil, fmt.Errorf("load rules: %w", err)
	}
	catalog, err := loader.LoadCatalog(rootFlags.catalog)
	if err != nil {
		return pricing.RuleSet{}, nil, fmt.Errorf("load catalog: %w", err)
	}
	return rules, catalog, nil
}
