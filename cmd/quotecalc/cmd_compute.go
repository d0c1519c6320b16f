package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Simplici0/cotizador/internal/loader"
	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/report"
)

var computeFlags struct {
	request  string
	output   string
	internal bool
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Price one request and print the quote",
	RunE:  runCompute,
}

func init() {
	f := computeCmd.Flags()
	f.StringVar(&computeFlags.request, "request", "", "Quote request YAML (required)")
	f.StringVarP(&computeFlags.output, "output", "o", "text", "Output format: text, markdown or json")
	f.BoolVar(&computeFlags.internal, "internal", false, "Also print the internal cost breakdown")

	_ = computeCmd.MarkFlagRequired("request")
}

func runCompute(cmd *cobra.Command, _ []string) error {
	rules, catalog, err := pricingInputs()
	if err != nil {
		return err
	}
	req, err := loader.LoadRequest(computeFlags.request)
	if err != nil {
		return err
	}
	result, err := pricing.Compute(req, rules, catalog)
	if err != nil {
		return fmt.Errorf("%s: %w", computeFlags.request, err)
	}
	log.Debug().Str("request", computeFlags.request).Str("total", result.Totals.Total.String()).Msg("quote computed")

	out := cmd.OutOrStdout()
	if computeFlags.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	format, err := report.ParseFormat(computeFlags.output)
	if err != nil {
		return err
	}
	fmt.Fprint(out, report.ClientQuote(result.ClientQuote, format))
	if computeFlags.internal {
		fmt.Fprintln(out)
		fmt.Fprint(out, report.Internal(result.Internal, format))
	}
	return nil
}
