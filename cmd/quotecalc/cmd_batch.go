package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/cotizador/internal/loader"
	"github.com/Simplici0/cotizador/internal/pricing"
)

var batchFlags struct {
	parallel int
}

var batchCmd = &cobra.Command{
	Use:   "batch <request.yaml>...",
	Short: "Price many requests with the same rules and print a summary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchFlags.parallel, "parallel", 4, "Requests priced concurrently")
}

type batchResult struct {
	path   string
	result *pricing.Result
	err    error
}

func runBatch(cmd *cobra.Command, args []string) error {
	rules, catalog, err := pricingInputs()
	if err != nil {
		return err
	}

	results, err := priceAll(cmd.Context(), args, rules, catalog, batchFlags.parallel)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"Archivo", "Cliente", "Proyecto", "Subtotal", "Total", "Riesgos"})

	failed := 0
	for _, r := range results {
		name := filepath.Base(r.path)
		if r.err != nil {
			failed++
			t.AppendRow(table.Row{name, "", "", "", "", "error: " + r.err.Error()})
			continue
		}
		h := r.result.ClientQuote.Header
		t.AppendRow(table.Row{
			name,
			h.ClientName,
			h.ProjectName,
			r.result.Totals.Subtotal.StringFixed(2),
			r.result.Totals.Total.StringFixed(2),
			strings.Join(r.result.Internal.RiskFlags, "; "),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(results))
	}
	return nil
}

// priceAll computes every request and returns the results in argument
// order. Per-request failures are kept in the result, not returned.
func priceAll(ctx context.Context, paths []string, rules pricing.RuleSet, catalog pricing.Catalog, parallel int) ([]batchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallel < 1 {
		parallel = 1
	}

	results := make([]batchResult, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = priceOne(path, rules, catalog)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func priceOne(path string, rules pricing.RuleSet, catalog pricing.Catalog) batchResult {
	req, err := loader.LoadRequest(path)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	result, err := pricing.Compute(req, rules, catalog)
	if err != nil {
		log.Warn().Err(err).Str("request", path).Msg("request rejected")
		return batchResult{path: path, err: err}
	}
	return batchResult{path: path, result: result}
}
