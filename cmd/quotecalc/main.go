// quotecalc prices quote requests from YAML files without a database.
//
// Usage:
//
//	quotecalc compute --request=<file> [--rules=<file>] [--catalog=<file>] [-o text|markdown|json]
//	quotecalc batch <file>... [--parallel=N]
//	quotecalc defaults
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
