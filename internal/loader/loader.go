// Package loader reads rule overrides, PPE catalogs and quote requests from
// YAML files for the command-line tools.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/cotizador/internal/pricing"
)

// CatalogFile is the on-disk shape of a PPE catalog.
type CatalogFile struct {
	Items []pricing.CatalogItem `yaml:"items"`
}

// LoadRules reads a rule-override document and resolves it against the
// built-in defaults. An empty path yields the defaults.
func LoadRules(path string, mode pricing.OverrideMode) (pricing.RuleSet, error) {
	if path == "" {
		return pricing.DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var overrides map[string]any
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return pricing.RuleSet{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	rules, err := pricing.ResolveRules(overrides, mode)
	if err != nil {
		return pricing.RuleSet{}, fmt.Errorf("resolve rules from %s: %w", path, err)
	}
	return rules, nil
}

// LoadCatalog reads a catalog file. An empty path yields the standard PPE
// items priced at zero.
func LoadCatalog(path string) (pricing.Catalog, error) {
	if path == "" {
		return pricing.NewCatalog(pricing.PPEItems()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file CatalogFile
	if err := decodeStrict(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	for i, item := range file.Items {
		if item.SKU == "" {
			return nil, fmt.Errorf("parse catalog file %s: item %d has no sku", path, i)
		}
		if item.UnitPricePlusTax.IsNegative() {
			return nil, fmt.Errorf("parse catalog file %s: %s has a negative price", path, item.SKU)
		}
	}
	return pricing.NewCatalog(file.Items), nil
}

// LoadRequest reads a quote request. Fields absent from the file keep the
// defaults of pricing.NewRequest.
func LoadRequest(path string) (pricing.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.Request{}, fmt.Errorf("read request file: %w", err)
	}
	req := pricing.NewRequest()
	if err := decodeStrict(data, &req); err != nil {
		return pricing.Request{}, fmt.Errorf("parse request file %s: %w", path, err)
	}
	return req, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
