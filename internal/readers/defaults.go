package readers

import (
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/csv"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/example"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/genericxml"
)

// Config keys understood by the built-in builders.
const (
	cfgReportName = "report_name"
	cfgDelimiter  = "delimiter"
)

// RegisterDefaults registers all built-in adapters with the catalog.
// Call this during application initialisation.
func RegisterDefaults(c *Catalog) {
	c.Register(example.Name, buildExample)
	c.Register(genericxml.Name, buildGenericXML)
	c.Register(csv.Name, buildCSV)
}

// DefaultCatalog returns a catalog with the built-in adapters registered.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	RegisterDefaults(c)
	return c
}

// ConfigFor extracts the builder config for an adapter from settings.
func ConfigFor(name string, settings domain.AppSettings) map[string]any {
	switch name {
	case example.Name:
		return map[string]any{cfgReportName: settings.Adapters.ExampleReportName}
	case csv.Name:
		return map[string]any{cfgDelimiter: settings.Adapters.CSVDelimiter}
	default:
		return nil
	}
}

// buildExample creates the example reader.
// Supported config keys:
//   - report_name (string): accepted file name (default: Report.Example.xml)
func buildExample(cfg map[string]any) (driven.Adapter, error) {
	var opts []example.Option
	if name := getStringFromConfig(cfg, cfgReportName); name != "" {
		opts = append(opts, example.WithReportName(name))
	}
	return example.New(opts...), nil
}

func buildGenericXML(_ map[string]any) (driven.Adapter, error) {
	return genericxml.New(), nil
}

// buildCSV creates the CSV reader.
// Supported config keys:
//   - delimiter (string): single-character separator for .csv files (default: ",")
func buildCSV(cfg map[string]any) (driven.Adapter, error) {
	var opts []csv.Option
	if s := getStringFromConfig(cfg, cfgDelimiter); s != "" {
		d, err := csv.ParseDelimiter(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, csv.WithDelimiter(d))
	}
	return csv.New(opts...), nil
}

// getStringFromConfig safely extracts a string from a generic config map.
func getStringFromConfig(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	s, _ := cfg[key].(string)
	return s
}
