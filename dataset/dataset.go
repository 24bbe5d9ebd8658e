package dataset

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// Sample is one maintenance work order: free-text instructions, the asset
// category the work was done on, the work-order identifier used for
// grouping, and the spare parts consumed with their quantities. Parts and
// Quantities are positionally aligned.
type Sample struct {
	Instructions string
	Asset        string
	WorkOrder    string
	Parts        []string
	Quantities   []int
}

// row binds the raw CSV columns. The headers are the Danish field names the
// maintenance system exports.
type row struct {
	Instructions string `csv:"Instructions"`
	Asset        string `csv:"Primær Asset Produkt"`
	WorkOrder    string `csv:"Work Order"`
	Parts        string `csv:"Product ID (Product) (Product)"`
	Quantities   string `csv:"Quantity"`
}

// Load reads the work-order export at path. Part and quantity cells hold
// stringified list literals and are parsed tolerantly: a malformed cell
// becomes an empty list, never an error.
func Load(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening dataset")
	}
	defer f.Close()

	var rows []row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.Wrap(err, "parsing dataset csv")
	}

	samples := make([]Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, Sample{
			Instructions: r.Instructions,
			Asset:        r.Asset,
			WorkOrder:    r.WorkOrder,
			Parts:        ParseList(r.Parts),
			Quantities:   ParseQuantities(r.Quantities),
		})
	}
	return samples, nil
}
