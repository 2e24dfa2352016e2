package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// numericColumns are checked cell-by-cell during Load, in this order. The
// first column with a non-parsing cell wins the error.
var numericColumns = []string{"value", "lower_limit", "upper_limit"}

// LoadFile reads and validates the CSV at path. See Load.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a comma-separated, UTF-8 CSV from r and validates it against the
// required schema. It returns an *Error with KindSchema when required columns
// are missing and KindType when a numeric column holds a non-numeric cell.
// Extra columns are ignored. Load performs no row-count validation; an empty
// table is a valid result.
func Load(r io.Reader) (Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var header []string
	if len(records) > 0 {
		header = records[0]
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &Error{Kind: KindSchema, Columns: missing}
	}

	body := records[1:]

	// Column-major typing pass so the error names the first bad column, not
	// the first bad cell in row order.
	for _, name := range numericColumns {
		col := index[name]
		for _, record := range body {
			if _, err := strconv.ParseFloat(record[col], 64); err != nil {
				return nil, &Error{Kind: KindType, Columns: []string{name}}
			}
		}
	}

	unitCol, hasUnit := index["unit"]

	table := make(Table, 0, len(body))
	for _, record := range body {
		row := Row{
			SampleID: record[index["sample_id"]],
			TestName: record[index["test_name"]],
		}
		row.Value, _ = strconv.ParseFloat(record[index["value"]], 64)
		row.LowerLimit, _ = strconv.ParseFloat(record[index["lower_limit"]], 64)
		row.UpperLimit, _ = strconv.ParseFloat(record[index["upper_limit"]], 64)
		if hasUnit {
			row.Unit = record[unitCol]
		}
		table = append(table, row)
	}

	return table, nil
}
