// Package dataset loads measurement CSV files, validates their schema, and
// evaluates per-row pass/fail verdicts against the row's acceptance limits.
package dataset

// Status is the pass/fail classification of a single measurement.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Row is one measurement record with its acceptance limits. Status is empty
// until the row has been through Evaluate.
type Row struct {
	SampleID   string
	TestName   string
	Value      float64
	LowerLimit float64
	UpperLimit float64
	Unit       string
	Status     Status
}

// Table is an ordered sequence of measurement rows, in input-file order.
type Table []Row

// Summary holds the aggregate verdict for an evaluated table. It is fully
// derived from the status column and recomputes identically for the same
// input.
type Summary struct {
	Total          int
	PassCount      int
	FailCount      int
	PassRate       float64
	OverallVerdict Status
}

// RequiredColumns are the header names every input file must carry. The unit
// column is optional and defaults to the empty string.
var RequiredColumns = []string{"sample_id", "test_name", "value", "lower_limit", "upper_limit"}
