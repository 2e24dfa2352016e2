package dataset

import "math"

// Evaluate assigns a PASS/FAIL status to every row and derives the aggregate
// Summary. A value exactly on either limit counts as PASS. The input table is
// not modified; the returned table is a fresh copy with Status populated.
// An empty table returns an *Error with KindEmptyDataset instead of dividing
// by a zero total.
func Evaluate(t Table) (Table, Summary, error) {
	if len(t) == 0 {
		return nil, Summary{}, &Error{Kind: KindEmptyDataset}
	}

	out := make(Table, len(t))
	summary := Summary{Total: len(t)}
	for i, row := range t {
		if row.Value >= row.LowerLimit && row.Value <= row.UpperLimit {
			row.Status = StatusPass
			summary.PassCount++
		} else {
			row.Status = StatusFail
			summary.FailCount++
		}
		out[i] = row
	}

	rate := float64(summary.PassCount) / float64(summary.Total) * 100
	summary.PassRate = math.Round(rate*100) / 100

	summary.OverallVerdict = StatusPass
	if summary.FailCount > 0 {
		summary.OverallVerdict = StatusFail
	}

	return out, summary, nil
}
