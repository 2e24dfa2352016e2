package dataset

import (
	"fmt"
	"strings"
)

// ErrorKind identifies which validation contract a dataset violated. Callers
// branch on the kind with errors.As rather than matching message text.
type ErrorKind int

const (
	// KindSchema means one or more required columns are absent.
	KindSchema ErrorKind = iota
	// KindType means a numeric column holds a cell that does not parse as a
	// number.
	KindType
	// KindEmptyDataset means the table has a valid header but zero rows, so
	// no verdict can be computed.
	KindEmptyDataset
)

// Error is a structured validation failure. Columns is populated for
// KindSchema (the sorted missing set) and KindType (the single offending
// column).
type Error struct {
	Kind    ErrorKind
	Columns []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindSchema:
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
	case KindType:
		return fmt.Sprintf("column %q must be numeric", e.Columns[0])
	case KindEmptyDataset:
		return "dataset contains no measurement rows"
	default:
		return "invalid dataset"
	}
}

// Friendly returns the user-facing message shown on the web error page.
func (e *Error) Friendly() string {
	switch e.Kind {
	case KindSchema:
		return fmt.Sprintf("Your CSV is missing required columns: %s. Download the template for the expected format.", strings.Join(e.Columns, ", "))
	case KindType:
		return fmt.Sprintf("Column %q must contain only numbers.", e.Columns[0])
	case KindEmptyDataset:
		return "Your CSV has no data rows. Add at least one measurement below the header."
	default:
		return e.Error()
	}
}
