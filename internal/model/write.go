package model

import "time"

// CellWrite is one planned, idempotent cell mutation: set a value or clear
// the cell. Row and Col are 1-based sheet positions.
type CellWrite struct {
	Row   int
	Col   int
	Value float64
	Clear bool
}

// SetCell plans writing v at (row, col).
func SetCell(row, col int, v float64) CellWrite {
	return CellWrite{Row: row, Col: col, Value: v}
}

// ClearCell plans blanking the cell at (row, col).
func ClearCell(row, col int) CellWrite {
	return CellWrite{Row: row, Col: col, Clear: true}
}

// SkipCounts tallies rows dropped during an aggregation scan, by reason.
// Skips are expected operating conditions, not errors, but they are counted
// so a run report can surface them.
type SkipCounts struct {
	ShortRow    int
	UnknownUnit int
	BadDate     int
}

// Total returns the number of skipped rows.
func (s SkipCounts) Total() int {
	return s.ShortRow + s.UnknownUnit + s.BadDate
}

// Attachment is a tabular document pulled from the mailbox.
type Attachment struct {
	Filename string
	Data     []byte
}

// DocumentKind names the two reconciled extracts.
type DocumentKind string

// The two extract documents.
const (
	DocUpcoming  DocumentKind = "upcoming"
	DocCompleted DocumentKind = "completed"
)

// DocumentStatus is the outcome of one document's pipeline.
type DocumentStatus string

// Document outcomes. A skipped document (no message, no attachment) and a
// failed one are both non-fatal for the other document's pipeline.
const (
	StatusProcessed DocumentStatus = "processed"
	StatusSkipped   DocumentStatus = "skipped"
	StatusFailed    DocumentStatus = "failed"
)

// DocumentOutcome reports one document's reconciliation result.
type DocumentOutcome struct {
	Err          error
	Document     DocumentKind
	Status       DocumentStatus
	Filename     string
	Date         time.Time // anchor date (upcoming) or file date (completed)
	CellsWritten int
	Skips        SkipCounts
}

// RunReport is the result of a full reconciliation run. Each document's
// outcome is independent.
type RunReport struct {
	Upcoming  DocumentOutcome
	Completed DocumentOutcome
}
