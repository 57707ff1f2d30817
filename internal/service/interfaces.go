// Package service defines the contracts between the reconciliation core
// and its external collaborators: the mailbox the extracts arrive in and
// the spreadsheet the results land in.
package service

import (
	"context"
	"time"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// Mailbox locates extract documents. Implementations own transport and
// auth; the core only needs the latest attachment for a subject phrase.
type Mailbox interface {
	// FetchLatestAttachment finds the most recent message whose subject
	// contains subjectPhrase and returns its first spreadsheet attachment.
	// Returns an error wrapping common.ErrNoMatchingMessage or
	// common.ErrNoAttachment when there is nothing to process.
	FetchLatestAttachment(ctx context.Context, subjectPhrase string) (*model.Attachment, error)
}

// SheetStore opens destination tabs by name.
type SheetStore interface {
	OpenTab(ctx context.Context, name string) (SheetTab, error)
}

// SheetTab is one destination spreadsheet tab. ReadColumn returns the full
// column including its header row; ApplyBatch applies planned writes in
// one call. Individual writes are independent of each other's order, and
// the store makes no atomicity promise for the batch.
type SheetTab interface {
	ReadColumn(ctx context.Context, col int) ([]model.Cell, error)
	ApplyBatch(ctx context.Context, writes []model.CellWrite) error
}

// TabularDecoder turns raw attachment bytes into a cell table.
type TabularDecoder interface {
	Decode(data []byte) (model.Table, error)
}

// RetryOptions configures transport-layer retry behavior.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
