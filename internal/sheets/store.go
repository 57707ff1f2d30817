package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/service"
)

// Store implements the SheetStore interface for Google Sheets.
type Store struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewStore creates a Google Sheets store.
func NewStore(ctx context.Context, config Config, logger *slog.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Store{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// OpenTab verifies the spreadsheet and tab exist and returns a handle.
func (s *Store) OpenTab(ctx context.Context, name string) (service.SheetTab, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to access spreadsheet %s: %w", s.config.SpreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return &Tab{store: s, name: name}, nil
		}
	}
	return nil, fmt.Errorf("%w: tab %q not found in spreadsheet %s", common.ErrInvalidConfig, name, s.config.SpreadsheetID)
}

// Tab is one open tab of the configured spreadsheet.
type Tab struct {
	store *Store
	name  string
}

// ReadColumn returns the full contents of a 1-based column, header row
// included. Values come back as the sheet displays them, so date cells
// read as their formatted text.
func (t *Tab) ReadColumn(ctx context.Context, col int) ([]model.Cell, error) {
	letter := ColumnLetter(col)
	readRange := fmt.Sprintf("%s!%s:%s", t.name, letter, letter)

	var resp *sheets.ValueRange
	err := common.WithRetry(ctx, func() error {
		var getErr error
		resp, getErr = t.store.service.Spreadsheets.Values.Get(t.store.config.SpreadsheetID, readRange).
			Context(ctx).
			Do()
		return getErr
	}, t.retryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to read column %s: %w", letter, err)
	}

	cells := make([]model.Cell, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			cells = append(cells, model.EmptyCell)
			continue
		}
		cells = append(cells, model.CellOf(row[0]))
	}

	t.store.logger.Debug("read column", "tab", t.name, "column", letter, "rows", len(cells))
	return cells, nil
}

// ApplyBatch applies all planned writes in a single batch update, with
// USER_ENTERED input so the sheet's own number formats keep applying.
// Cleared cells are written as empty strings. An empty batch is a no-op.
func (t *Tab) ApplyBatch(ctx context.Context, writes []model.CellWrite) error {
	if len(writes) == 0 {
		return nil
	}

	data := make([]*sheets.ValueRange, 0, len(writes))
	for _, w := range writes {
		var value any
		if w.Clear {
			value = ""
		} else {
			value = w.Value
		}
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", t.name, ColumnLetter(w.Col), w.Row),
			Values: [][]any{{value}},
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}

	err := common.WithRetry(ctx, func() error {
		_, updateErr := t.store.service.Spreadsheets.Values.BatchUpdate(t.store.config.SpreadsheetID, req).
			Context(ctx).
			Do()
		return updateErr
	}, t.retryOptions())
	if err != nil {
		return fmt.Errorf("failed to apply batch of %d writes: %w", len(writes), err)
	}

	t.store.logger.Debug("applied batch", "tab", t.name, "writes", len(writes))
	return nil
}

func (t *Tab) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  t.store.config.RetryAttempts,
		InitialDelay: t.store.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// ColumnLetter converts a 1-based column position to A1 notation.
func ColumnLetter(n int) string {
	var s []byte
	for n > 0 {
		n--
		s = append([]byte{byte('A' + n%26)}, s...)
		n /= 26
	}
	return string(s)
}
