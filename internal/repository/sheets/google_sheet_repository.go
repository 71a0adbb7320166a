package sheets

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tcworkshop/estimator/internal/config"
)

// Repository defines the spreadsheet operations supported by the Google
// Sheets adapter. OverwriteRange must behave atomically from the caller's
// perspective: either the whole rectangle updates or the call fails.
type Repository interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
	OverwriteRange(ctx context.Context, sheetRange string, values [][]interface{}) error
	AppendRows(ctx context.Context, sheetRange string, values [][]interface{}) error
	SetBold(ctx context.Context, sheetName string, row, col int) error
}

// GoogleSheetRepository implements the Repository interface using the
// official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
		sheetIDs:      make(map[string]int64),
	}, nil
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

// OverwriteRange replaces the supplied rectangle with the provided values
// in a single update call.
func (r *GoogleSheetRepository) OverwriteRange(ctx context.Context, sheetRange string, values [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: values}

	call := r.service.Spreadsheets.Values.Update(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("overwrite range %s: %w", sheetRange, err)
	}

	r.logger.Debug("range overwritten", zap.String("range", sheetRange), zap.Int("rows", len(values)))
	return nil
}

// AppendRows appends the provided rows below the supplied sheet range.
func (r *GoogleSheetRepository) AppendRows(ctx context.Context, sheetRange string, values [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: values}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(values)))
	return nil
}

// SetBold applies bold formatting to a single cell. Row and col are
// 1-based sheet coordinates.
func (r *GoogleSheetRepository) SetBold(ctx context.Context, sheetName string, row, col int) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("cell coordinates must be 1-based, got row=%d col=%d", row, col)
	}

	sheetID, err := r.sheetID(ctx, sheetName)
	if err != nil {
		return err
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range: &sheetsapi.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(row - 1),
					EndRowIndex:      int64(row),
					StartColumnIndex: int64(col - 1),
					EndColumnIndex:   int64(col),
				},
				Cell: &sheetsapi.CellData{
					UserEnteredFormat: &sheetsapi.CellFormat{
						TextFormat: &sheetsapi.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		}},
	}

	if _, err := r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("set bold on %s row=%d col=%d: %w", sheetName, row, col, err)
	}

	return nil
}

func (r *GoogleSheetRepository) sheetID(ctx context.Context, sheetName string) (int64, error) {
	r.mu.Lock()
	if id, ok := r.sheetIDs[sheetName]; ok {
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()

	meta, err := r.service.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil {
			r.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
		}
	}

	id, ok := r.sheetIDs[sheetName]
	if !ok {
		return 0, fmt.Errorf("sheet %q not found in spreadsheet", sheetName)
	}
	return id, nil
}
