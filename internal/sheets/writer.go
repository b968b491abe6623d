package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dverduzco/monedero/internal/common"
	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/service"
)

// Writer pushes a wallet's monthly report into a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: svc,
		logger:  logger,
	}, nil
}

// Write replaces the spreadsheet contents with the wallet's report for one month.
func (w *Writer) Write(ctx context.Context, wallet *model.Wallet, transactions []model.Transaction, summary *service.MonthSummary, year int, month time.Month) error {
	w.logger.Info("starting sheet export",
		"wallet", wallet.Name,
		"month", fmt.Sprintf("%d-%02d", year, month),
		"transactions", len(transactions))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := w.prepareReportData(wallet, transactions, summary, year, month)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
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

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Movimientos",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData builds the report rows: summary first, then the spent
// breakdown by category, then every transaction of the month.
func (w *Writer) prepareReportData(wallet *model.Wallet, transactions []model.Transaction, summary *service.MonthSummary, year int, month time.Month) [][]any {
	estimatedRows := 10 + len(summary.SpentByCategory) + len(transactions)
	values := make([][]any, 0, estimatedRows)

	title := fmt.Sprintf("%s %s", wallet.Emoji, wallet.Name)
	values = append(values,
		[]any{title, fmt.Sprintf("%s %d", monthNames[month], year)},
		[]any{},
		[]any{"Ingresos", summary.TotalIncome},
		[]any{"Gastos", summary.TotalExpenses},
		[]any{"Balance", summary.TotalIncome - summary.TotalExpenses},
		[]any{},
		[]any{"Categoría", "Gastado"},
	)

	categories := make([]string, 0, len(summary.SpentByCategory))
	for name := range summary.SpentByCategory {
		categories = append(categories, name)
	}
	sort.Slice(categories, func(i, j int) bool {
		return summary.SpentByCategory[categories[i]] > summary.SpentByCategory[categories[j]]
	})
	for _, name := range categories {
		values = append(values, []any{name, summary.SpentByCategory[name]})
	}

	values = append(values,
		[]any{},
		[]any{"Fecha", "Descripción", "Categoría", "Tipo", "Monto"},
	)
	for _, txn := range transactions {
		category := txn.CategoryName
		if category == "" {
			category = model.FallbackCategory
		}
		values = append(values, []any{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			category,
			string(txn.Type),
			txn.Amount,
		})
	}

	return values
}

// writeData writes the values starting at A1.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	valueRange := &sheets.ValueRange{Values: values}

	_, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	return nil
}

var monthNames = map[time.Month]string{
	time.January:   "Enero",
	time.February:  "Febrero",
	time.March:     "Marzo",
	time.April:     "Abril",
	time.May:       "Mayo",
	time.June:      "Junio",
	time.July:      "Julio",
	time.August:    "Agosto",
	time.September: "Septiembre",
	time.October:   "Octubre",
	time.November:  "Noviembre",
	time.December:  "Diciembre",
}
