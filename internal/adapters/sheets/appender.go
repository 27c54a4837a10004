package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"neurobiomark/internal/domain"
)

const (
	defaultRange = "Sheet1!A:D"
	tokenURL     = "https://oauth2.googleapis.com/token"
)

// Config names the target spreadsheet and the service account used to write to it.
type Config struct {
	SpreadsheetID       string
	Range               string
	ServiceAccountEmail string
	// PrivateKey is the PEM key; literal "\n" sequences from env files are unescaped.
	PrivateKey string
	// Endpoint overrides the Sheets API root.
	Endpoint string
	// TokenURL overrides Google's OAuth2 token endpoint.
	TokenURL string
}

// Appender appends rows to a Google Sheet through the values.append API.
type Appender struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	valueRange    string
}

// New returns an Appender authenticated with a service-account JWT.
func New(ctx context.Context, cfg Config) (*Appender, error) {
	return NewWithClient(ctx, jwtConfig(cfg).Client(ctx), cfg)
}

// NewWithClient returns an Appender that sends requests with client as-is. The
// client is expected to attach credentials.
func NewWithClient(ctx context.Context, client *http.Client, cfg Config) (*Appender, error) {
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(cfg.Endpoint, "/")+"/"))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	rng := cfg.Range
	if rng == "" {
		rng = defaultRange
	}
	return &Appender{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		valueRange:    rng,
	}, nil
}

var _ domain.RowAppender = (*Appender)(nil)

// AppendRow appends one row after the last non-empty row of the range.
func (a *Appender) AppendRow(ctx context.Context, row []string) error {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	_, err := a.values.Append(a.spreadsheetID, a.valueRange, &sheetsapi.ValueRange{Values: [][]any{cells}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// Noop discards rows. It is used when the sheet sink is not configured.
type Noop struct {
	Logger *slog.Logger
}

func (n Noop) AppendRow(ctx context.Context, row []string) error {
	if n.Logger != nil {
		n.Logger.DebugContext(ctx, "sheet sync disabled, row dropped")
	}
	return nil
}

func jwtConfig(cfg Config) *jwt.Config {
	tu := cfg.TokenURL
	if tu == "" {
		tu = tokenURL
	}
	return &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   tu,
	}
}
