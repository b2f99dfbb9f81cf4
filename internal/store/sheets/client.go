// Package sheets implements the store interfaces on the Google Sheets
// API. One Client is bound to a single spreadsheet; tables are the named
// sheets (tabs) inside it, created on first open.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"sheetledger/internal/store"
)

// Options configures the spreadsheet binding and authentication.
// Credential sources are tried in order: OAuth user credentials (client +
// token files), service-account credentials (inline JSON or file), then
// application default credentials.
type Options struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
	OAuthClientFile string
	OAuthTokenFile  string
}

// Client talks to one spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ store.Opener = (*Client)(nil)

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: opts.SpreadsheetID}, nil
}

func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	if opts.OAuthClientFile != "" {
		b, err := os.ReadFile(opts.OAuthClientFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
		cfg, err := google.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("oauth config: %w", err)
		}
		if opts.OAuthTokenFile == "" {
			return nil, errors.New("oauth client configured without a token file")
		}
		data, err := os.ReadFile(opts.OAuthTokenFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth token file: %w", err)
		}
		tok := &oauth2.Token{}
		if err := json.Unmarshal(data, tok); err != nil {
			return nil, fmt.Errorf("oauth token file: %w", err)
		}
		return gsheet.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	}

	if opts.CredentialsJSON != "" {
		return gsheet.NewService(ctx,
			option.WithCredentialsJSON([]byte(opts.CredentialsJSON)),
			option.WithScopes(gsheet.SpreadsheetsScope))
	}
	if opts.CredentialsFile != "" {
		return gsheet.NewService(ctx,
			option.WithCredentialsFile(opts.CredentialsFile),
			option.WithScopes(gsheet.SpreadsheetsScope))
	}

	// Application default credentials.
	return gsheet.NewService(ctx, option.WithScopes(gsheet.SpreadsheetsScope))
}

// OpenTable resolves the named sheet within the spreadsheet, creating it
// when absent. Handles are per-call; nothing is cached across requests.
func (c *Client) OpenTable(ctx context.Context, name string) (store.Table, error) {
	if c.spreadsheetID == "" {
		return nil, errors.New("open table: missing spreadsheet id")
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", c.spreadsheetID, err)
	}

	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return c.table(name), nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	return c.table(name), nil
}

func (c *Client) table(name string) *table {
	return &table{svc: c.svc, spreadsheetID: c.spreadsheetID, name: name}
}
