package store

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheet appends rows to a remote Google spreadsheet through the
// Sheets API. Appends are atomic server-side, so this backend is safe
// under concurrent writers without in-process locking.
type GoogleSheet struct {
	svc           *sheets.Service
	spreadsheetID string
	headers       map[string][]string

	mu    sync.Mutex
	ready map[string]bool // tabs already verified to exist with a header
}

func NewGoogleSheet(ctx context.Context, credentialsFile, spreadsheetID string, headers map[string][]string) (*GoogleSheet, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &GoogleSheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		headers:       headers,
		ready:         make(map[string]bool),
	}, nil
}

func (g *GoogleSheet) Append(ctx context.Context, sheet string, row []any) error {
	if err := g.ensureSheet(ctx, sheet); err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %q: %w", sheet, err)
	}
	return nil
}

// ensureSheet makes sure the tab exists and carries its header row.
// The result is cached so steady-state appends cost one API call.
func (g *GoogleSheet) ensureSheet(ctx context.Context, sheet string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ready[sheet] {
		return nil
	}

	ss, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	exists := false
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			exists = true
			break
		}
	}

	if !exists {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheet},
				},
			}},
		}
		if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("add sheet %q: %w", sheet, err)
		}
		if err := g.writeHeader(ctx, sheet); err != nil {
			return err
		}
		g.ready[sheet] = true
		return nil
	}

	// Tab exists; write the header only when it is still empty.
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheet+"!A1:A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header of %q: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		if err := g.writeHeader(ctx, sheet); err != nil {
			return err
		}
	}
	g.ready[sheet] = true
	return nil
}

func (g *GoogleSheet) writeHeader(ctx context.Context, sheet string) error {
	header := g.headers[sheet]
	hrow := make([]any, len(header))
	for i, h := range header {
		hrow[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]any{hrow}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header for %q: %w", sheet, err)
	}
	return nil
}
