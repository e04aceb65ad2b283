// Package gsheet implements the record store on a Google Sheets worksheet.
//
// The worksheet is row-oriented with a header row; duplicate titles are
// legitimate and each matching row receives its own cell write on save,
// mirroring how the sheet was maintained by hand.
package gsheet

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/okian/reelo/internal/adapters/store"
	"github.com/okian/reelo/internal/domain/model"
)

// header seeds an empty worksheet so the column layout is stable before the
// first row of data arrives.
var header = []string{
	"Released", "Date_Viewed", "Year_Viewed", "Title", "tconst", "Platform",
	"Rewatch", "Type", "genres", "rating", "votes", "runtime", "director",
	"poster_url", "elo",
}

// Store implements store.Store against one worksheet of a spreadsheet.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// New creates a sheet-backed store using a service account credentials file.
func New(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Store, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: sheets client: %w", store.ErrLoad, err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// LoadAll reads the whole worksheet. The first row is the header; field
// names are matched case-insensitively and unknown columns pass through.
// An empty worksheet is seeded with the canonical header.
func (s *Store) LoadAll(ctx context.Context) ([]model.Record, error) {
	values, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		if err := s.seedHeader(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	head := values[0]
	var records []model.Record
	for i, row := range values[1:] {
		fields := make(map[string]string, len(head))
		for col, name := range head {
			value := ""
			if col < len(row) {
				value = cellString(row[col])
			}
			fields[cellString(name)] = value
		}
		records = append(records, store.RecordFromFields(i, fields))
	}
	return records, nil
}

// SaveRating writes rating into the elo cell of every row whose normalized
// title matches. Rows are refetched and matched by title, not by remembered
// position, so concurrent manual edits to row order cannot corrupt another
// entity. Each matching row is one cell write; the first failure aborts and
// is reported with its cause.
func (s *Store) SaveRating(ctx context.Context, title string, rating int) (int, error) {
	values, err := s.fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}

	titleCol, eloCol, err := locateColumns(values[0])
	if err != nil {
		return 0, err
	}

	key := model.NormalizeTitle(title)
	updated := 0
	for i, row := range values[1:] {
		if titleCol >= len(row) || model.NormalizeTitle(cellString(row[titleCol])) != key {
			continue
		}
		// Header occupies row 1, data starts at row 2.
		cell := fmt.Sprintf("%s!%s%d", s.sheetName, columnName(eloCol), i+2)
		vr := &sheets.ValueRange{Values: [][]interface{}{{rating}}}
		if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cell, vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return updated, fmt.Errorf("%w: update cell %s: %w", store.ErrPersist, cell, err)
		}
		updated++
	}
	return updated, nil
}

func (s *Store) fetch(ctx context.Context) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %w", store.ErrLoad, s.sheetName, err)
	}
	return resp.Values, nil
}

func (s *Store) seedHeader(ctx context.Context) error {
	row := make([]interface{}, len(header))
	for i, name := range header {
		row[i] = name
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.sheetName+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: seed header: %w", store.ErrPersist, err)
	}
	return nil
}

// locateColumns finds the title and elo columns in the header row.
func locateColumns(head []interface{}) (titleCol, eloCol int, err error) {
	titleCol, eloCol = -1, -1
	for i, name := range head {
		switch strings.ToLower(strings.TrimSpace(cellString(name))) {
		case store.FieldTitle:
			titleCol = i
		case store.FieldElo:
			eloCol = i
		}
	}
	if titleCol < 0 || eloCol < 0 {
		return 0, 0, fmt.Errorf("%w: header missing title or elo column", store.ErrPersist)
	}
	return titleCol, eloCol, nil
}

// columnName converts a zero-based column index to A1 notation (0 -> A,
// 25 -> Z, 26 -> AA).
func columnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}

// cellString renders a sheet cell value as a string.
func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
