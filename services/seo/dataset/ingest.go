// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultSheetID  = "1zzf4ax_H2WiTBVrJigGjF2Q3Yz-qy2qMCbAMKvl6VEE"
	defaultSheetGID = "1438203274"

	// Some published sheets only answer one of the two export endpoints,
	// so the fetcher tries both before giving up.
	sheetExportURL = "https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s"
	sheetGvizURL   = "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&gid=%s"

	fetchTimeout = 10 * time.Second
)

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SheetFetcher downloads the crawl-audit sheet as CSV and parses it into
// raw rows. Any transport or parse failure yields zero rows: an empty
// dataset is a degraded-but-valid state, distinct from a fatal error.
type SheetFetcher struct {
	client HTTPClient
	urls   []string
}

// NewSheetFetcher builds a fetcher for the configured sheet.
//
// Sheet ID and tab GID come from CRAWL_SHEET_ID / CRAWL_SHEET_GID, with
// the demo audit sheet as the fallback.
func NewSheetFetcher(client HTTPClient) *SheetFetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	sheetID := os.Getenv("CRAWL_SHEET_ID")
	if sheetID == "" {
		sheetID = defaultSheetID
	}
	gid := os.Getenv("CRAWL_SHEET_GID")
	if gid == "" {
		gid = defaultSheetGID
	}
	return &SheetFetcher{
		client: client,
		urls: []string{
			fmt.Sprintf(sheetExportURL, sheetID, gid),
			fmt.Sprintf(sheetGvizURL, sheetID, gid),
		},
	}
}

// Fetch downloads and parses the sheet.
//
// Description:
//
//	Tries each candidate export URL in order and returns rows from the
//	first that yields parseable CSV. Exhausting all candidates returns
//	nil rows and no error: ingestion failures are absorbed here and
//	surface downstream as an empty Dataset.
//
// Thread Safety: safe for concurrent use.
func (f *SheetFetcher) Fetch(ctx context.Context) []RawRow {
	for _, url := range f.urls {
		rows, err := f.fetchOne(ctx, url)
		if err != nil {
			slog.Warn("sheet fetch failed, trying next candidate",
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
			continue
		}
		return rows
	}
	slog.Error("all sheet export URLs failed, continuing with empty dataset")
	return nil
}

func (f *SheetFetcher) fetchOne(ctx context.Context, url string) ([]RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// Google rejects the default Go UA on some published sheets.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: unexpected status %d", resp.StatusCode)
	}
	return ParseCSVRows(resp.Body)
}

// ParseCSVRows reads header-keyed rows from CSV data. Short or long data
// rows are skipped rather than failing the whole parse, matching the
// tolerant ingestion contract.
func ParseCSVRows(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []RawRow
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Bad line: skip it, keep the rest.
			continue
		}
		if len(fields) != len(header) {
			continue
		}
		row := make(RawRow, len(header))
		for i, h := range header {
			row[h] = fields[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
