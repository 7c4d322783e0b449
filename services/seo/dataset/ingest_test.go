// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

const sampleCSV = `Address,Status Code,Title 1 Length
https://a.example/,200,45
https://b.example/,404,75
`

// fakeHTTPClient serves one canned response per request, in order.
type fakeHTTPClient struct {
	responses []fakeResponse
	requests  []*http.Request
}

type fakeResponse struct {
	status int
	body   string
	err    error
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.status,
		Body:       io.NopCloser(strings.NewReader(r.body)),
	}, nil
}

func TestParseCSVRows(t *testing.T) {
	rows, err := ParseCSVRows(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSVRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["Address"] != "https://a.example/" {
		t.Errorf("Address = %q", rows[0]["Address"])
	}
	if rows[1]["Status Code"] != "404" {
		t.Errorf("Status Code = %q", rows[1]["Status Code"])
	}
}

func TestParseCSVRowsSkipsMismatchedRows(t *testing.T) {
	data := "Address,Status Code\nhttps://a.example/,200\nonly-one-field\nhttps://b.example/,301\n"
	rows, err := ParseCSVRows(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSVRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (mismatched row skipped)", len(rows))
	}
}

func TestParseCSVRowsEmptyInput(t *testing.T) {
	rows, err := ParseCSVRows(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCSVRows: %v", err)
	}
	if rows != nil {
		t.Errorf("got %d rows, want none", len(rows))
	}
}

func TestSheetFetcherFallsBackToSecondURL(t *testing.T) {
	client := &fakeHTTPClient{responses: []fakeResponse{
		{status: http.StatusForbidden},
		{status: http.StatusOK, body: sampleCSV},
	}}
	f := NewSheetFetcher(client)

	rows := f.Fetch(context.Background())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(client.requests) != 2 {
		t.Fatalf("made %d requests, want 2", len(client.requests))
	}
	if ua := client.requests[0].Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
		t.Errorf("User-Agent = %q, want a browser UA", ua)
	}
}

func TestSheetFetcherAbsorbsTotalFailure(t *testing.T) {
	client := &fakeHTTPClient{responses: []fakeResponse{
		{err: io.ErrUnexpectedEOF},
		{err: io.ErrUnexpectedEOF},
	}}
	f := NewSheetFetcher(client)

	if rows := f.Fetch(context.Background()); rows != nil {
		t.Errorf("got %d rows, want nil on total failure", len(rows))
	}
}
