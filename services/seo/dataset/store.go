// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader produces raw rows for a (re)build. The SheetFetcher satisfies it;
// tests inject their own.
type Loader interface {
	Fetch(ctx context.Context) []RawRow
}

// Store holds the process-wide Dataset snapshot.
//
// Description:
//
//	The snapshot is replaced wholesale and atomically: a reader either
//	sees the previous Dataset or the fully-built new one, never a torn
//	state. A reload is triggered lazily when a query observes the
//	snapshot empty; concurrent triggers coalesce into a single rebuild.
//
// Thread Safety: safe for concurrent use.
type Store struct {
	loader   Loader
	snapshot atomic.Pointer[Dataset]
	reload   singleflight.Group
}

// NewStore creates a Store with an empty snapshot. The first Current call
// performs the initial load.
func NewStore(loader Loader) *Store {
	s := &Store{loader: loader}
	s.snapshot.Store(Normalize(nil))
	return s
}

// Current returns the dataset snapshot for one query, lazily rebuilding
// when the snapshot is empty. The returned Dataset stays valid for the
// whole query even if a newer snapshot is installed meanwhile.
func (s *Store) Current(ctx context.Context) *Dataset {
	d := s.snapshot.Load()
	if !d.Empty() {
		return d
	}
	return s.Reload(ctx)
}

// Reload rebuilds the snapshot from the loader. Concurrent calls share a
// single in-flight rebuild via singleflight; every caller gets the
// resulting snapshot.
func (s *Store) Reload(ctx context.Context) *Dataset {
	v, _, _ := s.reload.Do("reload", func() (any, error) {
		start := time.Now()
		rows := s.loader.Fetch(ctx)
		d := Normalize(rows)
		s.snapshot.Store(d)
		recordReload(d.Len())
		slog.Info("dataset snapshot rebuilt",
			slog.Int("rows", d.Len()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return d, nil
	})
	return v.(*Dataset)
}
