// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package conddb holds types to describe the condition database of the
// NTGJ analyses: the bookkeeping of the simulated productions.
package conddb // import "github.com/go-lpc/ntgj/conddb"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	drvName = "mysql"
)

// Dataset describes the generator bookkeeping of one input file.
type Dataset struct {
	Path       string  // absolute path of the n-tuple file
	Production string  // production tag (e.g. 17g6a3)
	PtHat      int32   // pt-hat bin
	Weight     float64 // per-event weight
}

// DB exposes convenience methods to easily retrieve conditions data
// from the NTGJ database.
type DB struct {
	db   *sql.DB
	name string // name of the NTGJ database
}

// Open opens a connection to the database described by dsn.
func Open(dsn string) (*DB, error) {
	name := dbName(dsn)
	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("conddb: could not open %q db: %w", name, err)
	}

	err = ping(db, name)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db, name: name}, nil
}

// dbName extracts the database name from dsn, so credentials do not
// end up in error messages.
func dbName(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil || cfg.DBName == "" {
		return dsn
	}
	return cfg.DBName
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("conddb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

// Name returns the name of the database.
func (db *DB) Name() string { return db.name }

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// Datasets returns the bookkeeping of all registered datasets.
func (db *DB) Datasets(ctx context.Context) ([]Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dss []Dataset
	rows, err := db.db.QueryContext(
		ctx,
		"SELECT path, production, pthat, weight FROM datasets ORDER BY production, pthat",
	)
	if err != nil {
		return dss, fmt.Errorf("conddb: could not query datasets: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var ds Dataset
		err = rows.Scan(&ds.Path, &ds.Production, &ds.PtHat, &ds.Weight)
		if err != nil {
			return dss, fmt.Errorf("conddb: could not scan row %d for datasets: %w", i, err)
		}
		i++
		dss = append(dss, ds)
	}

	if err := rows.Err(); err != nil {
		return dss, fmt.Errorf("conddb: could not scan db for datasets: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return dss, fmt.Errorf("conddb: context error while retrieving datasets: %w", err)
	}

	return dss, nil
}

// DatasetWeights returns the per-event weight of all registered
// datasets, keyed by path.
func (db *DB) DatasetWeights(ctx context.Context) (map[string]float64, error) {
	dss, err := db.Datasets(ctx)
	if err != nil {
		return nil, err
	}

	ws := make(map[string]float64, len(dss))
	for _, ds := range dss {
		if _, dup := ws[ds.Path]; dup {
			return nil, fmt.Errorf("conddb: duplicate dataset %q", ds.Path)
		}
		ws[ds.Path] = ds.Weight
	}
	return ws, nil
}
