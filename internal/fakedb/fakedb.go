// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fakedb holds types to fake an in-memory DB.
package fakedb // import "github.com/go-lpc/ntgj/internal/fakedb"

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
)

var query struct {
	mu   sync.Mutex
	rows Rows
	last string
}

// Run runs f while the fake database answers every query with rows.
func Run(ctx context.Context, rows Rows, f func(ctx context.Context) error) error {
	query.mu.Lock()
	defer query.mu.Unlock()
	query.rows = rows
	query.last = ""

	return f(ctx)
}

// LastQuery returns the last query sent to the fake database.
// It must be called from within Run.
func LastQuery() string {
	return query.last
}

func init() {
	sql.Register("fakedb", &Driver{})
}

type Driver struct{}

// Open returns a new connection to the database.
func (drv *Driver) Open(name string) (driver.Conn, error) {
	return &Conn{}, nil
}

type Conn struct{}

// Prepare returns a prepared statement, bound to this connection.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return &Stmt{query: query}, nil
}

func (c *Conn) Close() error {
	return nil
}

// Begin starts and returns a new transaction.
func (c *Conn) Begin() (driver.Tx, error) {
	return nil, errors.New("fakedb: transactions not supported")
}

// QueryContext executes a query without going through a prepared
// statement.
func (c *Conn) QueryContext(ctx context.Context, q string, args []driver.NamedValue) (driver.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return load(q)
}

type Stmt struct {
	query string
}

func (stmt *Stmt) Close() error {
	return nil
}

// NumInput returns -1: the number of placeholders is not checked.
func (stmt *Stmt) NumInput() int {
	return -1
}

func (stmt *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("fakedb: exec not supported")
}

func (stmt *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return load(stmt.query)
}

func load(q string) (driver.Rows, error) {
	query.last = q
	if query.rows.Err != nil {
		return nil, query.rows.Err
	}
	rows := &Rows{
		Names:  query.rows.Names,
		Values: append([][]driver.Value(nil), query.rows.Values...),
	}
	return rows, nil
}

// Rows is the canned answer of the fake database.
type Rows struct {
	Names  []string
	Values [][]driver.Value

	// Err, when set, is returned by any query.
	Err error
}

func (rows *Rows) Columns() []string {
	return rows.Names
}

func (rows *Rows) Close() error {
	return nil
}

// Next populates dest with the next row of data.
// Next returns io.EOF when there are no more rows.
func (rows *Rows) Next(dest []driver.Value) error {
	if len(rows.Values) == 0 {
		return io.EOF
	}
	copy(dest, rows.Values[0])
	rows.Values = rows.Values[1:]
	return nil
}

var (
	_ driver.Driver         = (*Driver)(nil)
	_ driver.Conn           = (*Conn)(nil)
	_ driver.QueryerContext = (*Conn)(nil)
	_ driver.Stmt           = (*Stmt)(nil)
	_ driver.Rows           = (*Rows)(nil)
)
