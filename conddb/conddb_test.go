// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conddb

import (
	"context"
	"database/sql/driver"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-lpc/ntgj/internal/fakedb"
)

func init() {
	drvName = "fakedb"
}

func TestOpen(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open conddb: %+v", err)
	}
	defer db.Close()

	if got, want := db.Name(), "fakedb"; got != want {
		t.Fatalf("invalid db name: got=%q, want=%q", got, want)
	}
}

func TestDBName(t *testing.T) {
	for _, tc := range []struct {
		dsn  string
		want string
	}{
		{dsn: "user:passwd@tcp(localhost:3306)/ntgj", want: "ntgj"},
		{dsn: "user@unix(/tmp/mysql.sock)/ntgj_mc?parseTime=true", want: "ntgj_mc"},
		{dsn: "fakedb", want: "fakedb"},
	} {
		t.Run(tc.dsn, func(t *testing.T) {
			if got := dbName(tc.dsn); got != tc.want {
				t.Fatalf("invalid db name: got=%q, want=%q", got, tc.want)
			}
		})
	}
}

func TestDatasets(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open conddb: %+v", err)
	}
	defer db.Close()

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"path", "production", "pthat", "weight"},
		Values: [][]driver.Value{
			{"/data/16c3b_pthat1.root", "16c3b", int64(1), 6.071458e-03},
			{"/data/16c3b_pthat2.root", "16c3b", int64(2), 3.941701e-03},
		},
	}, func(ctx context.Context) error {
		dss, err := db.Datasets(ctx)
		if err != nil {
			t.Fatalf("could not retrieve datasets: %+v", err)
		}

		want := []Dataset{
			{Path: "/data/16c3b_pthat1.root", Production: "16c3b", PtHat: 1, Weight: 6.071458e-03},
			{Path: "/data/16c3b_pthat2.root", Production: "16c3b", PtHat: 2, Weight: 3.941701e-03},
		}
		if got := dss; !reflect.DeepEqual(got, want) {
			t.Fatalf("invalid datasets:\ngot= %+v\nwant=%+v", got, want)
		}

		if q := fakedb.LastQuery(); !strings.Contains(q, "FROM datasets") {
			t.Fatalf("invalid query: %q", q)
		}
		return nil
	})
}

func TestDatasetWeights(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open conddb: %+v", err)
	}
	defer db.Close()

	for _, tc := range []struct {
		name string
		rows fakedb.Rows
		want map[string]float64
		err  string
	}{
		{
			name: "ok",
			rows: fakedb.Rows{
				Names: []string{"path", "production", "pthat", "weight"},
				Values: [][]driver.Value{
					{"a.root", "17g6a3", int64(1), 4.47e-11},
					{"b.root", "17g6a3", int64(2), 9.83e-11},
				},
			},
			want: map[string]float64{
				"a.root": 4.47e-11,
				"b.root": 9.83e-11,
			},
		},
		{
			name: "empty",
			rows: fakedb.Rows{
				Names: []string{"path", "production", "pthat", "weight"},
			},
			want: map[string]float64{},
		},
		{
			name: "duplicate",
			rows: fakedb.Rows{
				Names: []string{"path", "production", "pthat", "weight"},
				Values: [][]driver.Value{
					{"a.root", "17g6a3", int64(1), 4.47e-11},
					{"a.root", "17g6a3", int64(2), 9.83e-11},
				},
			},
			err: `conddb: duplicate dataset "a.root"`,
		},
		{
			name: "bad-weight",
			rows: fakedb.Rows{
				Names: []string{"path", "production", "pthat", "weight"},
				Values: [][]driver.Value{
					{"a.root", "17g6a3", int64(1), "n/a"},
				},
			},
			err: "conddb: could not scan row 0 for datasets",
		},
		{
			name: "query-error",
			rows: fakedb.Rows{Err: errors.New("boom")},
			err:  "conddb: could not query datasets: boom",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_ = fakedb.Run(context.Background(), tc.rows, func(ctx context.Context) error {
				got, err := db.DatasetWeights(ctx)
				switch {
				case tc.err != "":
					if err == nil || !strings.HasPrefix(err.Error(), tc.err) {
						t.Fatalf("invalid error: got=%v, want=%q", err, tc.err)
					}
					return nil
				case err != nil:
					t.Fatalf("could not retrieve weights: %+v", err)
				}
				if !reflect.DeepEqual(got, tc.want) {
					t.Fatalf("invalid weights:\ngot= %v\nwant=%v", got, tc.want)
				}
				return nil
			})
		})
	}
}
