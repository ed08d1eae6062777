// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ntgj-sql inspects the datasets registered in the NTGJ
// condition database.
//
// Datasets whose weight disagrees with the weight built into the
// analyses are flagged.
package main // import "github.com/go-lpc/ntgj/cmd/ntgj-sql"

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-lpc/ntgj/ana"
	"github.com/go-lpc/ntgj/conddb"
)

func main() {
	log.SetPrefix("ntgj-sql: ")
	log.SetFlags(0)

	var (
		dsn  = flag.String("db", "ntgj", "DSN of the condition database")
		prod = flag.String("prod", "", "production to inspect (default: all)")
	)

	flag.Parse()

	db, err := conddb.Open(*dsn)
	if err != nil {
		log.Fatalf("could not open NTGJ db: %+v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dss, err := db.Datasets(ctx)
	if err != nil {
		log.Fatalf("could not retrieve datasets: %+v", err)
	}

	n := display(os.Stdout, dss, *prod, ana.DefaultOverrides)
	log.Printf("datasets: %d", n)
}

// display writes the datasets of the requested production to w and
// returns the number of displayed datasets.
func display(w io.Writer, dss []conddb.Dataset, prod string, builtin map[string]float64) int {
	n := 0
	for _, ds := range dss {
		if prod != "" && ds.Production != prod {
			continue
		}
		n++
		fmt.Fprintf(w, "%-8s pthat=%d weight=%-12g %s", ds.Production, ds.PtHat, ds.Weight, ds.Path)
		if v, ok := builtin[ds.Path]; ok && v != ds.Weight {
			fmt.Fprintf(w, " (built-in weight: %g)", v)
		}
		fmt.Fprintf(w, "\n")
	}
	return n
}
