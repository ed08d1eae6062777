// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-lpc/ntgj/conddb"
)

func TestDisplay(t *testing.T) {
	dss := []conddb.Dataset{
		{Path: "/mc/16c3b_pthat1.root", Production: "16c3b", PtHat: 1, Weight: 6e-3},
		{Path: "/mc/16c3b_pthat2.root", Production: "16c3b", PtHat: 2, Weight: 4e-3},
		{Path: "/mc/17g6a3_pthat1.root", Production: "17g6a3", PtHat: 1, Weight: 4.47e-11},
	}
	builtin := map[string]float64{
		"/mc/16c3b_pthat2.root":  3e-3,
		"/mc/17g6a3_pthat1.root": 4.47e-11,
	}

	for _, tc := range []struct {
		prod    string
		n       int
		flagged int
	}{
		{prod: "", n: 3, flagged: 1},
		{prod: "16c3b", n: 2, flagged: 1},
		{prod: "17g6a3", n: 1, flagged: 0},
		{prod: "18a1", n: 0, flagged: 0},
	} {
		t.Run(tc.prod, func(t *testing.T) {
			o := new(bytes.Buffer)
			n := display(o, dss, tc.prod, builtin)
			if n != tc.n {
				t.Fatalf("invalid number of datasets: got=%d, want=%d", n, tc.n)
			}
			if got, want := strings.Count(o.String(), "\n"), tc.n; got != want {
				t.Fatalf("invalid number of lines: got=%d, want=%d\n%s", got, want, o.String())
			}
			if got, want := strings.Count(o.String(), "built-in weight"), tc.flagged; got != want {
				t.Fatalf("invalid number of flagged datasets: got=%d, want=%d\n%s", got, want, o.String())
			}
		})
	}
}
