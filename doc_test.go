// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ntgj

import (
	"runtime/debug"
	"testing"
)

func TestVersionOf(t *testing.T) {
	for _, tc := range []struct {
		name string
		info *debug.BuildInfo
		vers string
		sum  string
	}{
		{name: "nil"},
		{
			name: "no-dep",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{{Path: "go-hep.org/x/hep", Version: "v0.32.1"}},
			},
		},
		{
			name: "dep",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{
					{Path: "go-hep.org/x/hep", Version: "v0.32.1"},
					{Path: "github.com/go-lpc/ntgj", Version: "v0.3.0", Sum: "h1:xyz"},
				},
			},
			vers: "v0.3.0",
			sum:  "h1:xyz",
		},
		{
			name: "replace-version",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{{
					Path: "github.com/go-lpc/ntgj", Version: "v0.3.0",
					Replace: &debug.Module{Version: "v0.3.1", Sum: "h1:abc"},
				}},
			},
			vers: "v0.3.1",
			sum:  "h1:abc",
		},
		{
			name: "replace-path-version",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{{
					Path: "github.com/go-lpc/ntgj", Version: "v0.3.0",
					Replace: &debug.Module{Path: "example.org/ntgj", Version: "v0.3.1"},
				}},
			},
			vers: "example.org/ntgj v0.3.1",
		},
		{
			name: "replace-local",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{{
					Path: "github.com/go-lpc/ntgj", Version: "v0.3.0",
					Replace: &debug.Module{Path: "../ntgj"},
				}},
			},
			vers: "../ntgj",
		},
		{
			name: "replace-empty",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{{
					Path: "github.com/go-lpc/ntgj", Version: "v0.3.0",
					Replace: &debug.Module{},
				}},
			},
			vers: "v0.3.0*",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			vers, sum := versionOf(tc.info)
			if vers != tc.vers {
				t.Fatalf("invalid version: got=%q, want=%q", vers, tc.vers)
			}
			if sum != tc.sum {
				t.Fatalf("invalid sum: got=%q, want=%q", sum, tc.sum)
			}
		})
	}
}
