// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

// DefaultOverrides holds the per-event weights of the pt-hat binned
// productions whose generator bookkeeping is wrong or missing.
var DefaultOverrides = map[string]float64{
	"/project/projectdirs/alice/NTuples/MC/17g6a3/17g6a3_pthat1.root": 4.47e-11,
	"/project/projectdirs/alice/NTuples/MC/17g6a3/17g6a3_pthat2.root": 9.83e-11,
	"/project/projectdirs/alice/NTuples/MC/17g6a3/17g6a3_pthat3.root": 1.04e-10,
	"/project/projectdirs/alice/NTuples/MC/17g6a3/17g6a3_pthat4.root": 1.01e-11,
	"/project/projectdirs/alice/NTuples/MC/16c3b/16c3b_pthat1.root":   6.071458e-03,
	"/project/projectdirs/alice/NTuples/MC/16c3b/16c3b_pthat2.root":   3.941701e-03,
	"/project/projectdirs/alice/NTuples/MC/16c3b/16c3b_pthat3.root":   2.001984e-03,
	"/project/projectdirs/alice/NTuples/MC/16c3b/16c3b_pthat4.root":   9.862765e-04,
}

// Weighter computes per-event weights.
type Weighter struct {
	overrides map[string]float64
}

// NewWeighter returns a weighter using the union of the provided
// override tables. Later tables take precedence.
func NewWeighter(tables ...map[string]float64) *Weighter {
	w := &Weighter{overrides: make(map[string]float64)}
	for _, tbl := range tables {
		for k, v := range tbl {
			w.overrides[k] = v
		}
	}
	return w
}

// Override returns the literal weight associated with the source, if any.
func (w *Weighter) Override(src string) (float64, bool) {
	v, ok := w.overrides[src]
	return v, ok
}

// Weight returns the weight of an event read from src.
func (w *Weighter) Weight(src string, xsec float32, ntrial int32) float64 {
	if v, ok := w.overrides[src]; ok {
		return v
	}
	if ntrial > 0 {
		return float64(xsec) / float64(ntrial)
	}
	return 1
}
