// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/go-lpc/ntgj/event"
)

const (
	pdgPhoton = 22
	pdgPi0    = 111
)

// MatchTruth returns the first truth particle referenced by table that
// is a live photon from a neutral pion decay.
// Unset and out-of-range entries are skipped.
func MatchTruth(evt *event.Event, table []uint16) (event.Particle, bool) {
	n := evt.NTruth()
	for _, idx := range table {
		if idx == event.NoTruth || int(idx) >= n {
			continue
		}
		p := evt.Particle(int(idx))
		if p.PDG == pdgPhoton && p.ParentPDG == pdgPi0 && p.Status > 0 {
			return p, true
		}
	}
	return event.Particle{}, false
}
