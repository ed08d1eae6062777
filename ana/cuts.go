// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-lpc/ntgj/event"
)

// Mode selects the kind of trigger object of an analysis.
type Mode int

const (
	ClusterMode Mode = iota // cluster-jet pairs
	JetMode                 // jet-jet pairs
)

var ErrMode = errors.New("ana: unrecognized pair type")

// ParseMode parses the textual representation of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cluster":
		return ClusterMode, nil
	case "jet":
		return JetMode, nil
	}
	return 0, fmt.Errorf("%w %q (want cluster or jet)", ErrMode, s)
}

func (m Mode) String() string {
	switch m {
	case ClusterMode:
		return "cluster"
	case JetMode:
		return "jet"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

const (
	vtxZMax = 10.0 // cm

	jetPtMin  = 5.0
	jetPtMax  = 30.0
	jetEtaMax = 0.5

	cluPtMin      = 7.0
	cluNCellMin   = 2
	cluECrossMin  = 0.05
	cluNLocMaxMax = 2
	cluDistBadMin = 2.0
)

// PassEvent applies the vertex and pileup event selection.
func PassEvent(evt *event.Event) bool {
	if !(math.Abs(evt.Vertex[2]) < vtxZMax) {
		return false
	}
	return !evt.Pileup58
}

// PassJet applies the jet kinematic selection, used for trigger and
// partner jets alike.
func PassJet(jet event.Jet) bool {
	return jet.Pt > jetPtMin && jet.Pt < jetPtMax && math.Abs(jet.Eta) < jetEtaMax
}

// PassCluster applies the cluster quality selection.
// It removes clusters made of one or two cells, spiky clusters and
// merged clusters with more than two local maxima.
func PassCluster(cl event.Cluster) bool {
	switch {
	case !(cl.Pt > cluPtMin):
		return false
	case !(cl.NCell > cluNCellMin):
		return false
	case !(cl.ECross/cl.E > cluECrossMin):
		return false
	case !(cl.NLocMax <= cluNLocMaxMax):
		return false
	case !(cl.DistBad >= cluDistBadMin):
		return false
	}
	return true
}
