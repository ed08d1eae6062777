// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event describes the content of the NTGJ event n-tuples and
// provides sources to iterate over them.
package event // import "github.com/go-lpc/ntgj/event"

const (
	// NoTruth marks an unset entry in a cluster truth-index table.
	NoTruth = 0xffff

	// NTruthIndices is the capacity of a cluster truth-index table.
	NTruthIndices = 32
)

// Event holds the per-event fields of the _tree_event tree.
// Per-object data is stored as parallel slices.
type Event struct {
	Vertex   [3]float64 // primary vertex
	Pileup58 bool       // is_pileup_from_spd_5_08
	Pileup38 bool       // is_pileup_from_spd_3_08

	XSec   float32 // generator cross-section
	NTrial int32   // generator trial count

	Clusters Clusters
	Jets     Jets
	Tracks   Tracks
	MC       Truth
}

// Clusters holds the calorimeter clusters of an event.
type Clusters struct {
	E        []float32
	ECross   []float32
	Pt       []float32
	Eta      []float32
	Phi      []float32
	NCell    []int32
	NLocMax  []uint8
	DistBad  []float32 // distance to the nearest bad channel
	TruthIdx [][NTruthIndices]uint16
}

// Jets holds the anti-kt R=0.4 ITS jets of an event, together with
// their matched truth jets.
type Jets struct {
	Pt    []float32
	Eta   []float32
	Phi   []float32
	PtD   []float32
	Mult  []uint16
	Width [][2]float32

	TruthPt  []float32
	TruthEta []float32
	TruthPhi []float32
}

// Tracks holds the reconstructed tracks of an event.
type Tracks struct {
	E       []float32
	Pt      []float32
	Eta     []float32
	Phi     []float32
	Quality []uint8
}

// Truth holds the generator-level particles of a simulated event.
type Truth struct {
	Pt        []float32
	Eta       []float32
	Phi       []float32
	PDG       []int16
	ParentPDG []int16 // PDG code of the first parent
	Status    []uint8
}

// Jet is a view onto the i-th jet of an event.
type Jet struct {
	Pt, Eta, Phi float64
	PtD          float64
	Mult         float64
	Width        float64

	TruthPt, TruthEta, TruthPhi float64
}

// Cluster is a view onto the i-th cluster of an event.
type Cluster struct {
	Pt, Eta, Phi float64
	E, ECross    float64
	NCell        int32
	NLocMax      uint8
	DistBad      float64
	TruthIdx     [NTruthIndices]uint16
}

// Particle is a view onto the i-th truth particle of an event.
type Particle struct {
	Pt, Eta, Phi float64
	PDG          int16
	ParentPDG    int16
	Status       uint8
}

// NJets returns the number of jets in the event.
func (evt *Event) NJets() int { return len(evt.Jets.Pt) }

// NClusters returns the number of clusters in the event.
func (evt *Event) NClusters() int { return len(evt.Clusters.Pt) }

// NTruth returns the number of truth particles in the event.
func (evt *Event) NTruth() int { return len(evt.MC.Pt) }

// Jet returns a view onto the i-th jet.
// Optional columns that were not filled read as zero.
func (evt *Event) Jet(i int) Jet {
	js := &evt.Jets
	jet := Jet{
		Pt:  float64(js.Pt[i]),
		Eta: float64(js.Eta[i]),
		Phi: float64(js.Phi[i]),
	}
	if i < len(js.PtD) {
		jet.PtD = float64(js.PtD[i])
	}
	if i < len(js.Mult) {
		jet.Mult = float64(js.Mult[i])
	}
	if i < len(js.Width) {
		jet.Width = float64(js.Width[i][0])
	}
	if i < len(js.TruthPt) {
		jet.TruthPt = float64(js.TruthPt[i])
	}
	if i < len(js.TruthEta) {
		jet.TruthEta = float64(js.TruthEta[i])
	}
	if i < len(js.TruthPhi) {
		jet.TruthPhi = float64(js.TruthPhi[i])
	}
	return jet
}

// Cluster returns a view onto the i-th cluster.
func (evt *Event) Cluster(i int) Cluster {
	cs := &evt.Clusters
	cl := Cluster{
		Pt:      float64(cs.Pt[i]),
		Eta:     float64(cs.Eta[i]),
		Phi:     float64(cs.Phi[i]),
		E:       float64(cs.E[i]),
		ECross:  float64(cs.ECross[i]),
		NCell:   cs.NCell[i],
		NLocMax: cs.NLocMax[i],
		DistBad: float64(cs.DistBad[i]),
	}
	if i < len(cs.TruthIdx) {
		cl.TruthIdx = cs.TruthIdx[i]
	} else {
		for j := range cl.TruthIdx {
			cl.TruthIdx[j] = NoTruth
		}
	}
	return cl
}

// Particle returns a view onto the i-th truth particle.
// Identification columns that were not filled read as zero.
func (evt *Event) Particle(i int) Particle {
	mc := &evt.MC
	p := Particle{
		Pt:  float64(mc.Pt[i]),
		Eta: float64(mc.Eta[i]),
		Phi: float64(mc.Phi[i]),
	}
	if i < len(mc.PDG) {
		p.PDG = mc.PDG[i]
	}
	if i < len(mc.ParentPDG) {
		p.ParentPDG = mc.ParentPDG[i]
	}
	if i < len(mc.Status) {
		p.Status = mc.Status[i]
	}
	return p
}
