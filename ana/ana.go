// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana implements the cluster-jet and jet-jet pair analyses:
// event selection, weighting, truth matching and weighted histogram
// accumulation.
package ana // import "github.com/go-lpc/ntgj/ana"

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/go-lpc/ntgj/event"
	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/hbook"
)

// ErrNoObjects is returned when normalizing an analysis that did not
// accept any trigger object.
var ErrNoObjects = errors.New("ana: no accepted trigger object")

// noTruth is the truth kinematics of a trigger without a truth match.
const noTruth = -999

// Totals holds the run-wide counters of an analysis.
type Totals struct {
	Events  int64   // number of events passing the event selection
	Objects int64   // number of accepted trigger objects
	EvtW    float64 // sum of weights over passing events
	ObjW    float64 // sum of weights over accepted trigger objects
}

// Analysis accumulates pair histograms over a sequence of event sources.
type Analysis struct {
	Mode   Mode
	Hists  *Hists
	Totals Totals

	// MC is set as soon as one of the processed sources holds
	// simulated events.
	MC bool

	wgt  *Weighter
	msg  *log.Logger
	freq int64
}

// Option configures an Analysis.
type Option func(*Analysis)

// WithLogger sets the logger used to report progress.
func WithLogger(msg *log.Logger) Option {
	return func(a *Analysis) {
		a.msg = msg
	}
}

// WithWeighter sets the event weighter.
func WithWeighter(w *Weighter) Option {
	return func(a *Analysis) {
		a.wgt = w
	}
}

// WithFreq sets the event period of progress reports.
// A value <= 0 disables progress reports.
func WithFreq(n int64) Option {
	return func(a *Analysis) {
		a.freq = n
	}
}

// New creates a new analysis of the provided mode.
func New(mode Mode, opts ...Option) *Analysis {
	a := &Analysis{
		Mode:  mode,
		Hists: NewHists(),
		wgt:   NewWeighter(DefaultOverrides),
		msg:   log.New(io.Discard, "", 0),
		freq:  10000,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process runs the analysis over the first nmax events of src.
// A negative nmax processes all events.
func (a *Analysis) Process(src event.Source, nmax int64) error {
	mc, err := event.IsSimulated(src)
	if err != nil {
		return fmt.Errorf("ana: could not inspect source %q: %w", src.Name(), err)
	}
	a.MC = a.MC || mc

	if w, ok := a.wgt.Override(src.Name()); ok {
		a.msg.Printf("using weight override %g for %q", w, src.Name())
	}

	n := src.Entries()
	if nmax >= 0 && nmax < n {
		n = nmax
	}

	err = src.Scan(0, n, func(i int64, evt *event.Event) error {
		if a.freq > 0 && i%a.freq == 0 {
			a.msg.Printf("processing evt %d/%d...", i, n)
		}
		a.process(src.Name(), mc, evt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ana: could not process source %q: %w", src.Name(), err)
	}

	return nil
}

// Normalize scales all histograms by the inverse of the sum of weights
// over accepted trigger objects.
func (a *Analysis) Normalize() error {
	if a.Totals.ObjW == 0 {
		return ErrNoObjects
	}
	a.Hists.Scale(1 / a.Totals.ObjW)
	return nil
}

type trigger struct {
	reco  fmom.PtEtaPhiM
	truth fmom.PtEtaPhiM
}

func (a *Analysis) process(name string, mc bool, evt *event.Event) {
	if !PassEvent(evt) {
		return
	}

	w := a.wgt.Weight(name, evt.XSec, evt.NTrial)
	a.Totals.Events++
	a.Totals.EvtW += w

	n := evt.NClusters()
	if a.Mode == JetMode {
		n = evt.NJets()
	}

	for k := 0; k < n; k++ {
		trig, ok := a.trigger(evt, k, mc)
		if !ok {
			continue
		}

		hs := a.Hists
		fill(hs.LeadEta, trig.reco.Eta(), w)
		fill(hs.LeadPhi, trig.reco.Phi(), w)
		fill(hs.LeadPt, trig.reco.Pt(), w)
		if mc {
			fill(hs.LeadEtaTruth, trig.truth.Eta(), w)
			fill(hs.LeadPhiTruth, trig.truth.Phi(), w)
			fill(hs.LeadPtTruth, trig.truth.Pt(), w)
		}

		a.Totals.Objects++
		a.Totals.ObjW += w

		a.pairs(evt, k, &trig, mc, w)
	}
}

// trigger selects the k-th trigger object of the event.
// For simulated clusters, objects without a truth origin are rejected.
func (a *Analysis) trigger(evt *event.Event, k int, mc bool) (trigger, bool) {
	trig := trigger{
		truth: fmom.NewPtEtaPhiM(noTruth, noTruth, noTruth, 0),
	}

	switch a.Mode {
	case JetMode:
		jet := evt.Jet(k)
		if !PassJet(jet) {
			return trig, false
		}
		trig.reco = fmom.NewPtEtaPhiM(jet.Pt, jet.Eta, jet.Phi, 0)
		trig.truth = fmom.NewPtEtaPhiM(jet.TruthPt, jet.TruthEta, jet.TruthPhi, 0)

	default:
		cl := evt.Cluster(k)
		if !PassCluster(cl) {
			return trig, false
		}
		trig.reco = fmom.NewPtEtaPhiM(cl.Pt, cl.Eta, cl.Phi, 0)
		if mc {
			p, ok := MatchTruth(evt, cl.TruthIdx[:])
			if !ok {
				return trig, false
			}
			trig.truth = fmom.NewPtEtaPhiM(p.Pt, p.Eta, p.Phi, 0)
		}
	}

	return trig, true
}

// pairs fills the pair histograms for the trigger at position k and
// the jets stored after it.
func (a *Analysis) pairs(evt *event.Event, k int, trig *trigger, mc bool, w float64) {
	hs := a.Hists
	for i := k + 1; i < evt.NJets(); i++ {
		jet := evt.Jet(i)
		if !PassJet(jet) {
			continue
		}

		if mc && (math.IsNaN(jet.TruthPhi) || math.IsNaN(trig.truth.Phi())) {
			continue
		}

		dphi := DeltaPhi(jet.Phi, trig.reco.Phi())
		deta := math.Abs(jet.Eta - trig.reco.Eta())
		avg := (jet.Eta + trig.reco.Eta()) / 2

		fill(hs.DPhi, dphi, w)
		fill(hs.DEta, deta, w)
		fill(hs.AvgEta, avg, w)

		if mc {
			fill(hs.DPhiTruth, DeltaPhi(jet.TruthPhi, trig.truth.Phi()), w)
			fill(hs.DEtaTruth, math.Abs(jet.TruthEta-trig.truth.Eta()), w)
			fill(hs.AvgEtaTruth, (jet.TruthEta+trig.truth.Eta())/2, w)
		}

		if !(dphi > math.Pi/2) {
			continue
		}

		fill(hs.Xj, jet.Pt/trig.reco.Pt(), w)
		fill(hs.PtD, jet.PtD, w)
		fill(hs.Mult, jet.Mult, w)
		fill(hs.Width, jet.Width, w)

		if mc {
			fill(hs.XjTruth, jet.TruthPt/trig.truth.Pt(), w)
		}
	}
}

// fill fills h with x, routing NaN values to the overflow bin.
func fill(h *hbook.H1D, x, w float64) {
	if math.IsNaN(x) {
		x = math.Inf(+1)
	}
	h.Fill(x, w)
}

// DeltaPhi returns the azimuthal separation |phi1-phi2|, wrapped into [0, π].
func DeltaPhi(phi1, phi2 float64) float64 {
	return math.Abs(math.Remainder(phi1-phi2, 2*math.Pi))
}
