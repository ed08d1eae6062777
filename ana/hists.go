// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
)

const (
	xjBins  = 20
	phiBins = 20
	etaBins = 20
)

// Hists is the set of weighted histograms filled by an analysis.
type Hists struct {
	Xj      *hbook.H1D
	XjTruth *hbook.H1D

	DPhi      *hbook.H1D
	DPhiTruth *hbook.H1D

	PtD   *hbook.H1D
	Mult  *hbook.H1D
	Width *hbook.H1D

	DEta      *hbook.H1D
	DEtaTruth *hbook.H1D

	AvgEta      *hbook.H1D
	AvgEtaTruth *hbook.H1D

	LeadPt      *hbook.H1D
	LeadPtTruth *hbook.H1D

	LeadEta      *hbook.H1D
	LeadEtaTruth *hbook.H1D

	LeadPhi      *hbook.H1D
	LeadPhiTruth *hbook.H1D
}

func newH1D(name, title string, n int, xmin, xmax float64) *hbook.H1D {
	h := hbook.NewH1D(n, xmin, xmax)
	h.Annotation()["name"] = name
	h.Annotation()["title"] = title
	return h
}

// NewHists creates the histogram set with its fixed binning.
func NewHists() *Hists {
	return &Hists{
		Xj:      newH1D("hjet_Xj", "; X_{j} ; 1/N_{#gamma} dN_{J#gamma}/dX_{j}", xjBins, 0, 2),
		XjTruth: newH1D("hjet_Xj_truth", "; X_{j}^{true} ; counts", xjBins, 0, 2),

		DPhi:      newH1D("hjet_dPhi", "delta phi jet-jet signal region", phiBins, 0, math.Pi),
		DPhiTruth: newH1D("hjet_dPhi_truth", "delta phi jet-jet truth MC", phiBins, 0, math.Pi),

		PtD:   newH1D("hjet_ptD", "pTD distribution, Jets", 40, 0, 1),
		Mult:  newH1D("hjet_Multiplicity", "Secondary Jet Multiplicity distribution", 20, -0.5, 19.5),
		Width: newH1D("hjet_jetwidth", "jet width distribution", 20, 0, 0.01),

		DEta:      newH1D("hjet_dEta", "delta eta jet-jet", etaBins, -1.2, 1.2),
		DEtaTruth: newH1D("hjet_dEta_truth", "delta eta jet-jet, truth", etaBins, -1.2, 1.2),

		AvgEta:      newH1D("hjet_AvgEta", "Average eta jet-jet", 2*etaBins, -1.2, 1.2),
		AvgEtaTruth: newH1D("hjet_AvgEta_truth", "Average eta jet-jet, truth", 2*etaBins, -1.2, 1.2),

		LeadPt:      newH1D("hjet_leading_pT", "Leading jet pT distribution", 25, 5, 30),
		LeadPtTruth: newH1D("hjet_leading_pT_truth", "True Leading jet pT distribution, Jets", 25, 5, 30),

		LeadEta:      newH1D("hjet_leading_Eta", "Leading jet eta distribution", 2*etaBins, -1.2, 1.2),
		LeadEtaTruth: newH1D("hjet_leading_Eta_truth", "True Leading jet eta distribution", 2*etaBins, -1.2, 1.2),

		// the truth key lacks the underscore of its reco sibling.
		// downstream macros rely on it.
		LeadPhi:      newH1D("hjet_leading_Phi", "Leading jet phi distribution", 2*phiBins, -math.Pi, math.Pi),
		LeadPhiTruth: newH1D("hjet_leadingPhi_truth", "True Leading jet phi distribution", 2*phiBins, -math.Pi, math.Pi),
	}
}

// Reco returns the reconstruction-level histograms.
func (hs *Hists) Reco() []*hbook.H1D {
	return []*hbook.H1D{
		hs.Xj, hs.DPhi, hs.PtD, hs.Mult, hs.Width,
		hs.DEta, hs.AvgEta, hs.LeadPt, hs.LeadEta, hs.LeadPhi,
	}
}

// Truth returns the truth-level histograms.
func (hs *Hists) Truth() []*hbook.H1D {
	return []*hbook.H1D{
		hs.XjTruth, hs.DPhiTruth, hs.DEtaTruth, hs.AvgEtaTruth,
		hs.LeadPtTruth, hs.LeadEtaTruth, hs.LeadPhiTruth,
	}
}

// All returns all the histograms of the set.
func (hs *Hists) All() []*hbook.H1D {
	return append(hs.Reco(), hs.Truth()...)
}

// Scale scales the content of all histograms by f.
func (hs *Hists) Scale(f float64) {
	for _, h := range hs.All() {
		h.Scale(f)
	}
}

// Save writes the histograms to a new ROOT file.
// Truth-level histograms are only written when truth is set.
func (hs *Hists) Save(fname string, truth bool) error {
	f, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("ana: could not create output file %q: %w", fname, err)
	}
	defer f.Close()

	hists := hs.Reco()
	if truth {
		hists = hs.All()
	}

	for _, h := range hists {
		err = f.Put(h.Name(), rhist.NewH1DFrom(h))
		if err != nil {
			return fmt.Errorf("ana: could not write histogram %q: %w", h.Name(), err)
		}
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("ana: could not close output file %q: %w", fname, err)
	}

	return nil
}
