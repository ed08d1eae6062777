// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

const (
	// TreeName is the name of the event tree.
	TreeName = "_tree_event"

	// TaskDir is the name of the directory holding the event tree in
	// files produced directly by the analysis task.
	TaskDir = "AliAnalysisTaskNTGJ"
)

var ErrNoTree = errors.New("event: no event tree")

// File is an event source backed by a ROOT file.
type File struct {
	name string
	f    *riofs.File
	tree rtree.Tree
}

var _ Source = (*File)(nil)

// Open opens the named ROOT file and locates its event tree.
func Open(fname string) (*File, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("event: could not open %q: %w", fname, err)
	}

	tree, err := lookup(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("event: could not find event tree in %q: %w", fname, err)
	}

	return &File{name: fname, f: f, tree: tree}, nil
}

func lookup(f *riofs.File) (rtree.Tree, error) {
	obj, err := f.Get(TreeName)
	if err == nil {
		if tree, ok := obj.(rtree.Tree); ok {
			return tree, nil
		}
	}

	obj, err = f.Get(TaskDir)
	if err != nil {
		return nil, ErrNoTree
	}
	dir, ok := obj.(riofs.Directory)
	if !ok {
		return nil, fmt.Errorf("%q is not a directory: %w", TaskDir, ErrNoTree)
	}
	obj, err = dir.Get(TreeName)
	if err != nil {
		return nil, ErrNoTree
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%s/%s is not a tree: %w", TaskDir, TreeName, ErrNoTree)
	}
	return tree, nil
}

func (f *File) Name() string   { return f.name }
func (f *File) Entries() int64 { return f.tree.Entries() }

func (f *File) Close() error {
	return f.f.Close()
}

func (f *File) Scan(beg, end int64, fct func(i int64, evt *Event) error) error {
	if beg == end {
		return nil
	}

	var evt Event
	rvars, err := f.rvars(&evt)
	if err != nil {
		return err
	}

	r, err := rtree.NewReader(f.tree, rvars, rtree.WithRange(beg, end))
	if err != nil {
		return fmt.Errorf("event: could not create tree reader for %q: %w", f.name, err)
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		return fct(ctx.Entry, &evt)
	})
	if err != nil {
		return fmt.Errorf("event: could not read %q: %w", f.name, err)
	}

	return nil
}

type branch struct {
	name string
	ptr  interface{}
	opt  bool // branch may be absent from the tree
}

func branches(evt *Event) []branch {
	var (
		cs = &evt.Clusters
		js = &evt.Jets
		ts = &evt.Tracks
		mc = &evt.MC
	)
	return []branch{
		{name: "primary_vertex", ptr: &evt.Vertex},
		{name: "is_pileup_from_spd_5_08", ptr: &evt.Pileup58},
		{name: "is_pileup_from_spd_3_08", ptr: &evt.Pileup38, opt: true},
		{name: "eg_cross_section", ptr: &evt.XSec},
		{name: "eg_ntrial", ptr: &evt.NTrial},

		{name: "cluster_e", ptr: &cs.E},
		{name: "cluster_e_cross", ptr: &cs.ECross},
		{name: "cluster_pt", ptr: &cs.Pt},
		{name: "cluster_eta", ptr: &cs.Eta},
		{name: "cluster_phi", ptr: &cs.Phi},
		{name: "cluster_ncell", ptr: &cs.NCell},
		{name: "cluster_nlocal_maxima", ptr: &cs.NLocMax},
		{name: "cluster_distance_to_bad_channel", ptr: &cs.DistBad},
		{name: "cluster_mc_truth_index", ptr: &cs.TruthIdx, opt: true},

		{name: "jet_ak04its_pt_raw", ptr: &js.Pt},
		{name: "jet_ak04its_eta_raw", ptr: &js.Eta},
		{name: "jet_ak04its_phi", ptr: &js.Phi},
		{name: "jet_ak04its_ptd_raw", ptr: &js.PtD, opt: true},
		{name: "jet_ak04its_multiplicity_raw", ptr: &js.Mult, opt: true},
		{name: "jet_ak04its_width_sigma_raw", ptr: &js.Width, opt: true},
		{name: "jet_ak04its_pt_truth", ptr: &js.TruthPt, opt: true},
		{name: "jet_ak04its_eta_truth", ptr: &js.TruthEta, opt: true},
		{name: "jet_ak04its_phi_truth", ptr: &js.TruthPhi, opt: true},

		{name: "track_e", ptr: &ts.E, opt: true},
		{name: "track_pt", ptr: &ts.Pt, opt: true},
		{name: "track_eta", ptr: &ts.Eta, opt: true},
		{name: "track_phi", ptr: &ts.Phi, opt: true},
		{name: "track_quality", ptr: &ts.Quality, opt: true},

		{name: "mc_truth_pt", ptr: &mc.Pt, opt: true},
		{name: "mc_truth_eta", ptr: &mc.Eta, opt: true},
		{name: "mc_truth_phi", ptr: &mc.Phi, opt: true},
		{name: "mc_truth_pdg_code", ptr: &mc.PDG, opt: true},
		{name: "mc_truth_first_parent_pdg_code", ptr: &mc.ParentPDG, opt: true},
		{name: "mc_truth_status", ptr: &mc.Status, opt: true},
	}
}

func (f *File) rvars(evt *Event) ([]rtree.ReadVar, error) {
	var rvars []rtree.ReadVar
	for _, b := range branches(evt) {
		if f.tree.Branch(b.name) == nil {
			if b.opt {
				continue
			}
			return nil, fmt.Errorf("event: missing branch %q in %q", b.name, f.name)
		}
		rvars = append(rvars, rtree.ReadVar{Name: b.name, Value: b.ptr})
	}
	return rvars, nil
}
