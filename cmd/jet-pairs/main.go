// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command jet-pairs fills cluster-jet or jet-jet pair histograms from
// NTGJ event n-tuples and writes them, normalized, to a ROOT file.
//
// Usage: jet-pairs [OPTIONS] <cluster|jet> FILE1 [FILE2 [...]]
//
// Example:
//
//	$> jet-pairs -o ./out jet 17g6a3_pthat1.root 17g6a3_pthat2.root
//	$> jet-pairs -max=-1 -db="user@tcp(host:3306)/ntgj" cluster 16c3b_pthat1.root
package main // import "github.com/go-lpc/ntgj/cmd/jet-pairs"

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-lpc/ntgj"
	"github.com/go-lpc/ntgj/ana"
	"github.com/go-lpc/ntgj/conddb"
	"github.com/go-lpc/ntgj/event"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetPrefix("jet-pairs: ")
	log.SetFlags(0)

	err := xmain(os.Args[1:])
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

type config struct {
	mode  ana.Mode
	odir  string
	nmax  int64
	freq  int64
	dsn   string
	files []string
}

func xmain(args []string) error {
	var (
		fset = flag.NewFlagSet("jet-pairs", flag.ContinueOnError)

		odir = fset.String("o", ".", "path to output directory")
		nmax = fset.Int64("max", 3000000, "maximum number of events, split evenly across input files (-1: all)")
		freq = fset.Int64("freq", 10000, "period of progress reports (in events)")
		dsn  = fset.String("db", "", "DSN of the condition database holding weight overrides")
		cpu  = fset.Bool("cpu-prof", false, "enable CPU profiling")
		vers = fset.Bool("version", false, "print version and exit")
	)

	fset.Usage = func() {
		fmt.Fprintf(fset.Output(), `Usage: jet-pairs [OPTIONS] <cluster|jet> FILE1 [FILE2 [...]]

ex:
 $> jet-pairs -o ./out jet 17g6a3_pthat1.root 17g6a3_pthat2.root

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *vers {
		v, sum := ntgj.Version()
		fmt.Printf("jet-pairs %s %s\n", v, sum)
		return nil
	}

	if fset.NArg() < 1 {
		fset.Usage()
		return fmt.Errorf("missing analysis mode")
	}

	mode, err := ana.ParseMode(fset.Arg(0))
	if err != nil {
		fset.Usage()
		return err
	}

	if fset.NArg() < 2 {
		fset.Usage()
		return fmt.Errorf("missing input file(s)")
	}

	if *cpu {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*odir)).Stop()
	}

	msg := log.New(os.Stdout, "jet-pairs: ", 0)
	return run(context.Background(), msg, config{
		mode:  mode,
		odir:  *odir,
		nmax:  *nmax,
		freq:  *freq,
		dsn:   *dsn,
		files: fset.Args()[1:],
	})
}

func run(ctx context.Context, msg *log.Logger, cfg config) error {
	tables := []map[string]float64{ana.DefaultOverrides}
	if cfg.dsn != "" {
		ws, err := dbWeights(ctx, cfg.dsn)
		if err != nil {
			return err
		}
		msg.Printf("loaded %d weight overrides from condition db", len(ws))
		tables = append(tables, ws)
	}

	srcs, err := openAll(cfg.files)
	if err != nil {
		return err
	}
	defer func() {
		for _, src := range srcs {
			_ = src.Close()
		}
	}()

	nmax := cfg.nmax
	if nmax >= 0 {
		nmax /= int64(len(srcs))
	}

	a := ana.New(
		cfg.mode,
		ana.WithLogger(msg),
		ana.WithWeighter(ana.NewWeighter(tables...)),
		ana.WithFreq(cfg.freq),
	)

	for _, src := range srcs {
		msg.Printf("processing %q (entries=%d)...", src.Name(), src.Entries())
		err = a.Process(src, nmax)
		if err != nil {
			return fmt.Errorf("could not run %s analysis: %w", cfg.mode, err)
		}
	}

	tot := a.Totals
	msg.Printf("events passing selection: %d (sum of weights: %g)", tot.Events, tot.EvtW)
	msg.Printf("accepted trigger objects: %d (sum of weights: %g)", tot.Objects, tot.ObjW)

	err = a.Normalize()
	if err != nil {
		return fmt.Errorf("could not normalize histograms: %w", err)
	}

	oname := filepath.Join(cfg.odir, outputName(cfg.mode, cfg.files))
	err = a.Hists.Save(oname, a.MC)
	if err != nil {
		return fmt.Errorf("could not save histograms: %w", err)
	}
	msg.Printf("histograms written to %q", oname)

	return nil
}

func dbWeights(ctx context.Context, dsn string) (map[string]float64, error) {
	db, err := conddb.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open condition db: %w", err)
	}
	defer db.Close()

	ws, err := db.DatasetWeights(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve weight overrides from %q: %w", db.Name(), err)
	}

	return ws, nil
}

// openAll opens all input files, failing if any of them is unusable.
func openAll(fnames []string) ([]*event.File, error) {
	var (
		grp  errgroup.Group
		srcs = make([]*event.File, len(fnames))
	)
	for i := range fnames {
		i := i
		grp.Go(func() error {
			f, err := event.Open(fnames[i])
			if err != nil {
				return fmt.Errorf("could not open input file %q: %w", fnames[i], err)
			}
			srcs[i] = f
			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		for _, src := range srcs {
			if src != nil {
				_ = src.Close()
			}
		}
		return nil, err
	}

	return srcs, nil
}

// outputName returns the name of the output file for the provided mode
// and input files.
func outputName(mode ana.Mode, fnames []string) string {
	var o strings.Builder
	o.WriteString(mode.String() + "Jet_config")
	for _, fname := range fnames {
		base := filepath.Base(fname)
		o.WriteString("_" + strings.TrimSuffix(base, filepath.Ext(base)))
	}
	o.WriteString(".root")
	return o.String()
}
