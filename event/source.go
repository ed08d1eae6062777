// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
)

// Source is a sequence of events stored in some medium.
type Source interface {
	// Name returns the identifier of the source, as given by the user.
	Name() string

	// Entries returns the number of events held by the source.
	Entries() int64

	// Scan calls f for each event in [beg, end), in storage order.
	// The event passed to f is only valid for the duration of the call.
	// Scan stops at the first error returned by f.
	Scan(beg, end int64, f func(i int64, evt *Event) error) error
}

// Mem is an in-memory event source.
type Mem struct {
	Path   string
	Events []Event
}

var _ Source = (*Mem)(nil)

func (src *Mem) Name() string   { return src.Path }
func (src *Mem) Entries() int64 { return int64(len(src.Events)) }

func (src *Mem) Scan(beg, end int64, f func(i int64, evt *Event) error) error {
	if beg < 0 || end > src.Entries() || beg > end {
		return fmt.Errorf("event: invalid range [%d, %d) (entries=%d)", beg, end, src.Entries())
	}
	for i := beg; i < end; i++ {
		err := f(i, &src.Events[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// IsSimulated reports whether src holds simulated events.
// The decision is taken by inspecting the number of truth particles of
// the second event (or of the first one for single-event sources).
func IsSimulated(src Source) (bool, error) {
	n := src.Entries()
	if n == 0 {
		return false, nil
	}
	i := int64(1)
	if n == 1 {
		i = 0
	}

	var mc bool
	err := src.Scan(i, i+1, func(_ int64, evt *Event) error {
		mc = evt.NTruth() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("event: could not probe %q for truth content: %w", src.Name(), err)
	}
	return mc, nil
}
