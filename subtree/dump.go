// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import (
	"fmt"
	"io"
)

// SlotDump is one spine slot's diagnostic snapshot: its covered range,
// whether it is cover-only, and the labels of every registration in its
// priority chain, in chain order: longest Name first, then lowest
// priority number first among equal Name lengths.
type SlotDump struct {
	Start, End string
	CoverOnly  bool
	Labels     []string
}

// Dump returns a snapshot of every spine slot in order, for diagnostics
// and tests. It never mutates the registry.
func (r *Registry) Dump() []SlotDump {
	r.enter("Dump")
	defer r.leave()

	var out []SlotDump
	for n := r.spine; n != nil; n = n.Next {
		d := SlotDump{
			Start:     n.Start.String(),
			End:       n.End.String(),
			CoverOnly: n.IsCoverOnly(),
		}
		for c := n; c != nil; c = c.Children {
			d.Labels = append(d.Labels, c.Label)
		}
		out = append(out, d)
	}
	return out
}

// WriteDump renders Dump's output in the source's dump_registry format:
// "start - end" per slot, parenthesized when cover-only, followed by one
// indented line per non-empty label in its priority chain (the empty
// labels of the bootstrap roots are skipped).
func (r *Registry) WriteDump(w io.Writer) error {
	for _, slot := range r.Dump() {
		open, close := " ", " "
		if slot.CoverOnly {
			open, close = "(", ")"
		}
		if _, err := fmt.Fprintf(w, "%s%s - %s%s\n", open, slot.Start, slot.End, close); err != nil {
			return err
		}
		for _, label := range slot.Labels {
			if label == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "\t%s\n", label); err != nil {
				return err
			}
		}
	}
	return nil
}
