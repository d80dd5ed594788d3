// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import (
	"context"
	"strconv"
	"testing"

	"github.com/snmpregistry/oidreg/oid"
)

// TestSpineInvariants walks the spine after a scripted sequence of
// register/unregister calls and checks I1-I5 directly against the live
// structure, rather than only asserting on FindSubtree's return values.
func TestSpineInvariants(t *testing.T) {
	r := bootstrap(t)
	ctx := context.Background()

	script := []struct {
		label    string
		priority int
		name     oid.OID
		vars     int
	}{
		{"A", 10, oid.OID{1, 3, 6, 1, 2, 1, 1}, 2},
		{"B", 10, oid.OID{1, 3, 6, 1, 2, 1, 1, 3}, 1},
		{"C", 5, oid.OID{1, 3, 6, 1, 2, 1, 1, 3}, 1},
		{"D", 20, oid.OID{1, 3, 6, 1, 2, 1, 2}, 1},
	}
	for _, s := range script {
		bindings := make([]VarBinding, s.vars)
		if err := r.RegisterRange(ctx, s.label, bindings, 1, s.name, s.priority, 0, 0, nil); err != nil {
			t.Fatalf("register %s: %v", s.label, err)
		}
		checkInvariants(t, r)
	}

	if err := r.Unregister(ctx, oid.OID{1, 3, 6, 1, 2, 1, 1, 3}, 10, 0, 0); err != nil {
		t.Fatalf("unregister B: %v", err)
	}
	checkInvariants(t, r)
}

func checkInvariants(t *testing.T, r *Registry) {
	t.Helper()

	var prev *Node
	for n := r.spine; n != nil; n = n.Next {
		// I1: strictly sorted by Start, contiguous across slots.
		if prev != nil {
			if prev.Start.Compare(n.Start) >= 0 {
				t.Fatalf("I1: spine not strictly sorted: %v then %v", prev.Start, n.Start)
			}
			if !prev.End.Equal(n.Start) {
				t.Fatalf("I1: gap/overlap in spine: prev.End=%v next.Start=%v", prev.End, n.Start)
			}
		}

		checkChain(t, n)
		prev = n
	}
}

// checkChain verifies I2-I4 for one spine slot's priority chain, headed
// by head.
func checkChain(t *testing.T, head *Node) {
	t.Helper()

	seen := map[string]bool{}
	var prevDepth *Node
	for n := head; n != nil; n = n.Children {
		// I3: Start/End match the slot's; Name is a prefix of Start.
		if !n.Start.Equal(head.Start) || !n.End.Equal(head.End) {
			t.Fatalf("I3: chain member %s has Start/End %v/%v, want %v/%v", n.Label, n.Start, n.End, head.Start, head.End)
		}
		if !n.Start.HasPrefix(n.Name) {
			t.Fatalf("I3: %s's Name %v is not a prefix of Start %v", n.Label, n.Name, n.Start)
		}

		// I2: namelen descending, then priority ascending; unique (name,priority).
		if prevDepth != nil {
			switch {
			case len(prevDepth.Name) < len(n.Name):
				t.Fatalf("I2: namelen not descending: %s(%d) before %s(%d)", prevDepth.Label, len(prevDepth.Name), n.Label, len(n.Name))
			case len(prevDepth.Name) == len(n.Name) && prevDepth.Priority > n.Priority:
				t.Fatalf("I2: priority not ascending at equal namelen: %s(%d) before %s(%d)", prevDepth.Label, prevDepth.Priority, n.Label, n.Priority)
			}
		}
		key := n.Name.String() + "/" + strconv.Itoa(n.Priority)
		if seen[key] {
			t.Fatalf("I2: duplicate (name, priority) in chain: %s", key)
		}
		seen[key] = true

		// I4: every depth of the chain agrees with the head on Prev/Next,
		// so dropping through Children from any depth reaches the same
		// spine neighbours.
		if n.Prev != head.Prev {
			t.Fatalf("I4: %s.Prev diverges from chain head's Prev", n.Label)
		}
		if n.Next != head.Next {
			t.Fatalf("I4: %s.Next diverges from chain head's Next", n.Label)
		}

		// I5: a cover-only node (no variables) carries no meaning beyond
		// coverage; FindNext must skip it.
		if n.IsCoverOnly() && len(n.Variables) != 0 {
			t.Fatalf("I5: IsCoverOnly inconsistent with Variables on %s", n.Label)
		}

		prevDepth = n
	}
}
