// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import (
	"fmt"

	"github.com/snmpregistry/oidreg/oid"
)

// VarBinding is one row of a node's variable table: a handler reachable
// at Suffix, relative to the node's Name. The suffix-relative encoding
// (rather than a full OID) is what lets split carve a variable table
// between a node and its split tail by comparing suffixes, exactly as
// the source's row-by-row partition in split_subtree does.
type VarBinding struct {
	Suffix  oid.OID
	Handler any
}

// Node is the unit value held by the subtree registry: a half-open OID
// range [Start, End), the registration that created it, its place on the
// registry's spine (Prev/Next) and, when more than one registration
// overlaps the same covered range, its place in a priority-ordered child
// chain.
//
// Name is fixed for the life of the node: it is the OID the registration
// named at RegisterRange time, and it never changes even as Start/End are
// narrowed by subsequent splits. Invariant I3 (Name is a prefix of, or
// equal to, Start) follows directly from that.
type Node struct {
	Name  oid.OID
	Start oid.OID
	End   oid.OID

	Label string

	Variables []VarBinding
	// VariablesWidth records the row stride of the original C layout this
	// design is modeled on. Go slices make it redundant (len(Variables)
	// is the row count), so nothing in this package reads it back (Dump
	// does not report it); it is carried purely so callers that care
	// about data-model fidelity can read it.
	VariablesWidth int

	Priority int
	Session  *Session

	Prev     *Node
	Next     *Node
	Children *Node
}

// IsCoverOnly reports whether n exists only to cover territory on the
// spine, with no locally- or remotely-implemented variables. Per
// invariant I5, cover-only nodes are skipped by FindNext.
func (n *Node) IsCoverOnly() bool {
	return len(n.Variables) == 0
}

// clone returns a full shallow copy of n, Next/Prev/Children included.
// split relies on the clone still carrying n's *old* Next pointer so it
// can relink the following node once the clone has taken n's place in
// the spine; the caller is expected to overwrite Start/End, Variables
// and Children immediately afterwards.
func (n *Node) clone() *Node {
	cp := *n
	return &cp
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	mark := " "
	if n.IsCoverOnly() {
		mark = "(" // matches dump_registry's parenthesization of cover-only nodes
	}
	return fmt.Sprintf("%s%s - %s%s [%s pri=%d]", mark, n.Start, n.End, closeMark(mark), n.Label, n.Priority)
}

func closeMark(open string) string {
	if open == "(" {
		return ")"
	}
	return ""
}
