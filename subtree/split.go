// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import "github.com/snmpregistry/oidreg/oid"

// split divides node into two at the point at, returning the new tail
// that now owns [at, node.End), or nil if at falls beyond node's current
// end (nothing to split).
//
// The variable table is partitioned by comparing each row's Suffix
// (relative to node.Name) against at's suffix beyond node.Name: rows that
// sort before the split point stay with node, the rest move to tail. The
// split is propagated down node's child chain so that every priority
// registration covering this slot is narrowed in lockstep, and the
// Prev/Next spine links are rewritten at every depth reachable through
// Children, preserving invariant I4.
func split(node *Node, at oid.OID) *Node {
	if at.Compare(node.End) > 0 {
		return nil
	}

	tail := node.clone()
	tail.Start = at.Clone()
	node.End = at.Clone()

	atSuffix := at.Suffix(len(node.Name))
	i := 0
	for i < len(node.Variables) && node.Variables[i].Suffix.Compare(atSuffix) < 0 {
		i++
	}
	tail.Variables = append([]VarBinding(nil), node.Variables[i:]...)
	node.Variables = node.Variables[:i:i]

	if node.Children != nil {
		tail.Children = split(node.Children, at)
	}

	for p := node; p != nil; p = p.Children {
		p.Next = tail
	}
	for p := tail; p != nil; p = p.Children {
		p.Prev = node
	}
	for p := tail.Next; p != nil; p = p.Children {
		p.Prev = tail
	}

	return tail
}
