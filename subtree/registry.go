// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package subtree implements the OID-space registry: an ordered,
// non-overlapping sequence of subtree nodes (the "spine") covering the
// entire OID line, with a priority-ordered chain of overlapping
// registrations at each covered point.
//
// This is the core data structure an SNMP agent dispatches every GET,
// GETNEXT and SET through, and the one every subagent handshake mutates.
// Its invariants (I1-I5 in the design this package implements) are
// maintained by two algorithms: load, which splits and splices a new
// registration into the spine, and unload, which reverses it.
package subtree

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/snmpregistry/oidreg/callback"
	"github.com/snmpregistry/oidreg/internal/xlog"
	"github.com/snmpregistry/oidreg/oid"
)

// DefaultPriority is used by the no-priority overload of registration,
// matching the source's DEFAULT_MIB_PRIORITY.
const DefaultPriority = 127

// Registry is the OID-space registry: the spine plus per-slot priority
// chains described in the package doc. The zero value is not ready to
// use; construct one with New.
//
// A Registry is not safe for concurrent use. Every public method
// brackets itself with a reentrancy guard that panics on concurrent or
// nested access rather than silently corrupting the spine — this
// reflects a single-threaded cooperative scheduling model, not a
// promise that the guard makes concurrent use safe.
type Registry struct {
	spine  *Node
	bus    *callback.Bus
	logger *slog.Logger
	busy   atomic.Bool
}

// New returns an empty Registry. bus may be nil, in which case
// RegisterOID/UnregisterOID events are simply not dispatched.
// logger may be nil.
func New(bus *callback.Bus, logger *slog.Logger) *Registry {
	return &Registry{
		bus:    bus,
		logger: xlog.Component(logger, "subtree"),
	}
}

func (r *Registry) enter(method string) {
	if !r.busy.CompareAndSwap(false, true) {
		panic("subtree: concurrent or reentrant access to Registry." + method)
	}
}

func (r *Registry) leave() {
	r.busy.Store(false)
}

// RegisterRange installs a registration for name, optionally cloned over
// a range of values at sub-identifier rangeSubID (1-based, matching the
// source's convention; 0 means "not a range").
//
// On success, a callback.RegisterOID event is dispatched after the spine
// has been mutated. On failure partway through a ranged registration,
// every clone installed so far (and the template) is unregistered before
// ErrRegistrationFailed is returned.
func (r *Registry) RegisterRange(
	ctx context.Context,
	label string,
	vars []VarBinding,
	width int,
	name oid.OID,
	priority int,
	rangeSubID int,
	rangeUbound uint32,
	sess *Session,
) error {
	r.enter("RegisterRange")
	defer r.leave()

	template := newRegistrationNode(label, vars, width, name, priority, sess)
	if err := r.load(template); err != nil {
		return err
	}

	if rangeSubID != 0 {
		idx := rangeSubID - 1
		for i := name[idx] + 1; i < rangeUbound; i++ {
			clone := newRegistrationNode(label, vars, width, name, priority, sess)
			clone.Start[idx] = i
			clone.End[idx] = i + 1
			if err := r.load(clone); err != nil {
				r.unregisterRangeLocked(name, priority)
				return ErrRegistrationFailed
			}
		}
	}

	if xlog.Enabled(r.logger, slog.LevelDebug) {
		r.logger.Debug("registered",
			slog.String("label", label),
			slog.String("name", name.String()),
			slog.Int("priority", priority))
	}

	if r.bus != nil {
		r.bus.Call(callback.RegisterOID, &callback.RegisterPayload{
			Name:        []uint32(name),
			Priority:    priority,
			RangeSubID:  rangeSubID,
			RangeUbound: rangeUbound,
		})
	}
	return nil
}

func newRegistrationNode(label string, vars []VarBinding, width int, name oid.OID, priority int, sess *Session) *Node {
	start := name.Clone()
	return &Node{
		Name:           name.Clone(),
		Start:          start,
		End:            name.Successor(),
		Label:          label,
		Variables:      append([]VarBinding(nil), vars...),
		VariablesWidth: width,
		Priority:       priority,
		Session:        sess,
	}
}

// load is the recursive installation algorithm described by the package
// doc: it finds where newNode's start falls relative to the existing
// spine and either splices it into virgin territory (splitting off any
// trailing overlap to recurse on) or merges/splits it against the
// existing covering node.
func (r *Registry) load(newNode *Node) error {
	if newNode == nil {
		return nil
	}

	t1 := r.find(newNode.Start, nil)

	if t1 == nil {
		// Virgin territory: t2 is the next node *with variables* at or
		// after newNode's start (this intentionally mirrors the
		// source's find_subtree_next, which skips cover-only nodes even
		// here).
		t2 := r.findNext(newNode.Start, nil)

		var overlap *Node
		if t2 != nil && newNode.End.Compare(t2.Start) > 0 {
			overlap = split(newNode, t2.Start)
		}

		if t2 != nil {
			newNode.Prev = t2.Prev
			t2.Prev = newNode
		} else {
			newNode.Prev = r.findPrevious(newNode.Start, nil)
		}

		if newNode.Prev != nil {
			newNode.Prev.Next = newNode
		} else {
			r.spine = newNode
		}
		newNode.Next = t2

		if overlap != nil {
			return r.load(overlap)
		}
		return nil
	}

	if newNode.Start.Compare(t1.Start) != 0 {
		t1 = split(t1, newNode.Start)
		if t1 == nil {
			return ErrRegistrationFailed
		}
	}

	switch newNode.End.Compare(t1.End) {
	case -1: // existing subtree extends beyond the new one: shrink it to match, then merge
		split(t1, newNode.End)
		fallthrough

	case 0: // ranges match precisely: merge into the priority chain
		var prev, next *Node
		next = t1
		for next != nil && len(next.Name) > len(newNode.Name) {
			prev, next = next, next.Children
		}
		for next != nil && len(next.Name) == len(newNode.Name) && next.Priority < newNode.Priority {
			prev, next = next, next.Children
		}
		if next != nil && len(next.Name) == len(newNode.Name) && next.Priority == newNode.Priority {
			return ErrDuplicateRegistration
		}

		if prev != nil {
			newNode.Children = next
			prev.Children = newNode
			newNode.Prev = prev.Prev
			newNode.Next = prev.Next
		} else {
			newNode.Children = next
			newNode.Prev = next.Prev
			newNode.Next = next.Next
			for p := newNode.Next; p != nil; p = p.Children {
				p.Prev = newNode
			}
			for p := newNode.Prev; p != nil; p = p.Children {
				p.Next = newNode
			}
		}

	case 1: // new subtree extends beyond the existing one: split off the tail and recurse on both halves
		tail := split(newNode, t1.End)
		if err := r.load(newNode); err != nil {
			return err
		}
		return r.load(tail)
	}

	return nil
}

// findPrevious returns the last spine node whose Start is <= name,
// scanning from hint (or from the head of the spine if hint is nil).
// Unlike FindNext, cover-only nodes are never skipped.
func (r *Registry) findPrevious(name oid.OID, hint *Node) *Node {
	start := r.spine
	if hint != nil {
		start = hint
	}
	var previous *Node
	for n := start; n != nil; n = n.Next {
		if name.Compare(n.Start) < 0 {
			return previous
		}
		previous = n
	}
	return previous
}

// find returns the spine node whose [Start, End) contains name, or nil.
func (r *Registry) find(name oid.OID, hint *Node) *Node {
	previous := r.findPrevious(name, hint)
	if previous != nil && name.Compare(previous.End) < 0 {
		return previous
	}
	return nil
}

// findNext returns the spine successor of findPrevious(name), skipping
// any cover-only nodes, matching invariant I5.
func (r *Registry) findNext(name oid.OID, hint *Node) *Node {
	previous := r.findPrevious(name, hint)
	if previous != nil {
		n := previous.Next
		for n != nil && n.IsCoverOnly() {
			n = n.Next
		}
		return n
	}
	if hint != nil && name.Compare(hint.Start) < 0 {
		return hint
	}
	return nil
}

// FindSubtree returns the node whose [Start, End) contains name, or nil.
// The returned node may be cover-only (no variables).
func (r *Registry) FindSubtree(name oid.OID) *Node {
	r.enter("FindSubtree")
	defer r.leave()
	return r.find(name, nil)
}

// FindSubtreePrevious returns the last spine node whose Start is <= name.
func (r *Registry) FindSubtreePrevious(name oid.OID) *Node {
	r.enter("FindSubtreePrevious")
	defer r.leave()
	return r.findPrevious(name, nil)
}

// FindSubtreeNext returns the next registered node after name that
// actually carries variables, skipping cover-only spine slots.
func (r *Registry) FindSubtreeNext(name oid.OID) *Node {
	r.enter("FindSubtreeNext")
	defer r.leave()
	return r.findNext(name, nil)
}

// GetSessionForOID returns the session that owns the first node at or
// after name with a non-empty variable table, or nil if there is none or
// that node is locally implemented (Session == nil).
func (r *Registry) GetSessionForOID(name oid.OID) *Session {
	r.enter("GetSessionForOID")
	defer r.leave()

	n := r.findPrevious(name, nil)
	for n != nil && len(n.Variables) == 0 {
		n = n.Next
	}
	if n == nil {
		return nil
	}
	return n.Session
}
