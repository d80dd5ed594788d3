// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import (
	"context"
	"log/slog"

	"github.com/snmpregistry/oidreg/callback"
	"github.com/snmpregistry/oidreg/internal/xlog"
	"github.com/snmpregistry/oidreg/oid"
)

// Unregister removes the (name, priority) registration, and then unwinds
// any splits RegisterRange's range-cloning or contiguous splitting
// installed: it walks forward along the spine removing a matching
// (name, priority) entry from each following slot, stopping at the first
// slot that has none.
//
// This stopping rule is inherited as-is from the source: if an unrelated
// registration happened to split the spine somewhere in the middle of
// this range after it was installed, the scan can stop early and leave a
// tail fragment of the original range still registered. Replicated here
// rather than "fixed", since fixing it would change which registrations
// survive a given sequence of calls.
func (r *Registry) Unregister(ctx context.Context, name oid.OID, priority int, rangeSubID int, rangeUbound uint32) error {
	r.enter("Unregister")
	defer r.leave()

	if err := r.unregisterLocked(name, priority); err != nil {
		return err
	}

	if r.bus != nil {
		r.bus.Call(callback.UnregisterOID, &callback.RegisterPayload{
			Name:        []uint32(name),
			Priority:    priority,
			RangeSubID:  rangeSubID,
			RangeUbound: rangeUbound,
		})
	}
	return nil
}

func (r *Registry) unregisterRangeLocked(name oid.OID, priority int) {
	_ = r.unregisterLocked(name, priority)
}

func (r *Registry) unregisterLocked(name oid.OID, priority int) error {
	slot := r.find(name, nil)
	if slot == nil {
		return ErrNoSuchRegistration
	}

	var prev, child *Node
	for child = slot; child != nil; prev, child = child, child.Children {
		if child.Name.Equal(name) && child.Priority == priority {
			break
		}
	}
	if child == nil {
		return ErrNoSuchRegistration
	}

	unload(child, prev)
	anchor := child

	for list := anchor.Next; list != nil; list = list.Next {
		var p2, c2 *Node
		for c2 = list; c2 != nil; p2, c2 = c2, c2.Children {
			if c2.Name.Equal(name) && c2.Priority == priority {
				unload(c2, p2)
				break
			}
		}
		if c2 == nil {
			break
		}
	}

	if xlog.Enabled(r.logger, slog.LevelDebug) {
		r.logger.Debug("unregistered", slog.String("name", name.String()), slog.Int("priority", priority))
	}
	return nil
}

// unload splices one entry out of its slot's priority chain. If prev is
// non-nil, the entry is an interior link and prev.Children is simply
// repointed past it. Otherwise the entry is the head of the chain, so
// the spine itself (Prev/Next, at every depth reachable through
// Children) must be repointed: to the entry's own Children if it has
// any (promoting the next-lower-priority registration into its place),
// or past the slot entirely if it was the only registration there.
func unload(entry, prev *Node) {
	if prev != nil {
		prev.Children = entry.Children
		return
	}

	if entry.Children == nil {
		for p := entry.Prev; p != nil; p = p.Children {
			p.Next = entry.Next
		}
		for p := entry.Next; p != nil; p = p.Children {
			p.Prev = entry.Prev
		}
		return
	}

	for p := entry.Prev; p != nil; p = p.Children {
		p.Next = entry.Children
	}
	for p := entry.Next; p != nil; p = p.Children {
		p.Prev = entry.Children
	}
}

// UnregisterBySession evicts every registration owned by sess: if sess is
// itself a subsession handle, entries whose Session == sess are removed;
// if sess is a main session, entries whose Session.Subsession == sess are
// removed (mirroring the source's subsession/main-session distinction).
// Traversal tolerates mutation: eviction during the walk never skips or
// revisits a slot.
func (r *Registry) UnregisterBySession(ctx context.Context, sess *Session) {
	r.enter("UnregisterBySession")
	defer r.leave()

	for list := r.spine; list != nil; {
		next := list.Next
		var prev *Node
		for child := list; child != nil; {
			nextChild := child.Children
			if ownedBy(child.Session, sess) {
				unload(child, prev)
			} else {
				prev = child
			}
			child = nextChild
		}
		list = next
	}
}

func ownedBy(owner, sess *Session) bool {
	if sess == nil {
		return false
	}
	if sess.IsSubsession {
		return owner == sess
	}
	return owner != nil && owner.Subsession == sess
}
