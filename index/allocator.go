// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package index

import (
	"context"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/snmpregistry/oidreg/callback"
	"github.com/snmpregistry/oidreg/internal/xlog"
	"github.com/snmpregistry/oidreg/oid"
	"github.com/snmpregistry/oidreg/subtree"
)

// Flags selects Allocate's behavior, matching the source's
// ALLOCATE_THIS_INDEX / ALLOCATE_ANY_INDEX / ALLOCATE_NEW_INDEX trio.
type Flags int

const (
	// AllocateThisIndex requires the exact value in Allocate's desired
	// argument, failing with ErrDuplicateValue if it is already live.
	AllocateThisIndex Flags = iota
	// AllocateAnyIndex generates the next value via the type's
	// successor rule, reclaiming a released-but-remembered tail entry
	// in preference to minting a new one.
	AllocateAnyIndex
	// AllocateNewIndex is like AllocateAnyIndex but never reclaims a
	// released-but-remembered entry, even the tail.
	AllocateNewIndex
)

// Entry is one allocated (or released-but-remembered) index value. A
// nil Session marks a released-but-remembered entry: unlinked from no
// one, but still occupying its value so a future AllocateNewIndex call
// does not reissue it.
type Entry struct {
	Name    oid.OID
	Value   Value
	Session *subtree.Session

	next *Entry
}

type oidGroup struct {
	name oid.OID
	kind Kind
	head *Entry
	next *oidGroup

	// ints tracks every INTEGER value ever allocated under this OID
	// (live, released-but-remembered, or since removed: bits are never
	// cleared), for O(1) occupancy testing through IntegerOccupancy.
	// Allocate does not consult it; it walks the value chain. Populated
	// only for KindInteger groups with non-negative values; other kinds
	// leave it nil.
	ints *bitset.BitSet
}

// IntegerOccupancy returns a clone of the bitmap of every value ever
// allocated under an INTEGER-kinded name, or nil if name has no such
// group. Exposed purely for diagnostics and tests.
func (a *Allocator) IntegerOccupancy(name oid.OID) *bitset.BitSet {
	_, group := a.findGroup(name)
	if group == nil || group.ints == nil {
		return nil
	}
	return group.ints.Clone()
}

func (g *oidGroup) markReserved(v Value) {
	if g.kind != KindInteger || v.Int < 0 {
		return
	}
	if g.ints == nil {
		g.ints = bitset.New(0)
	}
	g.ints.Set(uint(v.Int))
}

// Allocator is the two-level index-value registry described in the
// package doc: an outer list of OIDs, each the head of an inner,
// value-ordered chain of Entry values. The zero value is ready to use.
type Allocator struct {
	head   *oidGroup
	bus    *callback.Bus
	logger *slog.Logger
}

// New returns an empty Allocator. bus and logger may be nil.
func New(bus *callback.Bus, logger *slog.Logger) *Allocator {
	return &Allocator{bus: bus, logger: xlog.Component(logger, "index")}
}

func (a *Allocator) findGroup(name oid.OID) (prev, group *oidGroup) {
	for g := a.head; g != nil; prev, g = g, g.next {
		switch name.Compare(g.name) {
		case 0:
			return prev, g
		case -1:
			return prev, nil
		}
	}
	return prev, nil
}

// Allocate assigns a value to name under flags, as described on the
// Flags constants. desired carries the Kind always, and the exact value to
// use when flags is AllocateThisIndex.
func (a *Allocator) Allocate(ctx context.Context, name oid.OID, desired Value, flags Flags, session *subtree.Session) (*Entry, error) {
	prevGroup, group := a.findGroup(name)
	if group != nil && group.kind != desired.Kind {
		return nil, ErrWrongType
	}

	var entry *Entry
	switch flags {
	case AllocateThisIndex:
		entry = a.allocateThis(prevGroup, group, name, desired, session)
	default:
		entry = a.allocateNext(prevGroup, group, name, desired.Kind, flags, session)
	}
	if entry == nil {
		return nil, ErrDuplicateValue
	}

	if xlog.Enabled(a.logger, slog.LevelDebug) {
		a.logger.Debug("index allocated",
			slog.String("name", name.String()),
			slog.String("value", entry.Value.String()))
	}
	if a.bus != nil {
		a.bus.Call(callback.RegisterOID, entry)
	}
	return entry, nil
}

func (a *Allocator) allocateThis(prevGroup, group *oidGroup, name oid.OID, desired Value, session *subtree.Session) *Entry {
	if group == nil {
		group = &oidGroup{name: name.Clone(), kind: desired.Kind}
		a.insertGroup(prevGroup, group)
	}

	var prevEntry *Entry
	for e := group.head; e != nil; prevEntry, e = e, e.next {
		if e.Value.Equal(desired) {
			if e.Session != nil {
				return nil
			}
			e.Session = session
			return e
		}
		if desired.Less(e.Value) {
			break
		}
	}

	entry := &Entry{Name: name.Clone(), Value: desired, Session: session}
	insertEntry(group, prevEntry, entry)
	group.markReserved(desired)
	return entry
}

func (a *Allocator) allocateNext(prevGroup, group *oidGroup, name oid.OID, kind Kind, flags Flags, session *subtree.Session) *Entry {
	if group == nil {
		group = &oidGroup{name: name.Clone(), kind: kind}
		a.insertGroup(prevGroup, group)
	}

	var tail *Entry
	for e := group.head; e != nil; e = e.next {
		tail = e
	}

	if flags == AllocateAnyIndex && tail != nil && tail.Session == nil {
		tail.Session = session
		return tail
	}

	var prevValue *Value
	if tail != nil {
		v := tail.Value
		prevValue = &v
	}
	next := successorFuncs[kind](prevValue, name)

	entry := &Entry{Name: name.Clone(), Value: next, Session: session}
	insertEntry(group, tail, entry)
	group.markReserved(next)
	return entry
}

func (a *Allocator) insertGroup(prev, group *oidGroup) {
	if prev != nil {
		group.next = prev.next
		prev.next = group
		return
	}
	group.next = a.head
	a.head = group
}

func insertEntry(group *oidGroup, prev, entry *Entry) {
	if prev != nil {
		entry.next = prev.next
		prev.next = entry
		return
	}
	entry.next = group.head
	group.head = entry
}

// Release marks the entry matching (name, value) as released-but-
// remembered: its session is cleared but it stays linked, so a future
// AllocateNewIndex never reissues the value. Fails with
// ErrWrongSession if session does not own it.
func (a *Allocator) Release(ctx context.Context, name oid.OID, value Value, session *subtree.Session) error {
	return a.unregister(name, value, session, true)
}

// Remove physically unlinks the entry matching (name, value), freeing
// its value for reuse. Fails with ErrWrongSession if session does not
// own it.
func (a *Allocator) Remove(ctx context.Context, name oid.OID, value Value, session *subtree.Session) error {
	return a.unregister(name, value, session, false)
}

func (a *Allocator) unregister(name oid.OID, value Value, session *subtree.Session, remember bool) error {
	prevGroup, group := a.findGroup(name)
	if group == nil {
		return ErrNotAllocated
	}

	var prevEntry *Entry
	var entry *Entry
	for e := group.head; e != nil; prevEntry, e = e, e.next {
		if e.Value.Equal(value) {
			entry = e
			break
		}
	}
	if entry == nil {
		return ErrNotAllocated
	}
	if entry.Session != session {
		return ErrWrongSession
	}

	if remember {
		entry.Session = nil
		if a.bus != nil {
			a.bus.Call(callback.UnregisterOID, entry)
		}
		return nil
	}

	if prevEntry != nil {
		prevEntry.next = entry.next
	} else {
		group.head = entry.next
		if group.head == nil {
			a.removeGroup(prevGroup, group)
		}
	}
	if a.bus != nil {
		a.bus.Call(callback.UnregisterOID, entry)
	}
	return nil
}

func (a *Allocator) removeGroup(prev, group *oidGroup) {
	if prev != nil {
		prev.next = group.next
		return
	}
	a.head = group.next
}
