// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import (
	"context"
	"reflect"
	"testing"

	"github.com/snmpregistry/oidreg/oid"
)

func bootstrap(t *testing.T) *Registry {
	t.Helper()
	r := New(nil, nil)
	for _, root := range []oid.OID{{0}, {1}, {2}} {
		if err := r.RegisterRange(context.Background(), "", nil, 0, root, DefaultPriority, 0, 0, nil); err != nil {
			t.Fatalf("bootstrap %v: %v", root, err)
		}
	}
	return r
}

// S1: after setup_tree, find({1,3,6,1}) returns the {1} cover-only node;
// find_next({1,3,6,1}) returns none; session_for_oid({1,3}) returns none.
func TestBootstrapRoots(t *testing.T) {
	r := bootstrap(t)

	got := r.FindSubtree(oid.OID{1, 3, 6, 1})
	if got == nil || !got.Start.Equal(oid.OID{1}) || !got.IsCoverOnly() {
		t.Fatalf("FindSubtree({1,3,6,1}) = %v, want cover-only node rooted at {1}", got)
	}

	if next := r.FindSubtreeNext(oid.OID{1, 3, 6, 1}); next != nil {
		t.Fatalf("FindSubtreeNext({1,3,6,1}) = %v, want nil", next)
	}

	if sess := r.GetSessionForOID(oid.OID{1, 3}); sess != nil {
		t.Fatalf("GetSessionForOID({1,3}) = %v, want nil", sess)
	}
}

// S2: register module "A" then a nested, shorter-range module "B" with
// equal priority; the spine splits so that find() resolves to B at the
// top of the chain with A beneath it.
func TestRegisterNestedOverlap(t *testing.T) {
	r := bootstrap(t)
	ctx := context.Background()

	oidA := oid.OID{1, 3, 6, 1, 2, 1, 1}
	oidB := oid.OID{1, 3, 6, 1, 2, 1, 1, 3}

	if err := r.RegisterRange(ctx, "A", []VarBinding{{}, {}}, 1, oidA, 10, 0, 0, nil); err != nil {
		t.Fatalf("register A: %v", err)
	}
	if err := r.RegisterRange(ctx, "B", []VarBinding{{}}, 1, oidB, 10, 0, 0, nil); err != nil {
		t.Fatalf("register B: %v", err)
	}

	top := r.FindSubtree(oid.OID{1, 3, 6, 1, 2, 1, 1, 3, 0})
	if top == nil || top.Label != "B" {
		t.Fatalf("FindSubtree at B's point = %v, want label B", top)
	}
	if top.Children == nil || top.Children.Label != "A" {
		t.Fatalf("expected A beneath B in the chain, got %+v", top.Children)
	}
	if !top.Start.Equal(oidB) {
		t.Fatalf("slot start = %v, want %v", top.Start, oidB)
	}
	if !top.End.Equal(oidB.Successor()) {
		t.Fatalf("slot end = %v, want %v", top.End, oidB.Successor())
	}

	// The remainder of A's original range, before oidB, holds A above the
	// cover-only {1} root it was merged into, and nothing else.
	before := r.FindSubtree(oid.OID{1, 3, 6, 1, 2, 1, 1, 0})
	if before == nil || before.Label != "A" || before.Children == nil ||
		!before.Children.Name.Equal(oid.OID{1}) || before.Children.Children != nil {
		t.Fatalf("FindSubtree before B = %+v, want A over the {1} root only", before)
	}

	// And the remainder of A's range after B is again A over the {1} root.
	after := r.FindSubtree(oidB.Successor())
	if after == nil || after.Label != "A" || after.Children == nil ||
		!after.Children.Name.Equal(oid.OID{1}) || after.Children.Children != nil {
		t.Fatalf("FindSubtree after B = %+v, want A over the {1} root only", after)
	}
}

// S3: registering the same (name, priority) twice fails with
// ErrDuplicateRegistration, and the first registration is unaffected.
func TestDuplicateRegistration(t *testing.T) {
	r := bootstrap(t)
	ctx := context.Background()
	name := oid.OID{1, 3, 6, 1, 99}

	if err := r.RegisterRange(ctx, "X", []VarBinding{{}}, 1, name, 5, 0, 0, nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.RegisterRange(ctx, "X2", []VarBinding{{}}, 1, name, 5, 0, 0, nil); err != ErrDuplicateRegistration {
		t.Fatalf("second register: err = %v, want ErrDuplicateRegistration", err)
	}

	got := r.FindSubtree(name)
	if got == nil || got.Label != "X" || len(got.Variables) != 1 {
		t.Fatalf("first registration affected: %+v", got)
	}
}

// Registering and then unregistering the same range is a no-op on the
// set of live registrations.
func TestRegisterUnregisterRoundTrip(t *testing.T) {
	r := bootstrap(t)
	ctx := context.Background()
	name := oid.OID{1, 3, 6, 1, 4, 1, 12345}

	before := r.Dump()

	if err := r.RegisterRange(ctx, "round-trip", []VarBinding{{}}, 1, name, DefaultPriority, 0, 0, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Unregister(ctx, name, DefaultPriority, 0, 0); err != nil {
		t.Fatalf("unregister: %v", err)
	}

	after := r.Dump()
	if len(before) != len(after) {
		t.Fatalf("dump length changed: before=%d after=%d", len(before), len(after))
	}
	for i := range before {
		if !reflect.DeepEqual(before[i], after[i]) {
			t.Fatalf("slot %d changed: before=%+v after=%+v", i, before[i], after[i])
		}
	}
}

func TestRegisterRangeClonesAndUnregister(t *testing.T) {
	r := bootstrap(t)
	ctx := context.Background()
	base := oid.OID{1, 3, 6, 1, 4, 1, 9999, 1}

	if err := r.RegisterRange(ctx, "ranged", []VarBinding{{}}, 1, base, DefaultPriority, 8, 4, nil); err != nil {
		t.Fatalf("register range: %v", err)
	}

	for _, idx := range []uint32{1, 2, 3} {
		name := oid.OID{1, 3, 6, 1, 4, 1, 9999, idx}
		got := r.FindSubtree(name)
		if got == nil || got.Label != "ranged" {
			t.Fatalf("FindSubtree(%v) = %v, want ranged", name, got)
		}
	}

	if err := r.Unregister(ctx, base, DefaultPriority, 8, 4); err != nil {
		t.Fatalf("unregister range: %v", err)
	}
	for _, idx := range []uint32{1, 2, 3} {
		name := oid.OID{1, 3, 6, 1, 4, 1, 9999, idx}
		if got := r.FindSubtreeNext(name); got != nil && got.Label == "ranged" {
			t.Fatalf("FindSubtreeNext(%v) still finds ranged registration", name)
		}
	}
}

func TestUnregisterBySession(t *testing.T) {
	r := bootstrap(t)
	ctx := context.Background()
	sess := &Session{ID: "sub1", IsSubsession: true}

	name := oid.OID{1, 3, 6, 1, 4, 1, 555}
	if err := r.RegisterRange(ctx, "sub", []VarBinding{{}}, 1, name, DefaultPriority, 0, 0, sess); err != nil {
		t.Fatalf("register: %v", err)
	}

	r.UnregisterBySession(ctx, sess)

	if got := r.GetSessionForOID(name); got == sess {
		t.Fatalf("session registration survived UnregisterBySession")
	}
}
