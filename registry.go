// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"io"
	"log/slog"

	"github.com/snmpregistry/oidreg/acm"
	"github.com/snmpregistry/oidreg/agentx"
	"github.com/snmpregistry/oidreg/callback"
	"github.com/snmpregistry/oidreg/index"
	"github.com/snmpregistry/oidreg/internal/xlog"
	"github.com/snmpregistry/oidreg/oid"
	"github.com/snmpregistry/oidreg/subtree"
)

// Session is re-exported from package subtree so callers never need to
// import it directly just to hold a handle.
type Session = subtree.Session

// Node is re-exported from package subtree for the same reason, for
// callers that want to inspect FindSubtree's result.
type Node = subtree.Node

// Registry is the module's public entry point: a subtree spine, an
// index allocator, a shared callback bus and an access-control bridge,
// wired together at construction time per Config.
type Registry struct {
	tree    *subtree.Registry
	alloc   *index.Allocator
	bus     *callback.Bus
	acm     *acm.Bridge
	backend agentx.IndexBackend
	logger  *slog.Logger
}

// New constructs a Registry. The spine is empty until SetupTree is
// called.
func New(cfg Config) *Registry {
	bus := callback.New(cfg.Logger)
	alloc := index.New(bus, cfg.Logger)

	var backend agentx.IndexBackend
	if cfg.Role == RoleSubagent {
		backend = &agentx.Remote{Transport: cfg.Transport}
	} else {
		backend = &agentx.Local{Allocator: alloc}
	}

	return &Registry{
		tree:    subtree.New(bus, cfg.Logger),
		alloc:   alloc,
		bus:     bus,
		acm:     acm.New(bus, cfg.Logger),
		backend: backend,
		logger:  xlog.Component(cfg.Logger, "registry"),
	}
}

// SetupTree installs the three cover-only roots {0}, {1}, {2} that make
// the spine cover the entire OID line, matching the source's
// setup_tree. It is not idempotent: calling it twice fails the second
// time with ErrDuplicateRegistration at the first root, {0}; callers
// should call it exactly once per Registry.
func (r *Registry) SetupTree(ctx context.Context) error {
	for _, root := range []oid.OID{{0}, {1}, {2}} {
		if err := r.tree.RegisterRange(ctx, "", nil, 0, root, subtree.DefaultPriority, 0, 0, nil); err != nil {
			return err
		}
	}
	return nil
}

// RegisterMIB registers name at the default priority with no session
// (a locally-implemented module).
func (r *Registry) RegisterMIB(ctx context.Context, label string, vars []subtree.VarBinding, width int, name oid.OID) error {
	return r.RegisterMIBPriority(ctx, label, vars, width, name, subtree.DefaultPriority, nil)
}

// RegisterMIBPriority registers name at an explicit priority.
func (r *Registry) RegisterMIBPriority(ctx context.Context, label string, vars []subtree.VarBinding, width int, name oid.OID, priority int, sess *Session) error {
	return r.tree.RegisterRange(ctx, label, vars, width, name, priority, 0, 0, sess)
}

// RegisterMIBRange registers name with rangeSubID/rangeUbound cloning,
// as described in subtree.Registry.RegisterRange.
func (r *Registry) RegisterMIBRange(ctx context.Context, label string, vars []subtree.VarBinding, width int, name oid.OID, priority int, rangeSubID int, rangeUbound uint32, sess *Session) error {
	return r.tree.RegisterRange(ctx, label, vars, width, name, priority, rangeSubID, rangeUbound, sess)
}

// UnregisterMIB removes name's default-priority registration.
func (r *Registry) UnregisterMIB(ctx context.Context, name oid.OID) error {
	return r.UnregisterMIBPriority(ctx, name, subtree.DefaultPriority)
}

// UnregisterMIBPriority removes name's registration at priority.
func (r *Registry) UnregisterMIBPriority(ctx context.Context, name oid.OID, priority int) error {
	return r.tree.Unregister(ctx, name, priority, 0, 0)
}

// UnregisterMIBRange removes a ranged registration installed by
// RegisterMIBRange.
func (r *Registry) UnregisterMIBRange(ctx context.Context, name oid.OID, priority int, rangeSubID int, rangeUbound uint32) error {
	return r.tree.Unregister(ctx, name, priority, rangeSubID, rangeUbound)
}

// UnregisterMIBsBySession evicts every registration owned by sess.
func (r *Registry) UnregisterMIBsBySession(ctx context.Context, sess *Session) {
	r.tree.UnregisterBySession(ctx, sess)
}

// FindSubtree returns the node covering name, or nil.
func (r *Registry) FindSubtree(name oid.OID) *Node { return r.tree.FindSubtree(name) }

// FindSubtreeNext returns the next node with variables after name.
func (r *Registry) FindSubtreeNext(name oid.OID) *Node { return r.tree.FindSubtreeNext(name) }

// FindSubtreePrevious returns the last spine node whose Start is <= name.
func (r *Registry) FindSubtreePrevious(name oid.OID) *Node { return r.tree.FindSubtreePrevious(name) }

// GetSessionForOID returns the session owning the first node at or
// after name with variables, or nil.
func (r *Registry) GetSessionForOID(name oid.OID) *Session { return r.tree.GetSessionForOID(name) }

// RegisterIndex allocates an index value under name, routed through the
// configured IndexBackend (local or AgentX remote).
func (r *Registry) RegisterIndex(ctx context.Context, name oid.OID, desired index.Value, flags index.Flags, sess *Session) (*index.Entry, error) {
	return r.backend.Allocate(ctx, name, desired, flags, sess)
}

// ReleaseIndex releases (but remembers) an allocated index value.
func (r *Registry) ReleaseIndex(ctx context.Context, name oid.OID, value index.Value, sess *Session) error {
	return r.backend.Release(ctx, name, value, sess)
}

// RemoveIndex physically unlinks an allocated index value.
func (r *Registry) RemoveIndex(ctx context.Context, name oid.OID, value index.Value, sess *Session) error {
	return r.backend.Remove(ctx, name, value, sess)
}

// InAView reports whether name is visible to the requester described by
// pdu for a value of type typ.
func (r *Registry) InAView(ctx context.Context, name oid.OID, pdu acm.PDU, typ acm.Type) bool {
	return r.acm.InAView(ctx, name, pdu, typ)
}

// DumpRegistry returns a diagnostic snapshot of every spine slot.
func (r *Registry) DumpRegistry() []subtree.SlotDump { return r.tree.Dump() }

// WriteDumpRegistry renders DumpRegistry's output in the source's
// dump_registry text format.
func (r *Registry) WriteDumpRegistry(w io.Writer) error { return r.tree.WriteDump(w) }
