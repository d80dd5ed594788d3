// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package agentx

import (
	"context"

	"github.com/snmpregistry/oidreg/index"
	"github.com/snmpregistry/oidreg/oid"
	"github.com/snmpregistry/oidreg/subtree"
)

// Transport is the RoleSubagent seam: forwarding an index request to the
// master agent over an AgentX session. The wire protocol itself is out
// of scope for this module; Transport lets Remote be exercised against a
// fake in tests without pulling in a real AgentX client.
type Transport interface {
	IndexAllocate(ctx context.Context, name oid.OID, desired index.Value, flags index.Flags, session *subtree.Session) (*index.Entry, error)
	IndexRelease(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error
	IndexRemove(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error
}

// Remote implements IndexBackend for a subagent process: every call is
// forwarded to the master agent over Transport, matching the source's
// agentx_register_index/agentx_unregister_index split.
type Remote struct {
	Transport Transport
}

var _ IndexBackend = (*Remote)(nil)

func (r *Remote) Allocate(ctx context.Context, name oid.OID, desired index.Value, flags index.Flags, session *subtree.Session) (*index.Entry, error) {
	return r.Transport.IndexAllocate(ctx, name, desired, flags, session)
}

func (r *Remote) Release(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error {
	return r.Transport.IndexRelease(ctx, name, value, session)
}

func (r *Remote) Remove(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error {
	return r.Transport.IndexRemove(ctx, name, value, session)
}
