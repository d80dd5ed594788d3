// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package agentx gives the index allocator's master/subagent seam a
// concrete shape. The source only gestures at this split
// (USING_AGENTX_SUBAGENT_MODULE guards around register_index/
// unregister_index that call out to agentx_register_index/
// agentx_unregister_index) without supplying the transport's body — the
// AgentX wire protocol itself is out of scope. IndexBackend is the
// strategy interface the root registry façade picks an implementation
// of at bootstrap, based on its configured Role.
package agentx

import (
	"context"

	"github.com/snmpregistry/oidreg/index"
	"github.com/snmpregistry/oidreg/oid"
	"github.com/snmpregistry/oidreg/subtree"
)

// Role selects which IndexBackend implementation the root façade wires
// up, matching the source's DS_AGENT_ROLE process-wide configuration
// flag (MASTER_AGENT vs SUB_AGENT).
type Role int

const (
	RoleMaster Role = iota
	RoleSubagent
)

// IndexBackend is the seam between the index allocator and whatever
// process actually owns it: local, in the same address space, or remote,
// over an AgentX session to a master agent.
type IndexBackend interface {
	Allocate(ctx context.Context, name oid.OID, desired index.Value, flags index.Flags, session *subtree.Session) (*index.Entry, error)
	Release(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error
	Remove(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error
}
