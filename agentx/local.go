// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package agentx

import (
	"context"

	"github.com/snmpregistry/oidreg/index"
	"github.com/snmpregistry/oidreg/oid"
	"github.com/snmpregistry/oidreg/subtree"
)

// Local implements IndexBackend by calling straight through to an
// in-process *index.Allocator. This is the RoleMaster path: the master
// agent owns the allocator directly and every request is a plain
// function call.
type Local struct {
	Allocator *index.Allocator
}

var _ IndexBackend = (*Local)(nil)

func (l *Local) Allocate(ctx context.Context, name oid.OID, desired index.Value, flags index.Flags, session *subtree.Session) (*index.Entry, error) {
	return l.Allocator.Allocate(ctx, name, desired, flags, session)
}

func (l *Local) Release(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error {
	return l.Allocator.Release(ctx, name, value, session)
}

func (l *Local) Remove(ctx context.Context, name oid.OID, value index.Value, session *subtree.Session) error {
	return l.Allocator.Remove(ctx, name, value, session)
}
