// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package registry is the public façade over oidreg's OID-space
// registry: it wires together the subtree spine, the index allocator,
// the callback bus and the access-control bridge behind the operation
// set an SNMP agent's dispatcher actually calls, so that no caller needs
// to construct or thread those pieces itself.
//
// A Registry is not safe for concurrent use, for the same reason
// package subtree's Registry is not: the model is single-threaded
// cooperative scheduling, not externally-synchronized shared state.
package registry
