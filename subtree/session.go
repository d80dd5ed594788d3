// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

// Session identifies the owner of a registration: either a locally
// implemented MIB module (Session == nil) or a subagent connection.
//
// A Session is owned by the caller; the registry only ever holds
// non-owning references to it. Session teardown must precede or coincide
// with a call to (*Registry).UnregisterBySession.
type Session struct {
	ID string

	// IsSubsession marks ss as a subagent's subsession handle rather than
	// its main session. UnregisterBySession treats the two differently:
	// tearing down a subsession evicts registrations owned by that exact
	// subsession; tearing down a main session evicts registrations whose
	// subsession field points back at it.
	IsSubsession bool

	// Subsession, on a session that owns registrations, points at the
	// main session it belongs to; UnregisterBySession of that main
	// session evicts its registrations. Mirrors the source's
	// session->subsession field.
	Subsession *Session
}
