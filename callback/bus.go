// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package callback implements the synchronous event bus that the subtree
// registry and the access-control bridge use to notify listeners of
// register/unregister events and to solicit a view-based access decision
// on every lookup.
//
// Dispatch is synchronous and runs listeners in subscription order.
// Payloads are passed by pointer so a listener can write back into them —
// this is how an ACM_CHECK listener rejects a lookup by setting
// ACMPayload.Errorcode.
package callback

import (
	"context"
	"log/slog"

	"github.com/snmpregistry/oidreg/internal/xlog"
)

// Kind identifies an event kind. The agent embedding this registry may
// define additional kinds beyond the ones this package reserves; Kind is
// just an int, not a closed enum.
type Kind int

const (
	// RegisterOID fires after a successful RegisterRange, carrying
	// *RegisterPayload. index.Allocator also fires it after each
	// successful Allocate, carrying the allocated *index.Entry.
	RegisterOID Kind = iota
	// UnregisterOID fires after a successful Unregister, carrying
	// *RegisterPayload. index.Allocator also fires it after each
	// successful Release or Remove, carrying the affected *index.Entry.
	UnregisterOID
	// ACMCheck fires on every lookup that requests an access check,
	// carrying *ACMPayload.
	ACMCheck
)

func (k Kind) String() string {
	switch k {
	case RegisterOID:
		return "RegisterOID"
	case UnregisterOID:
		return "UnregisterOID"
	case ACMCheck:
		return "ACMCheck"
	default:
		return "Kind(?)"
	}
}

// Listener is invoked synchronously with the event payload. It must not
// call back into the registry that is dispatching the event; nested
// mutation from inside a callback is undefined behavior (subtree.Registry's
// reentrancy guard panics on such a call; see its doc comment).
type Listener func(payload any)

// Bus is a fixed-kind, in-order, synchronous event dispatcher. The zero
// value is ready to use.
type Bus struct {
	logger    *slog.Logger
	listeners map[Kind][]Listener
}

// New returns a Bus that logs dispatch activity through logger (nil is
// fine; logging is then a no-op beyond slog.Default's own discard rules).
func New(logger *slog.Logger) *Bus {
	return &Bus{
		logger:    xlog.Component(logger, "callback"),
		listeners: make(map[Kind][]Listener),
	}
}

// Subscribe registers fn to be invoked whenever an event of the given
// kind is dispatched, after any listeners already subscribed to that
// kind.
func (b *Bus) Subscribe(kind Kind, fn Listener) {
	if b.listeners == nil {
		b.listeners = make(map[Kind][]Listener)
	}
	b.listeners[kind] = append(b.listeners[kind], fn)
}

// Call dispatches payload to every listener subscribed to kind, in
// subscription order. Listeners run to completion synchronously before
// Call returns.
func (b *Bus) Call(kind Kind, payload any) {
	ls := b.listeners[kind]
	if xlog.Enabled(b.logger, xlog.LevelTrace) {
		b.logger.Log(context.Background(), xlog.LevelTrace, "dispatching callback",
			slog.String("kind", kind.String()),
			slog.Int("listeners", len(ls)))
	}
	for _, fn := range ls {
		fn(payload)
	}
}

// RegisterPayload is the payload for RegisterOID and UnregisterOID.
type RegisterPayload struct {
	Name        []uint32
	Priority    int
	RangeSubID  int
	RangeUbound uint32
}

// ACMPayload is the payload for ACMCheck. Errorcode follows the SNMP
// convention: 0 means "allowed"; any other value is a denial reason code
// that the ACM listener is free to choose (the core registry only tests
// it against zero).
type ACMPayload struct {
	Name      []uint32
	PDU       any
	ValueType int
	Errorcode int
}
