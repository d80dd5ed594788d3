// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package acm bridges the registry to an access-control decision,
// mirroring the source's in_a_view check: a short-circuit for
// "always in view" configurations, a version-1 Counter64 rejection,
// and otherwise a round trip through the callback bus so that whatever
// view/ACM engine is wired in gets the final word.
package acm

import (
	"context"
	"log/slog"

	"github.com/snmpregistry/oidreg/callback"
	"github.com/snmpregistry/oidreg/internal/xlog"
	"github.com/snmpregistry/oidreg/oid"
)

// Type is the ASN.1 type tag of the value being checked. Only the one
// value in_a_view cares about (Counter64) is named; others pass as Other.
type Type int

const (
	Other Type = iota
	Counter64
)

// PDU is the small slice of a request's shape in_a_view needs: its SNMP
// protocol version and its flags word. A full wire-format PDU type is
// out of scope here; callers adapt their real PDU into this shape.
type PDU struct {
	Version int
	Flags   uint32
}

// FlagAlwaysInView mirrors the source's UCD_SNMP_MIB_OID_EXISTS-adjacent
// "always in view" bypass flag: when set, InAView short-circuits to true
// without consulting the callback bus at all.
const FlagAlwaysInView uint32 = 1 << 0

// versionOne is the SNMPv1 protocol version number, the only version
// under which Counter64 values are unconditionally excluded from view
// (SNMPv1 has no 64-bit counter type).
const versionOne = 0

// Bridge evaluates InAView by dispatching a callback.ACMCheck event and
// reading back its Errorcode. The zero value has a nil bus, so InAView
// returns true for every request the SNMPv1 Counter64 check does not
// reject (nothing else to check against).
type Bridge struct {
	bus    *callback.Bus
	logger *slog.Logger
}

// New returns a Bridge. bus may be nil (then only the short-circuit
// checks can deny a request); logger may be nil.
func New(bus *callback.Bus, logger *slog.Logger) *Bridge {
	return &Bridge{bus: bus, logger: xlog.Component(logger, "acm")}
}

// InAView reports whether name is visible to the requester described by
// pdu, for a value of the given type.
func (b *Bridge) InAView(ctx context.Context, name oid.OID, pdu PDU, typ Type) bool {
	if pdu.Flags&FlagAlwaysInView != 0 {
		return true
	}
	if pdu.Version == versionOne && typ == Counter64 {
		return false
	}
	if b.bus == nil {
		return true
	}

	payload := &callback.ACMPayload{
		Name:      []uint32(name),
		PDU:       pdu,
		ValueType: int(typ),
		Errorcode: 0,
	}
	b.bus.Call(callback.ACMCheck, payload)

	if xlog.Enabled(b.logger, xlog.LevelTrace) {
		b.logger.Log(ctx, xlog.LevelTrace, "acm check",
			slog.String("name", name.String()),
			slog.Int("errorcode", payload.Errorcode))
	}
	return payload.Errorcode == 0
}
