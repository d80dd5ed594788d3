// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package acm

import (
	"context"
	"testing"

	"github.com/snmpregistry/oidreg/callback"
	"github.com/snmpregistry/oidreg/oid"
)

func TestAlwaysInViewShortCircuits(t *testing.T) {
	b := New(nil, nil)
	if !b.InAView(context.Background(), oid.OID{1, 3, 6}, PDU{Flags: FlagAlwaysInView}, Other) {
		t.Fatal("expected always-in-view to short-circuit true")
	}
}

func TestVersionOneRejectsCounter64(t *testing.T) {
	b := New(nil, nil)
	if b.InAView(context.Background(), oid.OID{1, 3, 6}, PDU{Version: versionOne}, Counter64) {
		t.Fatal("expected v1 Counter64 to be rejected")
	}
}

func TestBusDecidesOutcome(t *testing.T) {
	bus := callback.New(nil)
	bus.Subscribe(callback.ACMCheck, func(payload any) {
		p := payload.(*callback.ACMPayload)
		p.Errorcode = 1
	})
	b := New(bus, nil)
	if b.InAView(context.Background(), oid.OID{1, 3, 6}, PDU{}, Other) {
		t.Fatal("expected bus veto to deny view")
	}
}

func TestNoBusDefaultsToInView(t *testing.T) {
	b := New(nil, nil)
	if !b.InAView(context.Background(), oid.OID{1, 3, 6}, PDU{}, Other) {
		t.Fatal("expected nil bus to default to in-view")
	}
}
