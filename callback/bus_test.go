// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package callback

import "testing"

func TestBusDispatchOrder(t *testing.T) {
	bus := New(nil)
	var order []int

	bus.Subscribe(RegisterOID, func(any) { order = append(order, 1) })
	bus.Subscribe(RegisterOID, func(any) { order = append(order, 2) })
	bus.Subscribe(UnregisterOID, func(any) { order = append(order, 99) })

	bus.Call(RegisterOID, &RegisterPayload{Name: []uint32{1, 3, 6}})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("dispatch order = %v, want [1 2]", order)
	}
}

func TestACMPayloadWriteback(t *testing.T) {
	bus := New(nil)
	bus.Subscribe(ACMCheck, func(p any) {
		acm := p.(*ACMPayload)
		acm.Errorcode = 7
	})

	payload := &ACMPayload{Name: []uint32{1, 3, 6}}
	bus.Call(ACMCheck, payload)

	if payload.Errorcode != 7 {
		t.Fatalf("Errorcode = %d, want 7", payload.Errorcode)
	}
}

func TestNoListenersIsNoop(t *testing.T) {
	bus := New(nil)
	bus.Call(RegisterOID, &RegisterPayload{})
}
