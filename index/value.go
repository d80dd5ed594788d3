// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package index implements the secondary index allocator: a two-level
// OID-to-value-list structure used by table-row implementations to mint
// unique INTEGER, OCTET-STRING or OBJECT-ID index values beneath a named
// OID, mirroring the source's register_index/unregister_index pair.
package index

import (
	"bytes"
	"strconv"

	"github.com/snmpregistry/oidreg/oid"
)

// Kind distinguishes the three value types an Allocator supports. A given
// OID's value list is homogeneous: every entry under the same name has
// the same Kind.
type Kind int

const (
	KindInteger Kind = iota
	KindOctetString
	KindObjectID
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindOctetString:
		return "OCTET-STRING"
	case KindObjectID:
		return "OBJECT-ID"
	default:
		return "unknown"
	}
}

// Value is a tagged variant holding one typed index value. Only the
// field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int32
	Bytes []byte
	Oid   oid.OID
}

// Integer returns an INTEGER-kinded Value.
func Integer(v int32) Value { return Value{Kind: KindInteger, Int: v} }

// OctetString returns an OCTET-STRING-kinded Value.
func OctetString(s string) Value { return Value{Kind: KindOctetString, Bytes: []byte(s)} }

// ObjectID returns an OBJECT-ID-kinded Value.
func ObjectID(o oid.OID) Value { return Value{Kind: KindObjectID, Oid: o.Clone()} }

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.Itoa(int(v.Int))
	case KindOctetString:
		return string(v.Bytes)
	case KindObjectID:
		return v.Oid.String()
	default:
		return "?"
	}
}

// Equal reports whether v and other hold the same kind and value.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInteger:
		return v.Int == other.Int
	case KindOctetString:
		return bytes.Equal(v.Bytes, other.Bytes)
	case KindObjectID:
		return v.Oid.Equal(other.Oid)
	default:
		return false
	}
}

// Less reports whether v sorts before other. Both must share Kind; the
// allocator never compares across kinds.
func (v Value) Less(other Value) bool {
	switch v.Kind {
	case KindInteger:
		return v.Int < other.Int
	case KindOctetString:
		return bytes.Compare(v.Bytes, other.Bytes) < 0
	case KindObjectID:
		return v.Oid.Compare(other.Oid) < 0
	default:
		return false
	}
}

// wordsize is the width, in bytes, of one OBJECT-ID sub-identifier for
// the purposes of the (name_len+1)*wordsize<=40 initial-value rule and
// the fixed-width successor below; it mirrors sizeof(oid) on the 32-bit
// builds the source's index allocator was written against.
const wordsize = 4

// successorFuncs is the table-driven per-Kind successor rule: given the
// previously-allocated value in a chain (nil if there is none yet) and
// the owning OID (consulted only by the OBJECT-ID rule's no-predecessor
// case), it returns the next value to allocate under
// ALLOCATE_ANY_INDEX/ALLOCATE_NEW_INDEX. Adding a new Kind means adding
// an entry here, not touching Allocate's control flow.
var successorFuncs = map[Kind]func(prev *Value, name oid.OID) Value{
	KindInteger:     integerSuccessor,
	KindOctetString: octetStringSuccessor,
	KindObjectID:    objectIDSuccessor,
}

func integerSuccessor(prev *Value, _ oid.OID) Value {
	if prev == nil {
		return Integer(1)
	}
	return Integer(prev.Int + 1)
}

// octetStringSuccessor implements the a..z lexicographic successor: the
// trailing character is bumped; a run of trailing 'z's rolls over to
// 'a' and carries left; a carry past the leftmost character grows the
// string by one 'a' on the left rather than overflowing.
func octetStringSuccessor(prev *Value, _ oid.OID) Value {
	if prev == nil {
		return OctetString("aaaa")
	}
	b := append([]byte(nil), prev.Bytes...)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'z' {
			b[i]++
			return Value{Kind: KindOctetString, Bytes: b}
		}
		b[i] = 'a'
	}
	return Value{Kind: KindOctetString, Bytes: append([]byte{'a'}, b...)}
}

// objectIDSuccessor implements the fixed-width base-255 successor
// (rightmost sub-identifier first, wrapping 255->1 with a carry), and
// the no-predecessor seeding rule: name.1 if it fits in 40 bytes at
// wordsize each, else 1.1.1.1 truncated to fit.
func objectIDSuccessor(prev *Value, name oid.OID) Value {
	if prev == nil {
		if (len(name)+1)*wordsize <= 40 {
			return ObjectID(name.AppendChild(1))
		}
		n := 40 / wordsize
		if n > 4 {
			n = 4
		}
		out := make(oid.OID, n)
		for i := range out {
			out[i] = 1
		}
		return Value{Kind: KindObjectID, Oid: out}
	}

	out := prev.Oid.Clone()
	i := len(out) - 1
	for out[i] == 255 {
		out[i] = 1
		i--
		if i < 0 {
			// Carry exits the left end outside the source's narrow
			// (objid[0]==2) case: grow leftward instead of indexing
			// out of range.
			out = append(oid.OID{1}, out...)
			i = 0
			break
		}
		if i == 0 && out[0] == 2 {
			out[i] = 1
			out = append(out, 0)
			i = len(out) - 1
			break
		}
	}
	out[i]++
	return Value{Kind: KindObjectID, Oid: out}
}
