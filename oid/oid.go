// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package oid implements the ASN.1 Object Identifier primitives the rest
// of oidreg is built on: a totally-ordered sequence of unsigned
// sub-identifiers, with comparison, prefix testing and printing.
package oid

import (
	"slices"
	"strconv"
	"strings"
)

// OID is a sequence of unsigned sub-identifiers naming a point in the MIB
// tree. The zero value (nil) is the empty OID, the root of the tree.
//
// OIDs are totally ordered lexicographically on their sub-identifiers;
// a shorter OID is less than a longer one that shares its full prefix.
type OID []uint32

// Parse parses a dotted-decimal OID string such as "1.3.6.1.2.1.1".
// A leading dot is tolerated. Returns an error for empty input, empty
// arcs ("1..2"), or non-numeric arcs.
func Parse(s string) (OID, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, errEmpty
	}

	parts := strings.Split(s, ".")
	out := make(OID, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, errEmptyArc
		}
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, &ParseError{Input: s, Arc: p, Err: err}
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures, not for parsing untrusted input.
func MustParse(s string) OID {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// String renders the OID in dotted-decimal form. The empty OID renders
// as the empty string.
func (o OID) String() string {
	if len(o) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(o[0]), 10))
	for _, arc := range o[1:] {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return b.String()
}

// Clone returns an independent copy of o.
func (o OID) Clone() OID {
	return slices.Clone(o)
}

// Equal reports whether o and other name the same point.
func (o OID) Equal(other OID) bool {
	return slices.Equal(o, other)
}

// Compare returns -1, 0 or 1 as o is less than, equal to, or greater than
// other, using lexicographic order on sub-identifiers where a shorter OID
// that is a prefix of a longer one sorts first.
func (o OID) Compare(other OID) int {
	return slices.Compare(o, other)
}

// HasPrefix reports whether o starts with the given prefix, including the
// case where o equals prefix.
func (o OID) HasPrefix(prefix OID) bool {
	return len(o) >= len(prefix) && slices.Equal(o[:len(prefix)], prefix)
}

// Suffix returns the arcs of o beyond the given prefix length. It panics
// if n is greater than len(o); callers only ever call it with n known to
// be a valid prefix length of o.
func (o OID) Suffix(n int) OID {
	return o[n:]
}

// AppendChild returns a new OID with arc appended, leaving o untouched.
func (o OID) AppendChild(arc uint32) OID {
	out := make(OID, len(o), len(o)+1)
	copy(out, o)
	return append(out, arc)
}

// Successor returns the OID obtained by incrementing the final
// sub-identifier, used to build the exclusive upper bound of a
// registration from its starting OID. Successor of the empty OID is the
// empty OID.
func (o OID) Successor() OID {
	if len(o) == 0 {
		return nil
	}
	out := o.Clone()
	out[len(out)-1]++
	return out
}
