// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package index

import "errors"

// Sentinel errors returned by Allocator methods.
var (
	// ErrDuplicateValue is returned by Allocate(AllocateThisIndex) when
	// the requested value is already allocated to a live session.
	ErrDuplicateValue = errors.New("index: duplicate value")

	// ErrNotAllocated is returned by Release/Remove when no entry
	// matches the given name and value.
	ErrNotAllocated = errors.New("index: not allocated")

	// ErrWrongType is returned when a name's existing entries were
	// allocated with a different Kind than the one requested.
	ErrWrongType = errors.New("index: wrong type")

	// ErrWrongSession is returned by Release/Remove when the entry is
	// owned by a different session than the one presented.
	ErrWrongSession = errors.New("index: wrong session")
)
