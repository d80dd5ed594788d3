// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package subtree

import "errors"

// Sentinel errors returned by Registry methods. Use errors.Is to test
// for them; RegisterRange and Unregister never wrap these further.
var (
	// ErrDuplicateRegistration is returned when a (name, priority) pair
	// already has a live registration at the same point in the tree.
	ErrDuplicateRegistration = errors.New("subtree: duplicate registration")

	// ErrRegistrationFailed covers structural failures during load, and
	// is also what a partially-completed range registration collapses to
	// once its already-installed clones have been unwound.
	ErrRegistrationFailed = errors.New("subtree: registration failed")

	// ErrNoSuchRegistration is returned by Unregister when no matching
	// (name, priority) entry exists.
	ErrNoSuchRegistration = errors.New("subtree: no such registration")
)
