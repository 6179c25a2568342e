// Package service implements the core engines of the gift-group system:
// the membership state machine, the visibility and claim rules, list
// operations and group lifecycle with its cascades. Handlers translate the
// error taxonomy below into HTTP statuses; services never format responses.
package service

import "errors"

var (
	// ErrNotFound: entity absent or the caller lacks visibility of it.
	// Deliberately conflated so responses never leak existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: authenticated but not authorized for this action
	// (not the leader, not an approved member, claiming your own gift).
	ErrForbidden = errors.New("forbidden")

	// ErrConflict: a uniqueness rule lost the race or was already satisfied
	// by someone else (item already claimed, group name taken).
	ErrConflict = errors.New("conflict")

	// ErrInvalidSelection: the referenced gift list is not owned by the
	// acting user.
	ErrInvalidSelection = errors.New("invalid list selection")

	// ErrInvalidOperation: structurally disallowed transition, e.g. the
	// leader leaving their own group.
	ErrInvalidOperation = errors.New("operation not allowed")
)
