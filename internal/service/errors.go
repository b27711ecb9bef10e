package service

import "errors"

var (
	// ErrNotFound covers both absent records and records the requester does
	// not own; callers must not be able to distinguish the two.
	ErrNotFound = errors.New("record not found")
	// ErrInsulinTypeInUse rejects deleting an insulin type still referenced
	// by doses.
	ErrInsulinTypeInUse = errors.New("insulin type is referenced by existing doses")
	// ErrDuplicateName rejects an insulin type name that already exists.
	ErrDuplicateName = errors.New("name already in use")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken rejects registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
)
