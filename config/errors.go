package config

import "errors"

var (
	// ErrNotOwner indicates a non-owner account called an owner-only setter.
	ErrNotOwner = errors.New("config: caller is not the owner")

	// ErrZeroAddress indicates a required account is the zero address.
	ErrZeroAddress = errors.New("config: zero address")
)
