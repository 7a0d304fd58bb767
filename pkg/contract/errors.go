/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package contract

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound indicates that the record does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record with the same ID exists (returned only if existing records are rejected on create)
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument indicates that the operation was invoked with invalid arguments
	ErrInvalidArgument = errors.New("invalid argument")
)

// IsNotFound returns true if the cause of the given error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// IsAlreadyExists returns true if the cause of the given error is ErrAlreadyExists
func IsAlreadyExists(err error) bool {
	return errors.Cause(err) == ErrAlreadyExists
}

// IsInvalidArgument returns true if the cause of the given error is ErrInvalidArgument
func IsInvalidArgument(err error) bool {
	return errors.Cause(err) == ErrInvalidArgument
}
