/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chess

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// InputError describes input the engine refuses to work with.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError is returned when a referenced player cannot be resolved.
type NotFoundError struct {
	ID PlayerID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("player %v not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
