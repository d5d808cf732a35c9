// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package bounds

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/typegrid/internal/types"
)

// ErrOutOfBounds matches every *BoundsError.
var ErrOutOfBounds = errors.New("value out of bounds")

// Reason classifies a BoundsError.
type Reason int

const (
	BelowMinimum Reason = iota
	AboveMaximum
	Rejected
)

// BoundsError reports a converted value whose key falls outside the bounds.
type BoundsError struct {
	Value   any
	Key     any
	Lower   any
	Upper   any
	KeyName string
	Reason  Reason
}

func (e *BoundsError) Error() string {
	subject := "value " + types.Describe(e.Value)
	if e.KeyName != "" {
		subject = fmt.Sprintf("value of %s(%s) [%s]", e.KeyName, types.Describe(e.Value), types.Describe(e.Key))
	}
	switch e.Reason {
	case BelowMinimum:
		return fmt.Sprintf("%s is below the minimum allowed value of %s", subject, boundString(e.Lower))
	case AboveMaximum:
		return fmt.Sprintf("%s is above the maximum allowed value of %s", subject, boundString(e.Upper))
	default:
		if e.KeyName == "" {
			return subject + " is false"
		}
		return fmt.Sprintf("%s(%s) is false", e.KeyName, types.Describe(e.Value))
	}
}

func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }
