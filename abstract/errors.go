// Copyright 2026 The optimize-contraction Authors. SPDX-License-Identifier: Apache-2.0

package abstract

import "github.com/pkg/errors"

// Error kinds returned by this package. They carry no operand context on
// their own: functions wrap them with the tensors and legs involved, so test
// for a kind with errors.Is.
var (
	// ErrShapeLegMismatch indicates a descriptor built with a different number
	// of dimensions and leg labels.
	ErrShapeLegMismatch = errors.New("shape and legs have different lengths")

	// ErrInvalidDimension indicates a dimension smaller than 1.
	ErrInvalidDimension = errors.New("dimension must be >= 1")

	// ErrEmptyContraction indicates a dot product whose set of legs to sum
	// over resolved empty: the operands share no legs and no explicit legs
	// were given.
	ErrEmptyContraction = errors.New("no legs to contract")

	// ErrDimensionSizeConflict indicates a leg carried by both operands with a
	// different dimension size on each side.
	ErrDimensionSizeConflict = errors.New("leg has conflicting dimension sizes")
)
