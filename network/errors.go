// Copyright 2026 The optimize-contraction Authors. SPDX-License-Identifier: Apache-2.0

package network

import "github.com/pkg/errors"

// Error kinds for network-wide leg checks, wrapped with the tensors and legs
// involved. Test for a kind with errors.Is. Dimension conflicts reuse
// abstract.ErrDimensionSizeConflict.
var (
	// ErrDuplicateLeg indicates a leg label repeated within a single tensor,
	// which would denote a trace. Traces are not supported.
	ErrDuplicateLeg = errors.New("leg repeated within one tensor")

	// ErrLegCardinality indicates a leg label that does not connect exactly
	// two tensors.
	ErrLegCardinality = errors.New("leg must connect exactly two tensors")
)
