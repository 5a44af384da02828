// Copyright 2026 The optimize-contraction Authors. SPDX-License-Identifier: Apache-2.0

// Package abstract models tensors symbolically for contraction planning.
//
// A Tensor here is only a descriptor: a name, a shape and one integer leg
// label per axis. No numeric content is ever stored. Contracting two
// descriptors with Dot sums over their shared legs and yields the resulting
// descriptor together with the arithmetic cost of performing that contraction
// for real, which is what planning tools need to compare candidate orders.
//
// ## Glossary
//
//   - Leg: the integer label attached to one axis of a tensor. Two tensors
//     carrying the same label are meant to be summed over that axis. Labels
//     are arbitrary; by convention negative labels mark open (free) legs.
//   - Rank: number of axes (and therefore legs) of a tensor.
//   - Dimension: the size of one axis.
//   - Size: total number of elements, the product of all dimensions.
//
// Example: A with shape [2 3 4] and legs [0 1 2], B with shape [2 5 6] and
// legs [0 3 4] share leg 0. A.Dot(B) sums over it and gives the descriptor
// "[A-B]" with shape [3 4 5 6], legs [1 2 3 4], at a cost of 720 multiply-add
// operations.
//
// Tensor is an immutable value: construction copies the caller's slices and
// accessors return fresh ones, so descriptors can be shared freely across
// goroutines.
package abstract

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

// Leg is the label attached to one tensor axis. Legs with equal labels on two
// tensors are contracted (summed over) together.
//
// Uniqueness of labels within one tensor is assumed, not enforced; see
// network.Network.Validate for the network-wide check.
type Leg int32

// Tensor describes a tensor symbolically: its name, the dimension and the leg
// label of each axis. It holds no numeric content.
//
// Use New or MustNew to create one. The zero value is a valid scalar
// descriptor with an empty name.
type Tensor struct {
	name  string
	shape []int
	legs  []Leg
	size  uint64
}

// New returns a descriptor with the given name, one dimension and one leg
// label per axis. Shape and legs must have the same length (else
// ErrShapeLegMismatch) and every dimension must be at least 1 (else
// ErrInvalidDimension). Both slices are copied.
func New(name string, shape []int, legs []Leg) (Tensor, error) {
	if len(shape) != len(legs) {
		return Tensor{}, errors.Wrapf(ErrShapeLegMismatch, "abstract.New(%q): %d dimensions and %d legs",
			name, len(shape), len(legs))
	}
	size := uint64(1)
	for axis, dim := range shape {
		if dim < 1 {
			return Tensor{}, errors.Wrapf(ErrInvalidDimension, "abstract.New(%q): axis %d has dimension %d",
				name, axis, dim)
		}
		size *= uint64(dim)
	}
	return Tensor{
		name:  name,
		shape: slices.Clone(shape),
		legs:  slices.Clone(legs),
		size:  size,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, shape []int, legs []Leg) Tensor {
	return must.M1(New(name, shape, legs))
}

// Name returns the tensor's name.
func (t Tensor) Name() string { return t.name }

// String implements fmt.Stringer and returns the name alone. Contraction
// result names like "[A-B]" already spell out the full history, which is all
// planning reports print.
func (t Tensor) String() string { return t.name }

// Rank returns the number of axes (and legs) of the tensor.
func (t Tensor) Rank() int { return len(t.legs) }

// Size returns the total number of elements, the product of all dimensions.
// A rank-0 (scalar) descriptor has size 1.
func (t Tensor) Size() uint64 { return t.size }

// Shape returns a copy of the dimensions, one per axis.
func (t Tensor) Shape() []int { return slices.Clone(t.shape) }

// Legs returns a copy of the leg labels, one per axis.
func (t Tensor) Legs() []Leg { return slices.Clone(t.legs) }

// Dim returns the dimension of the given axis. axis can take negative
// numbers, in which case it counts from the end -- so axis=-1 refers to the
// last axis. Like with slice indexing, it panics for an out-of-bounds axis.
func (t Tensor) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += t.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= t.Rank() {
		exceptions.Panicf("Tensor.Dim(%d): out-of-bounds for rank %d (tensor %q)", axis, t.Rank(), t.name)
	}
	return t.shape[adjustedAxis]
}

// Memory returns the bytes needed to materialize the tensor with elements of
// the given dtype. The descriptor itself carries no element type; the caller
// chooses one for the estimate.
func (t Tensor) Memory(dtype dtypes.DType) uintptr {
	return dtype.Memory() * uintptr(t.size)
}

// Equal reports whether both descriptors have the same name, shape and legs.
func (t Tensor) Equal(other Tensor) bool {
	return t.name == other.name &&
		slices.Equal(t.shape, other.shape) &&
		slices.Equal(t.legs, other.legs)
}

// CommonLegs returns the legs carried by both tensors, in the receiver's leg
// order, each listed once per receiver axis that carries it.
func (t Tensor) CommonLegs(other Tensor) []Leg {
	var common []Leg
	for _, leg := range t.legs {
		if slices.Contains(other.legs, leg) {
			common = append(common, leg)
		}
	}
	return common
}

// HasCommonLegs reports whether the tensors share at least one leg.
func (t Tensor) HasCommonLegs(other Tensor) bool {
	return len(t.CommonLegs(other)) > 0
}

// Dot contracts the receiver with other and returns the resulting descriptor
// and the number of multiply-add operations the contraction would take.
//
// The legs summed over are the contracted arguments when given, otherwise all
// legs common to both tensors. An empty resolved set returns
// ErrEmptyContraction; a contracted leg with different dimension sizes on the
// two sides returns ErrDimensionSizeConflict. An explicitly given leg absent
// from one side filters nothing on that side.
//
// The result is named "[lhs-rhs]" and keeps the receiver's surviving axes in
// order, followed by other's. The cost is the receiver's full size multiplied
// by each surviving dimension of other. The formula is asymmetric: it is the
// cost of the loop nest that walks every element of the receiver once per
// surviving right-side index, not of an optimized kernel.
//
// Both operands are left untouched and the result shares no memory with them.
func (t Tensor) Dot(other Tensor, contracted ...Leg) (Tensor, uint64, error) {
	legs := contracted
	if len(legs) == 0 {
		legs = t.CommonLegs(other)
	}
	if len(legs) == 0 {
		return Tensor{}, 0, errors.Wrapf(ErrEmptyContraction, "Tensor.Dot(%q, %q)", t.name, other.name)
	}
	for _, leg := range legs {
		selfAxis := slices.Index(t.legs, leg)
		otherAxis := slices.Index(other.legs, leg)
		if selfAxis >= 0 && otherAxis >= 0 && t.shape[selfAxis] != other.shape[otherAxis] {
			return Tensor{}, 0, errors.Wrapf(ErrDimensionSizeConflict,
				"Tensor.Dot(%q, %q): leg %d has dimension %d and %d",
				t.name, other.name, leg, t.shape[selfAxis], other.shape[otherAxis])
		}
	}

	maxRank := t.Rank() + other.Rank()
	shape := make([]int, 0, maxRank)
	outLegs := make([]Leg, 0, maxRank)
	size := uint64(1)
	for axis, leg := range t.legs {
		if slices.Contains(legs, leg) {
			continue
		}
		shape = append(shape, t.shape[axis])
		outLegs = append(outLegs, leg)
		size *= uint64(t.shape[axis])
	}
	cost := t.size
	for axis, leg := range other.legs {
		if slices.Contains(legs, leg) {
			continue
		}
		shape = append(shape, other.shape[axis])
		outLegs = append(outLegs, leg)
		size *= uint64(other.shape[axis])
		cost *= uint64(other.shape[axis])
	}
	result := Tensor{
		name:  "[" + t.name + "-" + other.name + "]",
		shape: shape,
		legs:  outLegs,
		size:  size,
	}
	return result, cost, nil
}
