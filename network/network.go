// Copyright 2026 The optimize-contraction Authors. SPDX-License-Identifier: Apache-2.0

// Package network evaluates a caller-given sequence of pairwise contractions
// over a set of abstract tensors.
//
// A Network starts from the tensors of a contraction scheme and consumes it
// step by step: each step contracts two tensors of the current frontier into
// one, accumulating the arithmetic cost and recording how many elements are
// live while the step runs. It does not search for a good order; it prices
// the order it is given.
//
// Memory is counted in elements: a step's estimate is the size of every
// frontier tensor (operands included) plus the size of the result, since the
// operands can only be freed after the result is computed. Multiply by an
// element type with MemoryBytes to get bytes.
package network

import (
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/ogauthe/optimize-contraction/abstract"
)

// Step records one executed pairwise contraction.
type Step struct {
	// LHS and RHS are the names of the contracted tensors, left and right
	// operand of abstract.Tensor.Dot.
	LHS, RHS string

	// Legs summed over by this step.
	Legs []abstract.Leg

	// Result descriptor, appended to the frontier.
	Result abstract.Tensor

	// Cost in multiply-add operations of this step alone.
	Cost uint64

	// Memory is the number of elements live while the step runs: all frontier
	// tensors before the operands are freed, plus the result.
	Memory uint64
}

// Network holds the current tensor frontier of a contraction scheme and the
// accumulated cost estimates. Create one with New, advance it with Contract
// or ContractLegs. Not safe for concurrent use.
type Network struct {
	tensors []abstract.Tensor
	cpu     uint64
	mem     []uint64
	steps   []Step
}

// New returns a network over the given tensors. The initial memory estimate,
// the first element of MemoryBySteps, is the sum of their sizes.
func New(tensors ...abstract.Tensor) *Network {
	n := &Network{tensors: slices.Clone(tensors)}
	n.mem = []uint64{n.liveElements()}
	return n
}

// Tensors returns a copy of the current frontier, in order.
func (n *Network) Tensors() []abstract.Tensor { return slices.Clone(n.tensors) }

// NumTensors returns the number of tensors still in the frontier.
func (n *Network) NumTensors() int { return len(n.tensors) }

// CPU returns the total multiply-add operations of all steps so far.
func (n *Network) CPU() uint64 { return n.cpu }

// MemoryBySteps returns the memory estimates in elements: element 0 is the
// initial frontier, followed by one entry per executed step.
func (n *Network) MemoryBySteps() []uint64 { return slices.Clone(n.mem) }

// PeakMemory returns the largest memory estimate seen so far, in elements.
func (n *Network) PeakMemory() uint64 { return slices.Max(n.mem) }

// MemoryBytes returns PeakMemory converted to bytes for the given element
// type.
func (n *Network) MemoryBytes(dtype dtypes.DType) uintptr {
	return dtype.Memory() * uintptr(n.PeakMemory())
}

// Steps returns a copy of the executed steps, in order.
func (n *Network) Steps() []Step { return slices.Clone(n.steps) }

// Result returns the single tensor left after a complete contraction, or an
// error if the scheme has not been reduced to one tensor.
func (n *Network) Result() (abstract.Tensor, error) {
	if len(n.tensors) != 1 {
		return abstract.Tensor{}, errors.Errorf("network reduced to %d tensors (%s), want 1", len(n.tensors), n)
	}
	return n.tensors[0], nil
}

// String returns the comma-joined names of the frontier tensors.
func (n *Network) String() string {
	names := make([]string, len(n.tensors))
	for i, t := range n.tensors {
		names[i] = t.Name()
	}
	return strings.Join(names, ",")
}

func (n *Network) liveElements() uint64 {
	var total uint64
	for _, t := range n.tensors {
		total += t.Size()
	}
	return total
}

// Contract contracts frontier tensors i and j, left and right operand in that
// order, over all their common legs. The operands leave the frontier and the
// result is appended at its end.
func (n *Network) Contract(i, j int) (Step, error) {
	if i < 0 || i >= len(n.tensors) || j < 0 || j >= len(n.tensors) || i == j {
		return Step{}, errors.Errorf("network.Contract(%d, %d): want two distinct indices among %d tensors",
			i, j, len(n.tensors))
	}
	return n.contract(i, j, n.tensors[i].CommonLegs(n.tensors[j]))
}

// ContractLegs locates the two frontier tensors carrying legs[0] and
// contracts them over exactly the given legs. The tensor found later in the
// frontier becomes the left operand. It returns ErrLegCardinality unless
// exactly two tensors carry legs[0].
func (n *Network) ContractLegs(legs ...abstract.Leg) (Step, error) {
	if len(legs) == 0 {
		return Step{}, errors.Wrap(abstract.ErrEmptyContraction, "network.ContractLegs()")
	}
	var found []int
	for k := len(n.tensors) - 1; k >= 0; k-- {
		if slices.Contains(n.tensors[k].Legs(), legs[0]) {
			found = append(found, k)
		}
	}
	if len(found) != 2 {
		return Step{}, errors.Wrapf(ErrLegCardinality, "network.ContractLegs(%v): leg %d is carried by %d tensors",
			legs, legs[0], len(found))
	}
	return n.contract(found[0], found[1], slices.Clone(legs))
}

func (n *Network) contract(i, j int, legs []abstract.Leg) (Step, error) {
	lhs, rhs := n.tensors[i], n.tensors[j]
	result, cost, err := lhs.Dot(rhs, legs...)
	if err != nil {
		return Step{}, err
	}
	live := n.liveElements() + result.Size()

	hi, lo := max(i, j), min(i, j)
	n.tensors = slices.Delete(n.tensors, hi, hi+1)
	n.tensors = slices.Delete(n.tensors, lo, lo+1)
	n.tensors = append(n.tensors, result)
	n.cpu += cost
	n.mem = append(n.mem, live)

	step := Step{
		LHS:    lhs.Name(),
		RHS:    rhs.Name(),
		Legs:   legs,
		Result: result,
		Cost:   cost,
		Memory: live,
	}
	n.steps = append(n.steps, step)
	klog.V(1).Infof("contracted %q and %q over legs %v: cost=%d, live=%d elements, %d tensors left",
		step.LHS, step.RHS, step.Legs, step.Cost, step.Memory, len(n.tensors))
	return step, nil
}

type legUse struct {
	dim  int
	seen int
}

// Validate checks the frontier legs as a whole: a leg repeated within one
// tensor (a trace) returns ErrDuplicateLeg, a label carried by more than two
// tensors returns ErrLegCardinality and a label carried by two tensors with
// different dimensions returns abstract.ErrDimensionSizeConflict. Open legs,
// carried by a single tensor, are fine whatever their sign.
func (n *Network) Validate() error {
	uses := make(map[abstract.Leg]legUse)
	for _, t := range n.tensors {
		legs := t.Legs()
		shape := t.Shape()
		for axis, leg := range legs {
			if slices.Count(legs, leg) > 1 {
				return errors.Wrapf(ErrDuplicateLeg, "tensor %q carries leg %d twice", t.Name(), leg)
			}
			use, ok := uses[leg]
			if !ok {
				uses[leg] = legUse{dim: shape[axis], seen: 1}
				continue
			}
			if use.seen >= 2 {
				return errors.Wrapf(ErrLegCardinality, "leg %d appears in more than two tensors", leg)
			}
			if use.dim != shape[axis] {
				return errors.Wrapf(abstract.ErrDimensionSizeConflict,
					"leg %d has dimension %d in one tensor and %d in another (tensor %q)",
					leg, use.dim, shape[axis], t.Name())
			}
			uses[leg] = legUse{dim: use.dim, seen: 2}
		}
	}
	return nil
}
