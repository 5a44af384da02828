// Copyright 2026 The optimize-contraction Authors. SPDX-License-Identifier: Apache-2.0

package network

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/ogauthe/optimize-contraction/abstract"
)

// TensorSpec describes one tensor of a plan file.
type TensorSpec struct {
	Name  string         `json:"name"`
	Legs  []abstract.Leg `json:"legs"`
	Shape []int          `json:"shape"`
}

// Plan is the JSON form of a contraction scheme: the tensors of the network
// and the sequence of leg groups to contract, in order. Example:
//
//	{
//	  "tensors": [
//	    {"name": "A", "legs": [0, 1], "shape": [20, 30]},
//	    {"name": "B", "legs": [1, -1], "shape": [30, 7]}
//	  ],
//	  "sequence": [[1]]
//	}
type Plan struct {
	Tensors  []TensorSpec     `json:"tensors"`
	Sequence [][]abstract.Leg `json:"sequence"`
}

// ReadPlan parses a JSON plan from r.
func ReadPlan(r io.Reader) (Plan, error) {
	var p Plan
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return Plan{}, errors.Wrap(err, "failed to parse contraction plan")
	}
	return p, nil
}

// LoadPlan reads a JSON plan from the given file.
func LoadPlan(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, errors.Wrapf(err, "failed to open contraction plan %q", path)
	}
	defer func() { _ = f.Close() }()
	p, err := ReadPlan(f)
	if err != nil {
		return Plan{}, errors.WithMessagef(err, "plan file %q", path)
	}
	return p, nil
}

// Build creates the network described by the plan's tensors and validates its
// legs. The sequence is not applied; see Run.
func (p Plan) Build() (*Network, error) {
	tensors := make([]abstract.Tensor, 0, len(p.Tensors))
	for _, spec := range p.Tensors {
		t, err := abstract.New(spec.Name, spec.Shape, spec.Legs)
		if err != nil {
			return nil, err
		}
		tensors = append(tensors, t)
	}
	n := New(tensors...)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Run builds the network and applies every entry of the sequence with
// ContractLegs. On error the network evaluated so far is returned along with
// it, so callers can report the step that failed.
func (p Plan) Run() (*Network, error) {
	n, err := p.Build()
	if err != nil {
		return nil, err
	}
	for i, legs := range p.Sequence {
		if _, err := n.ContractLegs(legs...); err != nil {
			return n, errors.WithMessagef(err, "sequence entry %d", i)
		}
	}
	return n, nil
}
