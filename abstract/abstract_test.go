package abstract

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a, err := New("A", []int{2, 3, 4}, []Leg{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, "A", a.Name())
	require.Equal(t, "A", a.String())
	require.Equal(t, 3, a.Rank())
	require.Equal(t, uint64(2*3*4), a.Size())
	require.Equal(t, []int{2, 3, 4}, a.Shape())
	require.Equal(t, []Leg{0, 1, 2}, a.Legs())

	// Rank-0 descriptor: no axes, size 1.
	scalar, err := New("s", nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, scalar.Rank())
	require.Equal(t, uint64(1), scalar.Size())

	// Negative and zero labels are ordinary labels.
	open, err := New("T", []int{7, 7}, []Leg{-1, 0})
	require.NoError(t, err)
	require.Equal(t, []Leg{-1, 0}, open.Legs())

	_, err = New("bad", []int{2, 3}, []Leg{0})
	require.ErrorIs(t, err, ErrShapeLegMismatch)
	_, err = New("bad", []int{2}, []Leg{0, 1})
	require.ErrorIs(t, err, ErrShapeLegMismatch)
	_, err = New("bad", []int{2, 0}, []Leg{0, 1})
	require.ErrorIs(t, err, ErrInvalidDimension)
	_, err = New("bad", []int{-2}, []Leg{0})
	require.ErrorIs(t, err, ErrInvalidDimension)
}

func TestNewCopiesInputs(t *testing.T) {
	shape := []int{2, 3}
	legs := []Leg{0, 1}
	a, err := New("A", shape, legs)
	require.NoError(t, err)

	// Mutating the caller's slices must not reach the descriptor.
	shape[0] = 99
	legs[1] = 99
	require.Equal(t, []int{2, 3}, a.Shape())
	require.Equal(t, []Leg{0, 1}, a.Legs())

	// Accessors hand out copies as well.
	a.Shape()[0] = 99
	a.Legs()[0] = 99
	require.Equal(t, []int{2, 3}, a.Shape())
	require.Equal(t, []Leg{0, 1}, a.Legs())
}

func TestMustNew(t *testing.T) {
	a := MustNew("A", []int{2}, []Leg{0})
	require.Equal(t, "A", a.Name())
	require.Panics(t, func() { MustNew("bad", []int{2}, nil) })
}

func TestDim(t *testing.T) {
	a := MustNew("A", []int{4, 3, 2}, []Leg{0, 1, 2})
	require.Equal(t, 4, a.Dim(0))
	require.Equal(t, 3, a.Dim(1))
	require.Equal(t, 2, a.Dim(2))
	require.Equal(t, 4, a.Dim(-3))
	require.Equal(t, 3, a.Dim(-2))
	require.Equal(t, 2, a.Dim(-1))
	require.Panics(t, func() { _ = a.Dim(3) })
	require.Panics(t, func() { _ = a.Dim(-4) })
}

func TestMemory(t *testing.T) {
	a := MustNew("A", []int{4, 3, 2}, []Leg{0, 1, 2})
	require.Equal(t, uintptr(8*4*3*2), a.Memory(dtypes.Float64))
	require.Equal(t, uintptr(4*4*3*2), a.Memory(dtypes.Float32))
}

func TestEqual(t *testing.T) {
	a := MustNew("A", []int{2, 3}, []Leg{0, 1})
	require.True(t, a.Equal(MustNew("A", []int{2, 3}, []Leg{0, 1})))
	require.False(t, a.Equal(MustNew("B", []int{2, 3}, []Leg{0, 1})))
	require.False(t, a.Equal(MustNew("A", []int{2, 4}, []Leg{0, 1})))
	require.False(t, a.Equal(MustNew("A", []int{2, 3}, []Leg{0, 2})))
	require.False(t, a.Equal(MustNew("A", []int{2}, []Leg{0})))
}

func TestCommonLegs(t *testing.T) {
	a := MustNew("A", []int{2, 3, 4}, []Leg{0, 1, 2})
	b := MustNew("B", []int{2, 5, 4}, []Leg{0, 3, 2})
	c := MustNew("C", []int{6, 7}, []Leg{8, 9})

	// Each side lists the shared labels in its own leg order.
	require.Equal(t, []Leg{0, 2}, a.CommonLegs(b))
	require.Equal(t, []Leg{0, 2}, b.CommonLegs(a))

	// Same label set regardless of order of operands.
	ab := a.CommonLegs(b)
	ba := b.CommonLegs(a)
	require.ElementsMatch(t, ab, ba)

	require.Empty(t, a.CommonLegs(c))
	require.True(t, a.HasCommonLegs(b))
	require.False(t, a.HasCommonLegs(c))
	require.False(t, c.HasCommonLegs(a))
}

func TestCommonLegsOrder(t *testing.T) {
	// Receiver order wins, not the other operand's.
	a := MustNew("A", []int{2, 3}, []Leg{5, 7})
	b := MustNew("B", []int{3, 2}, []Leg{7, 5})
	require.Equal(t, []Leg{5, 7}, a.CommonLegs(b))
	require.Equal(t, []Leg{7, 5}, b.CommonLegs(a))
}

func TestDot(t *testing.T) {
	a := MustNew("A", []int{2, 3, 4}, []Leg{0, 1, 2})
	b := MustNew("B", []int{2, 5, 6}, []Leg{0, 3, 4})

	r, cost, err := a.Dot(b)
	require.NoError(t, err)
	require.Equal(t, "[A-B]", r.Name())
	require.Equal(t, []int{3, 4, 5, 6}, r.Shape())
	require.Equal(t, []Leg{1, 2, 3, 4}, r.Legs())
	require.Equal(t, uint64(3*4*5*6), r.Size())
	// 24 elements of A, each visited once per surviving (5,6) index pair.
	require.Equal(t, uint64(720), cost)

	// Operands untouched.
	require.Equal(t, []int{2, 3, 4}, a.Shape())
	require.Equal(t, []Leg{0, 3, 4}, b.Legs())
}

func TestDotExplicitLegs(t *testing.T) {
	a := MustNew("A", []int{2, 3, 4}, []Leg{0, 1, 2})
	b := MustNew("B", []int{2, 5, 6}, []Leg{0, 3, 4})

	// Explicit list equal to the common set matches the default behavior.
	auto, autoCost, err := a.Dot(b)
	require.NoError(t, err)
	explicit, explicitCost, err := a.Dot(b, 0)
	require.NoError(t, err)
	require.True(t, auto.Equal(explicit))
	require.Equal(t, autoCost, explicitCost)

	// A leg carried by neither operand filters nothing: everything survives.
	r, cost, err := a.Dot(b, 99)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4, 2, 5, 6}, r.Shape())
	require.Equal(t, []Leg{0, 1, 2, 0, 3, 4}, r.Legs())
	require.Equal(t, a.Size()*b.Size(), cost)

	// Contracting a subset keeps the remaining common leg on both sides.
	c := MustNew("C", []int{2, 3, 7}, []Leg{0, 1, 5})
	r, _, err = a.Dot(c, 0)
	require.NoError(t, err)
	require.Equal(t, []Leg{1, 2, 1, 5}, r.Legs())
}

func TestDotCostAsymmetry(t *testing.T) {
	// With an explicit leg carried by one side only, the cost depends on the
	// operand order: the left operand contributes its full size.
	a := MustNew("A", []int{2, 3}, []Leg{0, 1})
	b := MustNew("B", []int{4}, []Leg{2})

	_, costAB, err := a.Dot(b, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(2*3*4), costAB)

	_, costBA, err := b.Dot(a, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(4*2), costBA)
}

func TestDotErrors(t *testing.T) {
	a := MustNew("A", []int{2, 3}, []Leg{0, 1})
	c := MustNew("C", []int{4, 5}, []Leg{2, 3})
	_, _, err := a.Dot(c)
	require.ErrorIs(t, err, ErrEmptyContraction)

	// Same label, different dimension sizes.
	d := MustNew("D", []int{7}, []Leg{0})
	_, _, err = a.Dot(d)
	require.ErrorIs(t, err, ErrDimensionSizeConflict)
	_, _, err = a.Dot(d, 0)
	require.ErrorIs(t, err, ErrDimensionSizeConflict)

	// The conflicting label is only checked when it is being contracted.
	_, _, err = a.Dot(d, 1)
	require.NoError(t, err)
}

func TestDotResultIndependence(t *testing.T) {
	shapeA := []int{2, 3}
	legsA := []Leg{0, 1}
	a := MustNew("A", shapeA, legsA)
	b := MustNew("B", []int{3, 4}, []Leg{1, 2})

	r, _, err := a.Dot(b)
	require.NoError(t, err)

	shapeA[0] = 99
	legsA[0] = 99
	r.Shape()[0] = 99
	r.Legs()[0] = 99
	require.Equal(t, []int{2, 4}, r.Shape())
	require.Equal(t, []Leg{0, 2}, r.Legs())
	require.Equal(t, uint64(2*4), r.Size())
}

func TestDotChained(t *testing.T) {
	// Results feed back into Dot; names record the contraction history.
	a := MustNew("A", []int{2, 3}, []Leg{0, 1})
	b := MustNew("B", []int{3, 4}, []Leg{1, 2})
	c := MustNew("C", []int{4, 5}, []Leg{2, 3})

	ab, _, err := a.Dot(b)
	require.NoError(t, err)
	abc, _, err := ab.Dot(c)
	require.NoError(t, err)
	require.Equal(t, "[[A-B]-C]", abc.Name())
	require.Equal(t, []int{2, 5}, abc.Shape())
	require.Equal(t, []Leg{0, 3}, abc.Legs())
}
