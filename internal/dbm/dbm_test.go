package dbm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dalzilio/tpnv/internal/bound"
)

func TestNewZeroIsEmptyFalse(t *testing.T) {
	d := NewZero(2)
	d.Canonicalise()
	require.False(t, d.IsEmpty())
	require.Equal(t, bound.Zero, d.At(1, 2))
}

func TestAddConstraintNegativeCycleIsEmpty(t *testing.T) {
	d := NewUnconstrained(1)
	// x1 <= 3 and x1 >= 5 (i.e. -x1 <= -5) is unsatisfiable.
	d.AddConstraint(1, 0, bound.Large(3))
	d.AddConstraint(0, 1, bound.Large(-5))
	d.Canonicalise()
	require.True(t, d.IsEmpty())
}

func TestCanonicaliseTightensTransitively(t *testing.T) {
	d := NewUnconstrained(2)
	d.AddConstraint(1, 2, bound.Large(3))
	d.AddConstraint(2, 0, bound.Large(5))
	d.Canonicalise()
	require.Equal(t, bound.Large(8), d.At(1, 0))
}

func TestIntersectionDimensionMismatch(t *testing.T) {
	a := NewUnconstrained(1)
	b := NewUnconstrained(2)
	_, err := a.Intersection(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestIncludes(t *testing.T) {
	loose := NewUnconstrained(1)
	loose.Canonicalise()

	tight := NewUnconstrained(1)
	tight.AddConstraint(1, 0, bound.Large(5))
	tight.Canonicalise()

	ok, err := loose.Includes(tight)
	require.NoError(t, err)
	require.True(t, ok, "unconstrained DBM should include a tighter one")

	ok, err = tight.Includes(loose)
	require.NoError(t, err)
	require.False(t, ok, "a tighter DBM should not include a looser one")
}

func TestEquivalentAfterCanonicalisation(t *testing.T) {
	// Two differently-built DBMs denoting the same zone should compare equal
	// once canonical, regardless of which redundant constraints were added.
	a := NewUnconstrained(1)
	a.AddConstraint(1, 0, bound.Large(5))
	a.Canonicalise()

	b := NewUnconstrained(1)
	b.AddConstraint(1, 0, bound.Large(10))
	b.AddConstraint(1, 0, bound.Large(5)) // tightened a second time
	b.Canonicalise()

	ok, err := a.Equivalent(b)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDelayRelaxesUpperBounds(t *testing.T) {
	d := NewZero(1)
	d.Canonicalise()
	d.Delay()
	require.Equal(t, bound.PlusInf, d.At(1, 0))
	require.Equal(t, bound.Zero, d.At(0, 1))
}

func TestResetPinsClockToReference(t *testing.T) {
	d := NewUnconstrained(2)
	d.AddConstraint(1, 0, bound.Large(7))
	d.Canonicalise()
	d.Reset(2)
	require.Equal(t, bound.Zero, d.At(2, 2))
	require.Equal(t, d.At(0, 1), d.At(2, 1))
}

func TestCanonicalHashStableAcrossEquivalentBuild(t *testing.T) {
	a := NewUnconstrained(1)
	a.AddConstraint(1, 0, bound.Large(5))
	a.Canonicalise()

	b := NewUnconstrained(1)
	b.AddConstraint(1, 0, bound.Large(10))
	b.AddConstraint(1, 0, bound.Large(5))
	b.Canonicalise()

	require.Equal(t, a.CanonicalHash(), b.CanonicalHash())
}
