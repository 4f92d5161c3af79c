package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feralthedogg/novum-contract/pkg/contract"
	"github.com/Feralthedogg/novum-contract/pkg/state"
)

func TestNumeric(t *testing.T) {
	assert.True(t, Positive(1))
	assert.False(t, Positive(0))
	assert.False(t, Positive(-0.5))
	assert.True(t, NonNegative(uint8(0)))
	assert.False(t, NonNegative(int64(-1)))

	assert.True(t, AllPositive(1, 2, 3))
	assert.False(t, AllPositive(1, -2, 3))
	assert.True(t, AllPositive[int]())
}

func TestInRange(t *testing.T) {
	between := InRange(10, 20)
	assert.True(t, between(10))
	assert.True(t, between(20))
	assert.False(t, between(9))
	assert.False(t, between(21))

	assert.True(t, InRange("a", "c")("b"))
}

func TestCombinators(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.True(t, And(Positive[int], even)(4))
	assert.False(t, And(Positive[int], even)(3))
	assert.False(t, And(Positive[int], even)(-2))
	assert.True(t, And[int]()(0))

	assert.True(t, Or(Equal(7), even)(7))
	assert.True(t, Or(Equal(7), even)(8))
	assert.False(t, Or(Equal(7), even)(9))
	assert.False(t, Or[int]()(0))

	assert.True(t, Not(even)(3))
}

func TestUnchangedAndAll(t *testing.T) {
	flag := false
	counter := 0
	inv := All(
		Unchanged(func() bool { return flag }),
		func() bool { return counter < 2 },
	)

	assert.True(t, inv())
	counter = 1
	assert.True(t, inv())
	flag = true
	assert.False(t, inv())
	flag = false
	counter = 2
	assert.False(t, inv())
}

func TestPredicatesAsContractClauses(t *testing.T) {
	sw := state.NewSwitch(true)
	touched := false
	add := func(lhs, rhs int) int {
		touched = true
		return lhs + rhs
	}

	wrapped := contract.Wrap2(add, contract.Contract[contract.Pair[int, int], int]{
		Pre:       func(p contract.Pair[int, int]) bool { return AllPositive(p.First, p.Second) },
		Post:      Equal(30),
		Invariant: Unchanged(func() bool { return touched }),
	}, contract.WithSwitch(sw), contract.WithName("add"))

	defer func() {
		v, ok := contract.AsViolation(recover())
		require.True(t, ok)
		assert.Equal(t, contract.Invariant, v.Kind)
	}()
	wrapped(10, 20)
	t.Fatal("expected invariant violation")
}
