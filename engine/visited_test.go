package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsFindsAPushedHash(t *testing.T) {
	v := NewVisitedStack(4)
	v.Push(1)
	v.Push(2)

	assert.True(t, v.Contains(1))
	assert.False(t, v.Contains(3))
}

func TestPopRemovesTheMostRecentlyPushedHash(t *testing.T) {
	v := NewVisitedStack(4)
	v.Push(1)
	v.Push(2)
	v.Pop()

	assert.False(t, v.Contains(2))
	assert.True(t, v.Contains(1))
}

func TestIsThreefoldRepetitionFalseWithFewerThanTwoPriorOccurrences(t *testing.T) {
	v := NewVisitedStack(4)
	v.Push(42)

	assert.False(t, v.IsThreefoldRepetition(42), "one prior occurrence plus this one is only twofold")
}

func TestIsThreefoldRepetitionTrueWithTwoPriorOccurrences(t *testing.T) {
	v := NewVisitedStack(4)
	v.Push(42)
	v.Push(7)
	v.Push(42)

	assert.True(t, v.IsThreefoldRepetition(42))
}

func TestIsThreefoldRepetitionIgnoresUnrelatedHashes(t *testing.T) {
	v := NewVisitedStack(4)
	v.Push(1)
	v.Push(2)
	v.Push(3)

	assert.False(t, v.IsThreefoldRepetition(4))
}
