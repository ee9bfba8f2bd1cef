package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conspire/board"
)

func TestHashTableTiesReplaceAtEqualDepth(t *testing.T) {
	tt := NewHashTable(1)
	tt.Update(1, Depth(3), ExactBound(PieceScoreEval(10)), board.NullMove, nil)
	tt.Update(1, Depth(3), ExactBound(PieceScoreEval(20)), board.NullMove, nil)

	info, ok := tt.Get(1, nil)
	require.True(t, ok)
	assert.Equal(t, Centipawns(20), info.Evaluation.Value.Score())
}

func TestHashTableRejectsShallowerReplacement(t *testing.T) {
	tt := NewHashTable(1)
	tt.Update(1, Depth(5), ExactBound(PieceScoreEval(10)), board.NullMove, nil)
	tt.Update(1, Depth(2), ExactBound(PieceScoreEval(99)), board.NullMove, nil)

	info, ok := tt.Get(1, nil)
	require.True(t, ok)
	assert.Equal(t, Centipawns(10), info.Evaluation.Value.Score())
}

func TestHashTableMinDepthFiltersLookup(t *testing.T) {
	tt := NewHashTable(1)
	tt.Update(1, Depth(2), ExactBound(PieceScoreEval(10)), board.NullMove, nil)

	req := Depth(5)
	_, ok := tt.Get(1, &req)
	assert.False(t, ok, "an entry searched shallower than requested should miss")
}

func TestHighDepthTableDropsShallowInserts(t *testing.T) {
	tt := NewHighDepthTable(1, Depth(4))
	tt.Update(1, Depth(2), ExactBound(PieceScoreEval(10)), board.NullMove, nil)

	_, ok := tt.Get(1, nil)
	assert.False(t, ok, "insert below the minimal depth should be dropped entirely")
}

func TestHighDepthTableRequiresStrictlyGreaterDepth(t *testing.T) {
	tt := NewHighDepthTable(1, Depth(1))
	tt.Update(1, Depth(5), ExactBound(PieceScoreEval(10)), board.NullMove, nil)
	tt.Update(1, Depth(5), ExactBound(PieceScoreEval(20)), board.NullMove, nil)

	info, ok := tt.Get(1, nil)
	require.True(t, ok)
	assert.Equal(t, Centipawns(10), info.Evaluation.Value.Score(), "equal depth must not replace in HighDepthTable")
}

func TestNoTableStoresNothing(t *testing.T) {
	var tt NoTable
	tt.Update(1, Depth(5), ExactBound(PieceScoreEval(10)), board.NullMove, nil)
	_, ok := tt.Get(1, nil)
	assert.False(t, ok)
}

func TestHashfullReflectsOccupancy(t *testing.T) {
	tt := NewHashTable(1)
	assert.Equal(t, 0, tt.Hashfull())
	tt.Update(1, Depth(3), ExactBound(PieceScoreEval(10)), board.NullMove, nil)
	assert.Greater(t, tt.Hashfull(), 0)
}
