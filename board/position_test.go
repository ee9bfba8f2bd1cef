package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPositionLegalMoveCount(t *testing.T) {
	pos := StartPosition()
	moves := pos.LegalMoves()
	assert.Len(t, moves, 20)
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/4K2R w Kkq - 0 1",
		"8/8/8/4p1K1/2k1P3/8/8/8 b - - 0 1",
	}
	for _, fen := range fens {
		pos, err := FromFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, pos.FEN())
	}
}

func TestApplyMoveUpdatesHashIncrementally(t *testing.T) {
	pos := StartPosition()
	moved, err := pos.ApplyUCIMove("e2e4")
	require.NoError(t, err)

	fromScratch, err := FromFEN(moved.FEN())
	require.NoError(t, err)
	assert.Equal(t, fromScratch.Hash, moved.Hash)
}

func TestCastlingRelocatesRook(t *testing.T) {
	pos, err := FromFEN("r3k2r/8/8/8/8/8/8/4K2R w Kkq - 0 1")
	require.NoError(t, err)
	moved, err := pos.ApplyUCIMove("e1g1")
	require.NoError(t, err)
	_, color, ok := moved.PieceAt(NewSquare(5, 0))
	require.True(t, ok)
	assert.Equal(t, White, color)
	assert.False(t, moved.All.IsBitSet(int(NewSquare(7, 0))))
}

func TestMateInOnePosition(t *testing.T) {
	pos, err := FromFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	require.NoError(t, err)
	after, err := pos.ApplyUCIMove("a1a8")
	require.NoError(t, err)
	legal := after.LegalMoves()
	assert.Equal(t, Checkmate, after.GameStatus(legal))
}

func TestStalemateDetected(t *testing.T) {
	pos, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	legal := pos.LegalMoves()
	assert.Equal(t, Stalemate, pos.GameStatus(legal))
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/8/4p3/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)
	moved, err := pos.ApplyUCIMove("d2d4")
	require.NoError(t, err)
	assert.Equal(t, NewSquare(3, 2), moved.EnPassant)
	captured, err := moved.ApplyUCIMove("e4d3")
	require.NoError(t, err)
	_, _, ok := captured.PieceAt(NewSquare(3, 3))
	assert.False(t, ok, "captured pawn should be removed")
}
