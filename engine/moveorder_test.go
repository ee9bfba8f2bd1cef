package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conspire/board"
)

// White has two captures available: d5xc6 (pawn takes queen) and
// Ne2xc3 (knight takes pawn). MVV-LVA should rank the pawn-takes-queen
// capture first, since value(queen)-value(pawn) far exceeds
// value(pawn)-value(knight).
func TestOrderMovesRanksHigherMVVLVACapturesFirst(t *testing.T) {
	pos := mustFEN(t, "4k3/8/2q5/3P4/8/2p5/4N3/4K3 w - - 0 1")
	legal := pos.LegalMoves()

	ordered := OrderMoves(&pos, legal, board.NullMove, false)

	var pxq, nxp int = -1, -1
	for i, m := range ordered {
		if m.UCI() == "d5c6" {
			pxq = i
		}
		if m.UCI() == "e2c3" {
			nxp = i
		}
	}
	if assert.NotEqual(t, -1, pxq) && assert.NotEqual(t, -1, nxp) {
		assert.Less(t, pxq, nxp, "pawn takes queen should sort before knight takes pawn")
	}
}

func TestOrderMovesPlacesTheLegalHintMoveFirst(t *testing.T) {
	pos := mustFEN(t, "4k3/8/2q5/3P4/8/2p5/4N3/4K3 w - - 0 1")
	legal := pos.LegalMoves()

	var hint board.Move
	for _, m := range legal {
		if m.UCI() == "e2c3" {
			hint = m
		}
	}

	ordered := OrderMoves(&pos, legal, hint, false)
	assert.Equal(t, "e2c3", ordered[0].UCI(), "the hint move sorts first even though it is not the best MVV-LVA capture")
}

func TestOrderMovesCapturesOnlyDropsQuietMoves(t *testing.T) {
	pos := mustFEN(t, "4k3/8/2q5/3P4/8/2p5/4N3/4K3 w - - 0 1")
	legal := pos.LegalMoves()

	ordered := OrderMoves(&pos, legal, board.NullMove, true)

	for _, m := range ordered {
		isCapture := m.Flag == board.Capture || m.Flag == board.EnPassant || m.Flag.IsPromotion()
		assert.True(t, isCapture, "capturesOnly must exclude quiet move %s", m.UCI())
	}
	assert.Less(t, len(ordered), len(legal))
}

func TestCaptureKeyPrefersHighValueTargetOverLowValueAttacker(t *testing.T) {
	pos := mustFEN(t, "4k3/8/2q5/3P4/8/2p5/4N3/4K3 w - - 0 1")
	legal := pos.LegalMoves()

	var pxq, nxp board.Move
	for _, m := range legal {
		if m.UCI() == "d5c6" {
			pxq = m
		}
		if m.UCI() == "e2c3" {
			nxp = m
		}
	}

	assert.Greater(t, captureKey(&pos, pxq), captureKey(&pos, nxp))
}
