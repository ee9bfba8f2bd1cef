package board

// Zobrist hashing: a random 64-bit number is assigned to every
// (piece, color, square) triple, to the side-to-move flag, to each
// castling-right bit, and to each en-passant file. A position's hash is
// the XOR of the numbers for everything present; XOR is its own inverse,
// so incremental updates on ApplyMove only need to toggle what changed.

var zobristPieces [2][6][64]uint64
var zobristSideToMove uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64

func init() {
	rng := splitmix64{state: 0x9E3779B97F4A7C15}
	for c := 0; c < 2; c++ {
		for p := 0; p < 6; p++ {
			for sq := 0; sq < 64; sq++ {
				zobristPieces[c][p][sq] = rng.next()
			}
		}
	}
	zobristSideToMove = rng.next()
	for i := range zobristCastle {
		zobristCastle[i] = rng.next()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.next()
	}
}

// splitmix64 is a small, fast, deterministic PRNG used only to seed the
// fixed Zobrist tables at process start; determinism keeps hashes stable
// across runs, which matters for reproducing recorded telemetry.
type splitmix64 struct{ state uint64 }

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func computeZobristFromScratch(p *Position) uint64 {
	var h uint64
	for c := 0; c < 2; c++ {
		for pc := Pawn; pc <= King; pc++ {
			bb := p.Pieces[c][pc]
			for bb != 0 {
				var idx int
				idx, bb = bb.PopLSB()
				h ^= zobristPieces[c][pc][idx]
			}
		}
	}
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	h ^= zobristCastle[p.Castle]
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	return h
}

// computeZobristIncremental derives next's hash from prev's by toggling
// only what ApplyMove changed, rather than rescanning every bitboard.
func computeZobristIncremental(prevHash uint64, prev, next Position, m Move, captured Piece, capturedSq Square) uint64 {
	h := prevHash
	us := prev.SideToMove
	them := us.Other()

	h ^= zobristPieces[us][m.Piece][m.From]
	destPiece := m.Piece
	if m.Flag.IsPromotion() {
		destPiece = m.Flag.PromotedPiece()
	}
	h ^= zobristPieces[us][destPiece][m.To]

	if captured != NoPiece {
		h ^= zobristPieces[them][captured][capturedSq]
	}

	if m.Flag == CastleKingside || m.Flag == CastleQueenside {
		rookFrom, rookTo := castleRookSquares(us, m.Flag)
		h ^= zobristPieces[us][Rook][rookFrom]
		h ^= zobristPieces[us][Rook][rookTo]
	}

	h ^= zobristCastle[prev.Castle]
	h ^= zobristCastle[next.Castle]

	if prev.EnPassant != NoSquare {
		h ^= zobristEnPassant[prev.EnPassant.File()]
	}
	if next.EnPassant != NoSquare {
		h ^= zobristEnPassant[next.EnPassant.File()]
	}

	h ^= zobristSideToMove
	return h
}
