package engine

import "conspire/board"

// SearchInfo is a transposition-table entry: the depth it was searched
// to, the bound-tagged evaluation found, the move that produced it (used
// as a move-ordering hint even when the bound itself can't cut off), and
// optionally the principal variation below it.
type SearchInfo struct {
	DepthSearched   SearchDepth
	Evaluation      EvalBound
	BestMove        board.Move
	PrimeVariation  []board.Move
}

// TranspositionTable is the pluggable interface C3 describes: get a
// stored entry (optionally requiring a minimum depth), or insert/replace
// one. Implementations decide their own replacement policy.
type TranspositionTable interface {
	Get(hash uint64, minDepth *SearchDepth) (SearchInfo, bool)
	Update(hash uint64, depth SearchDepth, eval EvalBound, best board.Move, pv []board.Move)
	Clear()
	Hashfull() int
}

type ttSlot struct {
	hash  uint64
	info  SearchInfo
	valid bool
}

// HashTable is the default transposition table: an open-addressed slice
// sized to a power of two, indexed by the low bits of the position hash
// and verified against the full hash on lookup — the teacher's
// fixed-size bucket-array shape (see blunext-chess/engine/tt.go),
// generalized from "always replace" to the depth-preference replacement
// rule spec §4.3 requires: a new entry replaces a stored one for the
// same hash only when it was searched at least as deep; a colliding
// entry for a different position is always evicted.
type HashTable struct {
	entries []ttSlot
	mask    uint64
}

// NewHashTable allocates a table sized to roughly sizeMB megabytes,
// rounded down to the nearest power-of-two entry count.
func NewHashTable(sizeMB int) *HashTable {
	const entrySize = 64 // rough upper bound on SearchInfo's resident size
	numEntries := sizeMB * 1024 * 1024 / entrySize
	size := uint64(1)
	for size*2 <= uint64(numEntries) {
		size *= 2
	}
	if size == 0 {
		size = 1
	}
	return &HashTable{entries: make([]ttSlot, size), mask: size - 1}
}

func (t *HashTable) index(hash uint64) uint64 { return hash & t.mask }

func (t *HashTable) Get(hash uint64, minDepth *SearchDepth) (SearchInfo, bool) {
	slot := &t.entries[t.index(hash)]
	if !slot.valid || slot.hash != hash {
		return SearchInfo{}, false
	}
	if minDepth != nil && slot.info.DepthSearched.Less(*minDepth) {
		return SearchInfo{}, false
	}
	return slot.info, true
}

func (t *HashTable) Update(hash uint64, depth SearchDepth, eval EvalBound, best board.Move, pv []board.Move) {
	slot := &t.entries[t.index(hash)]
	if slot.valid && slot.hash == hash && depth.Less(slot.info.DepthSearched) {
		return
	}
	slot.valid = true
	slot.hash = hash
	slot.info = SearchInfo{DepthSearched: depth, Evaluation: eval, BestMove: best, PrimeVariation: pv}
}

func (t *HashTable) Clear() {
	for i := range t.entries {
		t.entries[i] = ttSlot{}
	}
}

// Hashfull samples up to the first 1000 entries and reports how full the
// table is in permille, the conventional UCI `info hashfull` unit.
func (t *HashTable) Hashfull() int {
	sample := len(t.entries)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if t.entries[i].valid {
			used++
		}
	}
	return used * 1000 / sample
}

// HighDepthTable wraps a HashTable but drops any insert below a
// configured minimum depth outright, and only replaces a same-position
// entry on a STRICTLY greater depth (unlike HashTable's tie-replace) —
// grounded on the original research code's high_depth_transposition
// variant, which exists to keep the table populated with only the
// deepest, most trustworthy entries at the cost of losing shallow ones.
type HighDepthTable struct {
	inner        *HashTable
	minimalDepth SearchDepth
}

func NewHighDepthTable(sizeMB int, minimalDepth SearchDepth) *HighDepthTable {
	return &HighDepthTable{inner: NewHashTable(sizeMB), minimalDepth: minimalDepth}
}

func (t *HighDepthTable) Get(hash uint64, minDepth *SearchDepth) (SearchInfo, bool) {
	return t.inner.Get(hash, minDepth)
}

func (t *HighDepthTable) Update(hash uint64, depth SearchDepth, eval EvalBound, best board.Move, pv []board.Move) {
	if depth.Less(t.minimalDepth) {
		return
	}
	slot := &t.inner.entries[t.inner.index(hash)]
	if slot.valid && slot.hash == hash && !slot.info.DepthSearched.Less(depth) {
		return
	}
	slot.valid = true
	slot.hash = hash
	slot.info = SearchInfo{DepthSearched: depth, Evaluation: eval, BestMove: best, PrimeVariation: pv}
}

func (t *HighDepthTable) Clear()        { t.inner.Clear() }
func (t *HighDepthTable) Hashfull() int { return t.inner.Hashfull() }

// NoTable is a TranspositionTable that stores nothing, useful as a
// baseline for measuring the TT's contribution to node counts.
type NoTable struct{}

func (NoTable) Get(uint64, *SearchDepth) (SearchInfo, bool)                  { return SearchInfo{}, false }
func (NoTable) Update(uint64, SearchDepth, EvalBound, board.Move, []board.Move) {}
func (NoTable) Clear()                                                       {}
func (NoTable) Hashfull() int                                                { return 0 }
