package engine

// VisitedStack is the search thread's own stack of position hashes along
// the current root-to-leaf path. It is never shared across searches and
// exists purely to detect repetition and to suppress transposition-table
// reuse for a position already on the current path (reusing a TT entry
// there risks drifting mate distances across the cycle).
type VisitedStack struct {
	hashes []uint64
}

func NewVisitedStack(capacity int) *VisitedStack {
	return &VisitedStack{hashes: make([]uint64, 0, capacity)}
}

func (v *VisitedStack) Push(hash uint64) { v.hashes = append(v.hashes, hash) }
func (v *VisitedStack) Pop()             { v.hashes = v.hashes[:len(v.hashes)-1] }

// Contains reports whether hash already appears on the current path.
func (v *VisitedStack) Contains(hash uint64) bool {
	for _, h := range v.hashes {
		if h == hash {
			return true
		}
	}
	return false
}

// IsThreefoldRepetition reports whether hash (the position about to be
// evaluated) has already occurred at least twice earlier on the path —
// i.e. this occurrence would be its third, a draw by repetition.
func (v *VisitedStack) IsThreefoldRepetition(hash uint64) bool {
	count := 1
	for _, h := range v.hashes {
		if h == hash {
			count++
		}
	}
	return count >= 3
}
