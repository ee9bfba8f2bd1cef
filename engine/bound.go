package engine

// BoundTag records which proof role a stored value plays: equal to,
// at-least, or at-most the true minimax value.
type BoundTag uint8

const (
	Exact BoundTag = iota
	LowerBound
	UpperBound
)

func (t BoundTag) String() string {
	switch t {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	default:
		return "upper"
	}
}

// EvalBound pairs a BoardEvaluation with its proof role. SetValue
// preserves the tag.
type EvalBound struct {
	Tag   BoundTag
	Value BoardEvaluation
}

func ExactBound(v BoardEvaluation) EvalBound { return EvalBound{Tag: Exact, Value: v} }
func Lower(v BoardEvaluation) EvalBound      { return EvalBound{Tag: LowerBound, Value: v} }
func Upper(v BoardEvaluation) EvalBound      { return EvalBound{Tag: UpperBound, Value: v} }

// SetValue returns a copy of b with a new value but the same tag.
func (b EvalBound) SetValue(v BoardEvaluation) EvalBound {
	return EvalBound{Tag: b.Tag, Value: v}
}

func (b EvalBound) BubbleMate() EvalBound   { return b.SetValue(b.Value.BubbleMate()) }
func (b EvalBound) UnbubbleMate() EvalBound { return b.SetValue(b.Value.UnbubbleMate()) }

func (b EvalBound) String() string {
	switch b.Tag {
	case LowerBound:
		return "≥" + b.Value.String()
	case UpperBound:
		return "≤" + b.Value.String()
	default:
		return b.Value.String()
	}
}

// PartialCompare implements the hand-written partial order over bound-
// tagged values: two bounds are comparable only when their tags and
// values jointly prove an ordering between the (unknown) true values they
// describe. ok is false when no admissible conclusion exists.
//
// Exact/Exact is always comparable (it's a total order on the values).
// Exact(a) vs Lower(b) is comparable only when a<=b (proves a<=true_y).
// Exact(a) vs Upper(b) is comparable only when a>=b (proves a>=true_y).
// Lower/Lower and Upper/Upper are never comparable: two lower bounds say
// nothing about which true value is larger.
// Lower(a) vs Upper(b) is comparable only when a>=b (true_x>=a>=b>=true_y).
// Upper(a) vs Lower(b) is comparable only when a<=b (true_x<=a<=b<=true_y).
func (b EvalBound) PartialCompare(other EvalBound) (cmp int, ok bool) {
	switch {
	case b.Tag == Exact && other.Tag == Exact:
		return b.Value.Compare(other.Value), true

	case b.Tag == Exact && other.Tag == LowerBound:
		if b.Value.LessEq(other.Value) {
			return -1, true
		}
		return 0, false

	case b.Tag == Exact && other.Tag == UpperBound:
		if b.Value.GreaterEq(other.Value) {
			return 1, true
		}
		return 0, false

	case b.Tag == LowerBound && other.Tag == Exact:
		if other.Value.LessEq(b.Value) {
			return 1, true
		}
		return 0, false

	case b.Tag == UpperBound && other.Tag == Exact:
		if other.Value.GreaterEq(b.Value) {
			return -1, true
		}
		return 0, false

	case b.Tag == LowerBound && other.Tag == UpperBound:
		if b.Value.GreaterEq(other.Value) {
			return 1, true
		}
		return 0, false

	case b.Tag == UpperBound && other.Tag == LowerBound:
		if b.Value.LessEq(other.Value) {
			return -1, true
		}
		return 0, false

	default: // Lower/Lower or Upper/Upper
		return 0, false
	}
}
