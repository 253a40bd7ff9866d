package models

// PairState describes which sides of a candidate pair are populated
type PairState string

const (
	// PairMatched means both sides carry an entry at the same logical position
	PairMatched PairState = "matched"
	// PairLeftOnly means the entry exists only under the left root
	PairLeftOnly PairState = "left_only"
	// PairRightOnly means the entry exists only under the right root
	PairRightOnly PairState = "right_only"
)

// CandidatePair is a left/right correspondence produced by the tree
// walker. Only file pairs in the matched state are escalated to content
// comparison; directory pairs never carry equivalence information.
type CandidatePair struct {
	State PairState
	Left  *Entry
	Right *Entry
}

// Matched builds a pair with entries on both sides
func Matched(left, right *Entry) CandidatePair {
	return CandidatePair{State: PairMatched, Left: left, Right: right}
}

// LeftOnly builds a pair present only under the left root
func LeftOnly(left *Entry) CandidatePair {
	return CandidatePair{State: PairLeftOnly, Left: left}
}

// RightOnly builds a pair present only under the right root
func RightOnly(right *Entry) CandidatePair {
	return CandidatePair{State: PairRightOnly, Right: right}
}

// Kind returns the node kind of the populated side(s)
func (p CandidatePair) Kind() Kind {
	if p.Left != nil {
		return p.Left.Kind
	}
	return p.Right.Kind
}

// RelativePath returns the display path of the pair, preferring the left side
func (p CandidatePair) RelativePath() string {
	if p.Left != nil {
		return p.Left.RelativePath
	}
	return p.Right.RelativePath
}
