package schedule

import (
	"fmt"

	"github.com/pkg/errors"
)

// Cursor is the position a segment resumes at: the next round, the next
// constant and the number of partial rounds already applied.
type Cursor struct {
	Round   int
	Offset  int
	Partial int
}

func (c Cursor) String() string {
	return fmt.Sprintf("round=%d offset=%d partial=%d", c.Round, c.Offset, c.Partial)
}

// Segment is the half-open round range [Start, End) of one step, together
// with the cursor counters at Start.
type Segment struct {
	Start   int
	End     int
	Offset  int
	Partial int
}

// Cursor returns the position the segment starts at.
func (seg Segment) Cursor() Cursor {
	return Cursor{Round: seg.Start, Offset: seg.Offset, Partial: seg.Partial}
}

// Len is the number of rounds in the segment.
func (seg Segment) Len() int { return seg.End - seg.Start }

func (seg Segment) String() string {
	return fmt.Sprintf("[%d, %d) offset=%d partial=%d", seg.Start, seg.End, seg.Offset, seg.Partial)
}

// CursorAt returns the cursor before round i. CursorAt(Len()) is the cursor
// after the last round.
func (s Schedule) CursorAt(i int) Cursor {
	if i < len(s.rounds) {
		r := s.rounds[i]
		partial := 0
		switch {
		case r.Kind == Partial:
			partial = r.Partial
		case r.Index > s.fullRounds/2:
			partial = s.partialRounds
		}
		return Cursor{Round: i, Offset: r.Offset, Partial: partial}
	}
	return Cursor{Round: len(s.rounds), Offset: s.NumConstants(), Partial: s.partialRounds}
}

// Advance returns the cursor after running round c.Round.
func (s Schedule) Advance(c Cursor) Cursor {
	r := s.rounds[c.Round]
	next := Cursor{Round: c.Round + 1, Offset: c.Offset + r.Constants(s.width), Partial: c.Partial}
	if r.Kind == Partial {
		next.Partial++
	}
	return next
}

// Whole is the single segment covering the full schedule.
func (s Schedule) Whole() Segment {
	seg, _ := s.Segment(0, len(s.rounds))
	return seg
}

// Segment builds the segment [start, end) with its counters.
func (s Schedule) Segment(start, end int) (Segment, error) {
	if start < 0 || end > len(s.rounds) || start >= end {
		return Segment{}, errors.Wrapf(ErrInvalidSegment, "[%d, %d) over %d rounds", start, end, len(s.rounds))
	}
	c := s.CursorAt(start)
	return Segment{Start: start, End: end, Offset: c.Offset, Partial: c.Partial}, nil
}

// Check verifies that seg lies inside the schedule and that its counters are
// the ones the schedule has at seg.Start.
func (s Schedule) Check(seg Segment) error {
	if seg.Start < 0 || seg.End > len(s.rounds) || seg.Start >= seg.End {
		return errors.Wrapf(ErrInvalidSegment, "%s over %d rounds", seg, len(s.rounds))
	}
	want := s.CursorAt(seg.Start)
	if got := seg.Cursor(); got != want {
		return errors.Wrapf(ErrCursorMismatch, "segment at %s, schedule at %s", got, want)
	}
	return nil
}

// CheckPartition verifies that segs cover every round exactly once, in order.
func (s Schedule) CheckPartition(segs []Segment) error {
	if len(segs) == 0 {
		return errors.Wrap(ErrInvalidSegment, "empty partition")
	}
	next := 0
	for i, seg := range segs {
		if seg.Start != next {
			return errors.Wrapf(ErrInvalidSegment, "segment %d starts at %d, want %d", i, seg.Start, next)
		}
		if err := s.Check(seg); err != nil {
			return errors.Wrapf(err, "segment %d", i)
		}
		next = seg.End
	}
	if next != len(s.rounds) {
		return errors.Wrapf(ErrInvalidSegment, "partition ends at %d, want %d", next, len(s.rounds))
	}
	return nil
}

// SplitAt cuts the schedule at the given interior boundaries, which must be
// strictly increasing and inside (0, Len()).
func (s Schedule) SplitAt(boundaries ...int) ([]Segment, error) {
	segs := make([]Segment, 0, len(boundaries)+1)
	start := 0
	ends := make([]int, 0, len(boundaries)+1)
	ends = append(ends, boundaries...)
	for _, b := range append(ends, len(s.rounds)) {
		seg, err := s.Segment(start, b)
		if err != nil {
			return nil, errors.Wrapf(err, "boundaries %v", boundaries)
		}
		segs = append(segs, seg)
		start = b
	}
	return segs, nil
}

// Phases splits the schedule into the first full block (with the initial
// constant addition), the middle and partial rounds, and the second full
// block with the final S-box layer.
func (s Schedule) Phases() []Segment {
	half := s.fullRounds / 2
	segs, err := s.SplitAt(half, half+1+s.partialRounds)
	if err != nil {
		panic(err) // unreachable for a schedule returned by Build
	}
	return segs
}

// Split cuts the schedule into n non-empty segments of roughly equal
// multiplication cost.
func (s Schedule) Split(n int) ([]Segment, error) {
	total := len(s.rounds)
	if n < 1 || n > total {
		return nil, errors.Wrapf(ErrInvalidSegment, "cannot split %d rounds into %d segments", total, n)
	}
	weight := 0
	for _, r := range s.rounds {
		weight += r.Cost(s.width)
	}

	boundaries := make([]int, 0, n-1)
	acc, start := 0, 0
	for k := 1; k < n; k++ {
		target := weight * k / n
		end := start + 1
		acc += s.rounds[start].Cost(s.width)
		for end < total-(n-k) && acc+s.rounds[end].Cost(s.width) <= target {
			acc += s.rounds[end].Cost(s.width)
			end++
		}
		boundaries = append(boundaries, end)
		start = end
	}
	return s.SplitAt(boundaries...)
}
