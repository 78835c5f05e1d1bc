// Package schedule describes the canonical round schedule of the optimized
// Poseidon permutation and how it is cut into step segments.
//
// The schedule has FullRounds+PartialRounds+1 entries: a bare constant
// addition, FullRounds/2-1 full rounds, the middle round, the partial rounds,
// FullRounds/2-1 full rounds and a closing S-box layer. Every entry records
// which slice of the constant table it consumes, so a segment starting at any
// entry can resume lookups without knowing what ran before it.
package schedule

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSchedule = errors.New("poseidonfold: invalid round schedule")
	ErrInvalidSegment  = errors.New("poseidonfold: invalid segment")
	ErrCursorMismatch  = errors.New("poseidonfold: segment cursor does not match schedule")
)

// Kind is the shape of a round.
type Kind int

const (
	// Initial adds the first t constants, nothing else.
	Initial Kind = iota
	// Full applies the S-box to every lane, adds t constants, mixes with M.
	Full
	// Middle is a full round mixing with P instead of M.
	Middle
	// Partial applies the S-box to lane 0, adds one constant, applies S[r].
	Partial
	// Final applies the S-box to every lane.
	Final
)

func (k Kind) String() string {
	switch k {
	case Initial:
		return "initial"
	case Full:
		return "full"
	case Middle:
		return "middle"
	case Partial:
		return "partial"
	case Final:
		return "final"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Round is one entry of the schedule.
type Round struct {
	Index int
	Kind  Kind
	// Offset is the first constant consumed by the round. For Final it is
	// the table length.
	Offset int
	// Partial is the sparse matrix index, -1 unless Kind is Partial.
	Partial int
}

// Constants is the number of table entries the round consumes.
func (r Round) Constants(width int) int {
	switch r.Kind {
	case Initial, Full, Middle:
		return width
	case Partial:
		return 1
	default:
		return 0
	}
}

// Cost is the number of rank-1 constraints the round adds to a circuit:
// three per S-box. Constant additions and the linear layers are free.
func (r Round) Cost(width int) int {
	switch r.Kind {
	case Full, Middle, Final:
		return 3 * width
	case Partial:
		return 3
	default:
		return 0
	}
}

// Schedule is the ordered round table of one parameter set.
type Schedule struct {
	width         int
	fullRounds    int
	partialRounds int
	rounds        []Round
}

// Build derives the schedule for the given width and round counts.
func Build(width, fullRounds, partialRounds int) (Schedule, error) {
	if width < 2 {
		return Schedule{}, errors.Wrapf(ErrInvalidSchedule, "width %d", width)
	}
	if fullRounds < 2 || fullRounds%2 != 0 {
		return Schedule{}, errors.Wrapf(ErrInvalidSchedule, "full rounds %d", fullRounds)
	}
	if partialRounds < 1 {
		return Schedule{}, errors.Wrapf(ErrInvalidSchedule, "partial rounds %d", partialRounds)
	}
	half := fullRounds / 2
	rounds := make([]Round, 0, fullRounds+partialRounds+1)
	add := func(kind Kind, offset, partial int) {
		rounds = append(rounds, Round{Index: len(rounds), Kind: kind, Offset: offset, Partial: partial})
	}

	add(Initial, 0, -1)
	for r := 0; r < half-1; r++ {
		add(Full, (r+1)*width, -1)
	}
	add(Middle, half*width, -1)
	for r := 0; r < partialRounds; r++ {
		add(Partial, (half+1)*width+r, r)
	}
	for r := 0; r < half-1; r++ {
		add(Full, (half+1)*width+partialRounds+r*width, -1)
	}
	add(Final, width*fullRounds+partialRounds, -1)

	return Schedule{
		width:         width,
		fullRounds:    fullRounds,
		partialRounds: partialRounds,
		rounds:        rounds,
	}, nil
}

func (s Schedule) Width() int         { return s.width }
func (s Schedule) FullRounds() int    { return s.fullRounds }
func (s Schedule) PartialRounds() int { return s.partialRounds }

// Len is the number of rounds.
func (s Schedule) Len() int { return len(s.rounds) }

// NumConstants is the constant table length the schedule reads.
func (s Schedule) NumConstants() int { return s.width*s.fullRounds + s.partialRounds }

// Round returns the i-th round.
func (s Schedule) Round(i int) Round { return s.rounds[i] }

// Rounds returns a copy of the round table.
func (s Schedule) Rounds() []Round {
	return append([]Round(nil), s.rounds...)
}

// Cost sums the round costs of the segment.
func (s Schedule) Cost(seg Segment) int {
	total := 0
	for _, r := range s.rounds[seg.Start:seg.End] {
		total += r.Cost(s.width)
	}
	return total
}
