package poseidonfold

import (
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

// StepCircuit proves one segment of the permutation: Out is the state
// obtained by running the rounds of Segment on In. It is the unit handed to a
// folding engine, which links the Out of a step to the In of the next one.
type StepCircuit struct {
	In  []frontend.Variable `gnark:",public"`
	Out []frontend.Variable `gnark:",public"`

	Segment  schedule.Segment `gnark:"-"`
	Strength params.Strength  `gnark:"-"`
}

// NewStepCircuit allocates the circuit of seg for the given width.
func NewStepCircuit(seg schedule.Segment, width int) *StepCircuit {
	return &StepCircuit{
		In:      make([]frontend.Variable, width),
		Out:     make([]frontend.Variable, width),
		Segment: seg,
	}
}

func (c *StepCircuit) Define(api frontend.API) error {
	if len(c.In) != len(c.Out) {
		return errors.Wrapf(ErrWidthMismatch, "in has %d variables, out has %d", len(c.In), len(c.Out))
	}
	perm, err := NewPermutation(api, len(c.In), c.Strength)
	if err != nil {
		return err
	}
	out, _, err := perm.Step(c.In, c.Segment)
	if err != nil {
		return err
	}
	for i := range out {
		api.AssertIsEqual(out[i], c.Out[i])
	}
	return nil
}

// FinalStepCircuit proves the last segment of the permutation together with
// the closing compression: Digest is MixLast of the state produced by running
// Segment on In. Its public output is the single digest, not a full state.
type FinalStepCircuit struct {
	In     []frontend.Variable `gnark:",public"`
	Digest frontend.Variable   `gnark:",public"`

	Segment  schedule.Segment `gnark:"-"`
	Strength params.Strength  `gnark:"-"`
}

// NewFinalStepCircuit allocates the terminal circuit of seg for the given
// width. seg must end at the last round of the schedule.
func NewFinalStepCircuit(seg schedule.Segment, width int) *FinalStepCircuit {
	return &FinalStepCircuit{
		In:      make([]frontend.Variable, width),
		Segment: seg,
	}
}

func (c *FinalStepCircuit) Define(api frontend.API) error {
	perm, err := NewPermutation(api, len(c.In), c.Strength)
	if err != nil {
		return err
	}
	if last := perm.Schedule().Len(); c.Segment.End != last {
		return errors.Wrapf(schedule.ErrInvalidSegment, "final segment %s does not end at round %d", c.Segment, last)
	}
	out, _, err := perm.Step(c.In, c.Segment)
	if err != nil {
		return err
	}
	digest, err := perm.Digest(out)
	if err != nil {
		return err
	}
	api.AssertIsEqual(digest, c.Digest)
	return nil
}

// HashChainStep is one link of a hash chain, Out = Hash2(In, Data). Its
// public state has a single element.
type HashChainStep struct {
	In   frontend.Variable `gnark:",public"`
	Data frontend.Variable
	Out  frontend.Variable `gnark:",public"`
}

func (c *HashChainStep) Define(api frontend.API) error {
	out, err := Hash(api, c.In, c.Data)
	if err != nil {
		return err
	}
	api.AssertIsEqual(out, c.Out)
	return nil
}
