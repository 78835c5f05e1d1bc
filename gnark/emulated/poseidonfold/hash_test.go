package poseidonfold

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

// Circuit applying one round at an arbitrary cursor.
type roundCircuit struct {
	State [3]Element

	Kind schedule.Kind   `gnark:"-"`
	At   schedule.Cursor `gnark:"-"`
}

func (c *roundCircuit) Define(api frontend.API) error {
	perm, err := NewPermutation(api, 3, params.Standard)
	if err != nil {
		return err
	}
	_, err = perm.round([]*Element{&c.State[0], &c.State[1], &c.State[2]}, c.Kind, c.At)
	return err
}

type shortStepCircuit struct {
	State [2]Element
}

func (c *shortStepCircuit) Define(api frontend.API) error {
	perm, err := NewPermutation(api, 3, params.Standard)
	if err != nil {
		return err
	}
	_, _, err = perm.Step([]*Element{&c.State[0], &c.State[1]}, perm.Schedule().Phases()[0])
	return err
}

func compileRound(kind schedule.Kind, at schedule.Cursor) error {
	_, err := frontend.Compile(ecc.BLS12_377.ScalarField(), r1cs.NewBuilder, &roundCircuit{Kind: kind, At: at}, frontend.IgnoreUnconstrainedInputs())
	return err
}

func TestRoundRejectsUnknownKind(t *testing.T) {
	err := compileRound(schedule.Kind(99), schedule.Cursor{Round: 5, Offset: 15})
	require.ErrorIs(t, err, schedule.ErrInvalidSchedule)
}

func TestRoundChecksConstantOffsets(t *testing.T) {
	// 81 constants for width 3, the last one read by the final full round
	require.NoError(t, compileRound(schedule.Partial, schedule.Cursor{Round: 5, Offset: 15, Partial: 0}))
	require.ErrorIs(t, compileRound(schedule.Partial, schedule.Cursor{Round: 5, Offset: 81, Partial: 0}), params.ErrMalformed)
	require.ErrorIs(t, compileRound(schedule.Full, schedule.Cursor{Round: 1, Offset: 80}), params.ErrMalformed)
	require.ErrorIs(t, compileRound(schedule.Partial, schedule.Cursor{Round: 5, Offset: 15, Partial: 57}), params.ErrMalformed)
}

func TestStepRejectsWrongWidth(t *testing.T) {
	_, err := frontend.Compile(ecc.BLS12_377.ScalarField(), r1cs.NewBuilder, &shortStepCircuit{})
	require.ErrorIs(t, err, ErrWidthMismatch)
}
