package poseidonfold

import (
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/iopattern"
)

const MaxMultiHashInputs = 256

// Hash computes the sponge hash of inputs inside a gnark circuit. For two
// inputs this is circomlib's Poseidon(a, b).
func Hash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) < 1 {
		var zero frontend.Variable
		return zero, errors.New("poseidonfold: need at least 1 input")
	}
	perm, err := NewPermutation(api, 3, params.Standard)
	if err != nil {
		var zero frontend.Variable
		return zero, err
	}
	sponge := NewSponge(perm, Compressed)
	if err := sponge.Start(iopattern.New().Absorb(len(inputs)).Squeeze(1)); err != nil {
		var zero frontend.Variable
		return zero, err
	}
	if err := sponge.Absorb(len(inputs), inputs); err != nil {
		var zero frontend.Variable
		return zero, err
	}
	out, err := sponge.Squeeze(1)
	if err != nil {
		var zero frontend.Variable
		return zero, err
	}
	if err := sponge.Finish(); err != nil {
		var zero frontend.Variable
		return zero, err
	}
	return out[0], nil
}

// MultiHash reduces inputs pairwise with Hash, carrying an odd last element
// to the next level. A single input is hashed on its own.
func MultiHash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) == 0 {
		var zero frontend.Variable
		return zero, errors.New("poseidonfold: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		var zero frontend.Variable
		return zero, errors.Errorf("poseidonfold: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}
	if len(inputs) == 1 {
		return Hash(api, inputs[0])
	}

	current := make([]frontend.Variable, len(inputs))
	copy(current, inputs)
	for len(current) > 1 {
		next := make([]frontend.Variable, 0, (len(current)+1)/2)
		for i := 0; i+1 < len(current); i += 2 {
			h, err := Hash(api, current[i], current[i+1])
			if err != nil {
				var zero frontend.Variable
				return zero, err
			}
			next = append(next, h)
		}
		if len(current)%2 == 1 {
			next = append(next, current[len(current)-1])
		}
		current = next
	}
	return current[0], nil
}
