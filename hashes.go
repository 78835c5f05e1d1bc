package poseidonfold

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/iopattern"
)

const MaxMultiHashInputs = 256

// Hash absorbs inputs into a fresh sponge over the default permutation and
// squeezes one compressed element. For two inputs this is circomlib's
// Poseidon(a, b).
func Hash(inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) == 0 {
		return fr.Element{}, errors.New("poseidonfold: need at least 1 input")
	}
	perm, err := Default()
	if err != nil {
		return fr.Element{}, err
	}
	sponge := NewSponge(perm, Compressed)
	if err := sponge.Start(iopattern.New().Absorb(len(inputs)).Squeeze(1)); err != nil {
		return fr.Element{}, err
	}
	if err := sponge.Absorb(len(inputs), inputs); err != nil {
		return fr.Element{}, err
	}
	out, err := sponge.Squeeze(1)
	if err != nil {
		return fr.Element{}, err
	}
	if err := sponge.Finish(); err != nil {
		return fr.Element{}, err
	}
	return out[0], nil
}

func Hash1(v fr.Element) (fr.Element, error) {
	return Hash(v)
}

func Hash2(a, b fr.Element) (fr.Element, error) {
	return Hash(a, b)
}

// MultiHash reduces an arbitrary-length list with Hash2, pairing neighbours
// level by level and carrying an odd last element up unchanged. A single
// input is hashed with Hash1. Supports up to MaxMultiHashInputs inputs.
func MultiHash(inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) == 0 {
		return fr.Element{}, errors.New("poseidonfold: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		return fr.Element{}, errors.Errorf("poseidonfold: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}
	if len(inputs) == 1 {
		return Hash1(inputs[0])
	}

	current := make([]fr.Element, len(inputs))
	copy(current, inputs)
	for len(current) > 1 {
		next := make([]fr.Element, 0, (len(current)+1)/2)
		for i := 0; i+1 < len(current); i += 2 {
			h, err := Hash2(current[i], current[i+1])
			if err != nil {
				return fr.Element{}, err
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

// HashChain folds data into seed one element at a time:
// z_{i+1} = Hash2(z_i, data[i]).
func HashChain(seed fr.Element, data ...fr.Element) (fr.Element, error) {
	z := seed
	for i := range data {
		var err error
		if z, err = Hash2(z, data[i]); err != nil {
			return fr.Element{}, errors.Wrapf(err, "link %d", i)
		}
	}
	return z, nil
}
