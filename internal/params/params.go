package params

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

type key struct {
	width    int
	strength Strength
}

type source struct {
	fullRounds    int
	partialRounds int
	c             []string
	m             [][]string
}

var sources = map[key]source{
	{width: 3, strength: Standard}: {fullRounds: 8, partialRounds: 57, c: bn254T3C, m: bn254T3M},
}

// New builds the tables for the given width and strength. Every call returns a
// fresh Parameters value owned by the caller.
func New(width int, strength Strength) (*Parameters, error) {
	src, ok := sources[key{width: width, strength: strength}]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "width %d, strength %s", width, strength)
	}
	c, err := parseVector(src.c)
	if err != nil {
		return nil, errors.Wrap(err, "round constants")
	}
	m := make(Matrix, len(src.m))
	for i, row := range src.m {
		if m[i], err = parseVector(row); err != nil {
			return nil, errors.Wrapf(err, "matrix row %d", i)
		}
	}
	if err := checkSquare("M", m, width); err != nil {
		return nil, err
	}
	pm, sparse, err := Factorize(m, src.partialRounds)
	if err != nil {
		return nil, err
	}
	p := &Parameters{
		Width:         width,
		Strength:      strength,
		FullRounds:    src.fullRounds,
		PartialRounds: src.partialRounds,
		Alpha:         5,
		C:             c,
		M:             m,
		P:             pm,
		S:             sparse,
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Supported lists the widths with tables for the given strength.
func Supported(strength Strength) []int {
	var out []int
	for k := range sources {
		if k.strength == strength {
			out = append(out, k.width)
		}
	}
	return out
}

func parseVector(in []string) ([]fr.Element, error) {
	out := make([]fr.Element, len(in))
	for i, s := range in {
		if _, err := out[i].SetString(s); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "entry %d (%s): %v", i, s, err)
		}
	}
	return out, nil
}
