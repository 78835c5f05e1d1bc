package params

import "github.com/pkg/errors"

var (
	// ErrUnsupported is returned for a (width, strength) pair with no tables.
	ErrUnsupported = errors.New("poseidonfold: unsupported parameter set")
	// ErrMalformed is returned when a table has the wrong shape.
	ErrMalformed = errors.New("poseidonfold: malformed parameter set")
)

// Validate checks basic shape and sizes of the parameter set.
func Validate(p *Parameters) error {
	if p == nil {
		return errors.Wrap(ErrMalformed, "nil parameters")
	}
	width := p.Width
	if width < 2 {
		return errors.Wrapf(ErrMalformed, "width must be at least 2, got %d", width)
	}
	if p.Alpha != 5 {
		return errors.Wrapf(ErrMalformed, "unsupported s-box exponent %d", p.Alpha)
	}
	if p.FullRounds%2 != 0 || p.FullRounds < 2 {
		return errors.Wrapf(ErrMalformed, "full rounds must be even and at least 2, got %d", p.FullRounds)
	}
	if p.PartialRounds < 1 {
		return errors.Wrapf(ErrMalformed, "partial rounds must be positive, got %d", p.PartialRounds)
	}
	if len(p.C) != p.NumConstants() {
		return errors.Wrapf(ErrMalformed, "constant table has %d entries, want %d", len(p.C), p.NumConstants())
	}
	if err := checkSquare("M", p.M, width); err != nil {
		return err
	}
	if err := checkSquare("P", p.P, width); err != nil {
		return err
	}
	if len(p.S) != p.PartialRounds {
		return errors.Wrapf(ErrMalformed, "sparse table has %d entries, want %d", len(p.S), p.PartialRounds)
	}
	for r, s := range p.S {
		if len(s.Row) != width || len(s.Col) != width-1 {
			return errors.Wrapf(ErrMalformed, "sparse matrix %d has shape (%d, %d), want (%d, %d)",
				r, len(s.Row), len(s.Col), width, width-1)
		}
	}
	return nil
}

func checkSquare(name string, m Matrix, width int) error {
	if len(m) != width {
		return errors.Wrapf(ErrMalformed, "%s has %d rows, want %d", name, len(m), width)
	}
	for i, row := range m {
		if len(row) != width {
			return errors.Wrapf(ErrMalformed, "%s row %d has %d entries, want %d", name, i, len(row), width)
		}
	}
	return nil
}
