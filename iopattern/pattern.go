// Package iopattern declares the absorb/squeeze sequence of a sponge session
// up front and tracks calls against it.
package iopattern

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPattern    = errors.New("poseidonfold: invalid io pattern")
	ErrPatternViolation  = errors.New("poseidonfold: call violates io pattern")
	ErrPatternIncomplete = errors.New("poseidonfold: io pattern not fully consumed")
	ErrSessionAborted    = errors.New("poseidonfold: sponge session aborted")
)

// Kind is the direction of one operation.
type Kind int

const (
	OpAbsorb Kind = iota
	OpSqueeze
)

func (k Kind) String() string {
	switch k {
	case OpAbsorb:
		return "A"
	case OpSqueeze:
		return "S"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op absorbs or squeezes N elements.
type Op struct {
	Kind Kind
	N    int
}

func (op Op) String() string { return fmt.Sprintf("%s%d", op.Kind, op.N) }

// Pattern is an ordered list of operations.
//
//	p := iopattern.New().Absorb(2).Squeeze(1)
type Pattern []Op

// New returns an empty pattern.
func New() Pattern { return nil }

// Absorb appends an absorb of n elements.
func (p Pattern) Absorb(n int) Pattern { return p.push(Op{Kind: OpAbsorb, N: n}) }

// Squeeze appends a squeeze of n elements.
func (p Pattern) Squeeze(n int) Pattern { return p.push(Op{Kind: OpSqueeze, N: n}) }

func (p Pattern) push(op Op) Pattern {
	out := make(Pattern, len(p), len(p)+1)
	copy(out, p)
	return append(out, op)
}

// Validate rejects empty patterns and non-positive counts.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return errors.Wrap(ErrInvalidPattern, "empty pattern")
	}
	for i, op := range p {
		if op.Kind != OpAbsorb && op.Kind != OpSqueeze {
			return errors.Wrapf(ErrInvalidPattern, "op %d has kind %s", i, op.Kind)
		}
		if op.N < 1 {
			return errors.Wrapf(ErrInvalidPattern, "op %d (%s) has non-positive length", i, op)
		}
	}
	return nil
}

// Normalize merges adjacent operations of the same kind.
func (p Pattern) Normalize() Pattern {
	var out Pattern
	for _, op := range p {
		if n := len(out); n > 0 && out[n-1].Kind == op.Kind {
			out[n-1].N += op.N
			continue
		}
		out = append(out, op)
	}
	return out
}

// Absorbed is the total number of absorbed elements.
func (p Pattern) Absorbed() int { return p.count(OpAbsorb) }

// Squeezed is the total number of squeezed elements.
func (p Pattern) Squeezed() int { return p.count(OpSqueeze) }

func (p Pattern) count(kind Kind) int {
	total := 0
	for _, op := range p {
		if op.Kind == kind {
			total += op.N
		}
	}
	return total
}

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, op := range p {
		parts[i] = op.String()
	}
	return strings.Join(parts, ",")
}
