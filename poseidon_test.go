package poseidonfold

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/schedule"
)

func mustElement(t *testing.T, s string) fr.Element {
	t.Helper()
	var e fr.Element
	if _, err := e.SetString(s); err != nil {
		t.Fatalf("parse element: %v", err)
	}
	return e
}

func mustPermutation(t *testing.T) *Permutation {
	t.Helper()
	perm, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	return perm
}

func elements(vs ...uint64) []fr.Element {
	out := make([]fr.Element, len(vs))
	for i, v := range vs {
		out[i].SetUint64(v)
	}
	return out
}

func randomState(r *rand.Rand, width int) []fr.Element {
	out := make([]fr.Element, width)
	for i := range out {
		out[i].SetUint64(r.Uint64())
		var hi fr.Element
		hi.SetUint64(r.Uint64())
		hi.Mul(&hi, &hi)
		out[i].Add(&out[i], &hi)
	}
	return out
}

func equalStates(a, b []fr.Element) bool {
	return slices.EqualFunc(a, b, func(x, y fr.Element) bool { return x.Equal(&y) })
}

// the raw state of Poseidon([0, 1, 2]) before the closing dense mix
var permuted012 = []string{
	"6176704045292540378730379391172746594406271624929750877394023723269992889426",
	"8404267634607155668686954859271107533742040104527017853416374145282420730939",
	"16098470054661776683411735455936723008066059484508542261607564566585028512786",
}

const digest12 = "7853200120776062878684798364095072458815029376092732009249414926327459813530"

func TestPermuteVector(t *testing.T) {
	perm := mustPermutation(t)
	out, err := perm.Permute(elements(0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range permuted012 {
		want := mustElement(t, s)
		if !out[i].Equal(&want) {
			t.Fatalf("state[%d] mismatch\nexpected %s\ngot      %s", i, s, out[i].String())
		}
	}
	digest, err := perm.Digest(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := mustElement(t, digest12); !digest.Equal(&want) {
		t.Fatalf("digest mismatch\nexpected %s\ngot      %s", digest12, digest.String())
	}
}

func TestPermuteDoesNotModifyInput(t *testing.T) {
	perm := mustPermutation(t)
	in := elements(0, 1, 2)
	if _, err := perm.Permute(in); err != nil {
		t.Fatal(err)
	}
	if !equalStates(in, elements(0, 1, 2)) {
		t.Fatal("input state was modified")
	}
}

func TestSplitMatchesUnsplit(t *testing.T) {
	perm := mustPermutation(t)
	s := perm.Schedule()
	r := rand.New(rand.NewPCG(1, 2))
	state := randomState(r, perm.Width())

	want, err := perm.Permute(state)
	if err != nil {
		t.Fatal(err)
	}

	partitions := map[string][]schedule.Segment{"phases": s.Phases()}
	fourWay, err := s.SplitAt(4, 62, 65)
	if err != nil {
		t.Fatal(err)
	}
	partitions["four-way"] = fourWay
	for n := 1; n <= 8; n++ {
		segs, err := s.Split(n)
		if err != nil {
			t.Fatal(err)
		}
		partitions[fmt.Sprintf("balanced-%d", n)] = segs
	}
	for i := 0; i < 20; i++ {
		var boundaries []int
		for b := 1; b < s.Len(); b++ {
			if r.IntN(6) == 0 {
				boundaries = append(boundaries, b)
			}
		}
		segs, err := s.SplitAt(boundaries...)
		if err != nil {
			t.Fatal(err)
		}
		partitions[fmt.Sprintf("random-%d", i)] = segs
	}
	one, err := s.Split(s.Len())
	if err != nil {
		t.Fatal(err)
	}
	partitions["round-by-round"] = one

	for name, segs := range partitions {
		t.Run(name, func(t *testing.T) {
			got, err := perm.Chain(state, segs)
			if err != nil {
				t.Fatal(err)
			}
			if !equalStates(got, want) {
				t.Fatalf("chained state differs from the unsplit permutation for %v", segs)
			}
		})
	}
}

func TestStepReturnsNextCursor(t *testing.T) {
	perm := mustPermutation(t)
	s := perm.Schedule()
	state := elements(0, 1, 2)
	for _, seg := range s.Phases() {
		var (
			cur schedule.Cursor
			err error
		)
		state, cur, err = perm.Step(state, seg)
		if err != nil {
			t.Fatal(err)
		}
		if cur != s.CursorAt(seg.End) {
			t.Fatalf("segment %s ended at %s, want %s", seg, cur, s.CursorAt(seg.End))
		}
	}
}

func TestDeterminism(t *testing.T) {
	perm := mustPermutation(t)
	other, err := New(3, Standard)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 8; i++ {
		state := randomState(r, 3)
		a, err := perm.Permute(state)
		if err != nil {
			t.Fatal(err)
		}
		b, err := other.Permute(state)
		if err != nil {
			t.Fatal(err)
		}
		if !equalStates(a, b) {
			t.Fatalf("two permutations disagree on %v", state)
		}
	}
}

func TestSigmaMatchesExp(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for _, x := range append(randomState(r, 16), elements(0, 1)...) {
		var want fr.Element
		want.Exp(x, big.NewInt(5))
		if got := Sigma(x); !got.Equal(&want) {
			t.Fatalf("sigma(%s) = %s, want %s", x.String(), got.String(), want.String())
		}
	}
}

func TestMixIsLinear(t *testing.T) {
	perm := mustPermutation(t)
	r := rand.New(rand.NewPCG(7, 8))
	s1, s2 := randomState(r, 3), randomState(r, 3)
	ab := randomState(r, 2)
	a, b := ab[0], ab[1]

	for _, m := range []Matrix{perm.MDS(), perm.MiddleMatrix()} {
		combined := make([]fr.Element, 3)
		for i := range combined {
			var x, y fr.Element
			x.Mul(&a, &s1[i])
			y.Mul(&b, &s2[i])
			combined[i].Add(&x, &y)
		}
		got, err := Mix(combined, m)
		if err != nil {
			t.Fatal(err)
		}
		m1, err := Mix(s1, m)
		if err != nil {
			t.Fatal(err)
		}
		m2, err := Mix(s2, m)
		if err != nil {
			t.Fatal(err)
		}
		for i := range got {
			var x, y, want fr.Element
			x.Mul(&a, &m1[i])
			y.Mul(&b, &m2[i])
			want.Add(&x, &y)
			if !got[i].Equal(&want) {
				t.Fatalf("mix is not linear at position %d", i)
			}
		}
	}
}

func TestMixLastMatchesMix(t *testing.T) {
	perm := mustPermutation(t)
	state := randomState(rand.New(rand.NewPCG(9, 10)), 3)
	full, err := Mix(state, perm.MDS())
	if err != nil {
		t.Fatal(err)
	}
	for i := range full {
		got, err := MixLast(state, perm.MDS(), i)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(&full[i]) {
			t.Fatalf("mix last row %d differs from mix", i)
		}
	}
}

func TestSparseMatchesDense(t *testing.T) {
	perm := mustPermutation(t)
	r := rand.New(rand.NewPCG(11, 12))
	for round := 0; round < perm.Schedule().PartialRounds(); round++ {
		state := randomState(r, 3)
		sparse, err := perm.SparseMatrix(round)
		if err != nil {
			t.Fatal(err)
		}
		want, err := Mix(state, sparse.Dense())
		if err != nil {
			t.Fatal(err)
		}
		got, err := perm.MixS(state, round)
		if err != nil {
			t.Fatal(err)
		}
		if !equalStates(got, want) {
			t.Fatalf("sparse and dense paths differ at partial round %d", round)
		}
	}
}

// TestPartialBlockMatchesDenseLayers checks that the middle matrix followed by
// the sparse matrices acts on a state like rp+1 applications of M.
func TestPartialBlockMatchesDenseLayers(t *testing.T) {
	perm := mustPermutation(t)
	state := randomState(rand.New(rand.NewPCG(13, 14)), 3)
	m := perm.MDS()

	sparseState, err := Mix(state, perm.MiddleMatrix())
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < perm.Schedule().PartialRounds(); r++ {
		sparseState, err = perm.MixS(sparseState, r)
		if err != nil {
			t.Fatal(err)
		}
	}
	denseState := state
	for r := 0; r <= perm.Schedule().PartialRounds(); r++ {
		if denseState, err = Mix(denseState, m); err != nil {
			t.Fatal(err)
		}
	}
	if !equalStates(sparseState, denseState) {
		t.Fatal("linear part of the partial block differs")
	}
}

func TestWalkRoundContinuity(t *testing.T) {
	perm := mustPermutation(t)
	s := perm.Schedule()
	segs, err := s.Split(5)
	if err != nil {
		t.Fatal(err)
	}

	var consumed []int
	next := 0
	state := elements(0, 1, 2)
	for _, seg := range segs {
		var end schedule.Cursor
		state, end, err = perm.Walk(state, seg, func(r schedule.Round, at schedule.Cursor, _ []fr.Element) {
			if r.Index != next {
				t.Fatalf("round %d ran, want %d", r.Index, next)
			}
			if at.Offset != r.Offset {
				t.Fatalf("round %d read constants at %d, table expects %d", r.Index, at.Offset, r.Offset)
			}
			if r.Kind == schedule.Partial && at.Partial != r.Partial {
				t.Fatalf("round %d used sparse matrix %d, want %d", r.Index, at.Partial, r.Partial)
			}
			for i := 0; i < r.Constants(s.Width()); i++ {
				consumed = append(consumed, at.Offset+i)
			}
			next++
		})
		if err != nil {
			t.Fatal(err)
		}
		if end.Round != seg.End {
			t.Fatalf("segment %s ended at round %d", seg, end.Round)
		}
	}
	if next != s.Len() {
		t.Fatalf("ran %d rounds, want %d", next, s.Len())
	}
	for i, c := range consumed {
		if c != i {
			t.Fatalf("constant %d consumed at position %d", c, i)
		}
	}
	if len(consumed) != len(perm.Constants()) {
		t.Fatalf("consumed %d constants, table has %d", len(consumed), len(perm.Constants()))
	}
}

func TestStepErrors(t *testing.T) {
	perm := mustPermutation(t)
	s := perm.Schedule()
	seg, err := s.Segment(10, 20)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := perm.Step(elements(1, 2), seg); !errors.Is(err, ErrWidthMismatch) {
		t.Fatalf("expected width mismatch, got %v", err)
	}
	drifted := seg
	drifted.Offset++
	if _, _, err := perm.Step(elements(0, 1, 2), drifted); !errors.Is(err, schedule.ErrCursorMismatch) {
		t.Fatalf("expected cursor mismatch, got %v", err)
	}
	if _, _, err := perm.Step(elements(0, 1, 2), schedule.Segment{Start: 60, End: 70}); !errors.Is(err, schedule.ErrInvalidSegment) {
		t.Fatalf("expected invalid segment, got %v", err)
	}

	phases := s.Phases()
	if _, err := perm.Chain(elements(0, 1, 2), []schedule.Segment{phases[0], phases[2]}); !errors.Is(err, schedule.ErrCursorMismatch) {
		t.Fatalf("expected a gap to be rejected, got %v", err)
	}
	if _, err := perm.Chain(elements(0, 1, 2), nil); !errors.Is(err, schedule.ErrInvalidSegment) {
		t.Fatalf("expected empty chain to be rejected, got %v", err)
	}
}

func TestPrimitiveErrors(t *testing.T) {
	perm := mustPermutation(t)
	state := elements(0, 1, 2)
	n := len(perm.Constants())

	if _, err := perm.Ark(state, n-2); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected out of range constants, got %v", err)
	}
	if _, err := perm.Ark(state, n-3); err != nil {
		t.Fatalf("last full constant row: %v", err)
	}
	if _, err := perm.MixS(state, perm.Schedule().PartialRounds()); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected missing sparse matrix, got %v", err)
	}
	if _, err := MixLast(state, perm.MDS(), 3); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected bad output row, got %v", err)
	}
	if _, err := Mix(elements(1, 2), perm.MDS()); !errors.Is(err, ErrWidthMismatch) {
		t.Fatalf("expected width mismatch, got %v", err)
	}
	if _, err := New(3, Strengthened); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported strength, got %v", err)
	}
	if _, err := New(4, Standard); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported width, got %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	perm := mustPermutation(t)
	m := perm.MDS()
	m[0][0].SetUint64(7)
	c := perm.Constants()
	c[0].SetUint64(7)

	out, err := perm.Permute(elements(0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if want := mustElement(t, permuted012[0]); !out[0].Equal(&want) {
		t.Fatal("modifying a returned table changed the permutation")
	}
}

func TestRoundRejectsBadCursor(t *testing.T) {
	perm := mustPermutation(t)
	state := elements(0, 1, 2)

	if _, err := perm.round(state, schedule.Kind(99), schedule.Cursor{Round: 5, Offset: 15}); !errors.Is(err, schedule.ErrInvalidSchedule) {
		t.Fatalf("unknown kind: %v", err)
	}
	for _, at := range []schedule.Cursor{
		{Round: 5, Offset: 81},
		{Round: 5, Offset: 15, Partial: 57},
	} {
		if _, err := perm.round(state, schedule.Partial, at); !errors.Is(err, ErrMalformed) {
			t.Fatalf("partial round at %s: %v", at, err)
		}
	}
	if _, err := perm.round(state, schedule.Full, schedule.Cursor{Round: 1, Offset: 80}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("full round past the table: %v", err)
	}
}
