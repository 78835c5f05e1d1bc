package poseidonfold

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/test"

	emposeidon "github.com/vocdoni/poseidonfold/gnark/emulated/poseidonfold"
	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

type emuHashCircuit struct {
	Inputs   []emposeidon.Element
	Expected emposeidon.Element `gnark:",public"`
}

func (c *emuHashCircuit) Define(api frontend.API) error {
	field, err := emulated.NewField[emposeidon.FrParams](api)
	if err != nil {
		return err
	}
	out, err := emposeidon.Hash(api, c.Inputs...)
	if err != nil {
		return err
	}
	field.AssertIsEqual(&out, &c.Expected)
	return nil
}

type emuStepCircuit struct {
	In  [3]emposeidon.Element `gnark:",public"`
	Out [3]emposeidon.Element `gnark:",public"`

	Segment schedule.Segment `gnark:"-"`
}

func (c *emuStepCircuit) Define(api frontend.API) error {
	perm, err := emposeidon.NewPermutation(api, 3, Standard)
	if err != nil {
		return err
	}
	in := make([]*emposeidon.Element, len(c.In))
	for i := range c.In {
		in[i] = &c.In[i]
	}
	out, _, err := perm.Step(in, c.Segment)
	if err != nil {
		return err
	}
	for i := range out {
		perm.Field().AssertIsEqual(out[i], &c.Out[i])
	}
	return nil
}

func TestEmulatedHashMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)
	native, err := Hash2(elements(1)[0], elements(2)[0])
	if err != nil {
		t.Fatal(err)
	}

	ref := bigIntHash(t, elements(0, 1, 2))
	var refEl fr.Element
	refEl.SetBigInt(ref)
	if !native.Equal(&refEl) {
		t.Fatalf("native vs bigint mismatch: %s vs %s", native.String(), refEl.String())
	}

	witness := emuHashCircuit{
		Inputs:   []emposeidon.Element{valueOf(elements(1)[0]), valueOf(elements(2)[0])},
		Expected: valueOf(native),
	}
	assert.ProverSucceeded(
		&emuHashCircuit{Inputs: make([]emposeidon.Element, 2)},
		&witness,
		test.WithCurves(ecc.BLS12_377),
		test.WithBackends(backend.GROTH16),
	)
}

func TestEmulatedHashSeveralChunks(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		inputs := make([]fr.Element, n)
		for i := range inputs {
			inputs[i].SetUint64(uint64(10 + i))
		}
		native, err := Hash(inputs...)
		if err != nil {
			t.Fatal(err)
		}
		witness := emuHashCircuit{Inputs: make([]emposeidon.Element, n), Expected: valueOf(native)}
		for i := range inputs {
			witness.Inputs[i] = valueOf(inputs[i])
		}
		err = test.IsSolved(&emuHashCircuit{Inputs: make([]emposeidon.Element, n)}, &witness, ecc.BLS12_377.ScalarField())
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
	}
}

func TestEmulatedStepMatchesNative(t *testing.T) {
	perm := mustPermutation(t)
	state := elements(0, 1, 2)
	for _, seg := range perm.Schedule().Phases() {
		next, _, err := perm.Step(state, seg)
		if err != nil {
			t.Fatal(err)
		}
		witness := emuStepCircuit{Segment: seg}
		for i := range state {
			witness.In[i] = valueOf(state[i])
			witness.Out[i] = valueOf(next[i])
		}
		if err := test.IsSolved(&emuStepCircuit{Segment: seg}, &witness, ecc.BLS12_377.ScalarField()); err != nil {
			t.Fatalf("segment %s: %v", seg, err)
		}
		state = next
	}

	want := bigIntPermute(t, elements(0, 1, 2))
	for i := range state {
		var e fr.Element
		e.SetBigInt(want[i])
		if !state[i].Equal(&e) {
			t.Fatalf("state[%d]: chained %s, bigint %s", i, state[i].String(), e.String())
		}
	}
}

func valueOf(e fr.Element) emposeidon.Element {
	return emulated.ValueOf[emposeidon.FrParams](e.BigInt(new(big.Int)))
}

// Reference bigint implementation that walks the rounds phase by phase
// without the schedule, to sanity-check offsets and tables.
func bigIntPermute(t *testing.T, in []fr.Element) []*big.Int {
	t.Helper()
	p, err := params.New(3, params.Standard)
	if err != nil {
		t.Fatal(err)
	}
	mod := fr.Modulus()
	width, half := p.Width, p.FullRounds/2
	c := elemsToBig(p.C)

	state := elemsToBig(in)
	addConstants(state, c[:width], mod)
	for r := 0; r < half-1; r++ {
		sboxBig(state, mod)
		addConstants(state, c[(r+1)*width:], mod)
		state = mixBig(state, p.M, mod)
	}
	sboxBig(state, mod)
	addConstants(state, c[half*width:], mod)
	state = mixBig(state, p.P, mod)

	offset := (half + 1) * width
	for r := 0; r < p.PartialRounds; r++ {
		sboxBig(state[:1], mod)
		addConstants(state[:1], c[offset+r:], mod)
		state = sparseBig(state, p.S[r], mod)
	}
	offset += p.PartialRounds
	for r := 0; r < half-1; r++ {
		sboxBig(state, mod)
		addConstants(state, c[offset+r*width:], mod)
		state = mixBig(state, p.M, mod)
	}
	sboxBig(state, mod)
	return state
}

func bigIntHash(t *testing.T, in []fr.Element) *big.Int {
	t.Helper()
	p, err := params.New(3, params.Standard)
	if err != nil {
		t.Fatal(err)
	}
	return mixBig(bigIntPermute(t, in), p.M, fr.Modulus())[0]
}

func elemsToBig(es []fr.Element) []*big.Int {
	out := make([]*big.Int, len(es))
	for i := range es {
		out[i] = es[i].BigInt(new(big.Int))
	}
	return out
}

func addConstants(state, c []*big.Int, mod *big.Int) {
	for i := range state {
		state[i].Add(state[i], c[i])
		state[i].Mod(state[i], mod)
	}
}

func sboxBig(state []*big.Int, mod *big.Int) {
	five := big.NewInt(5)
	for i := range state {
		state[i].Exp(state[i], five, mod)
	}
}

func mixBig(state []*big.Int, m params.Matrix, mod *big.Int) []*big.Int {
	out := make([]*big.Int, len(state))
	for i := range m {
		out[i] = new(big.Int)
		for j := range state {
			term := m[i][j].BigInt(new(big.Int))
			term.Mul(term, state[j])
			out[i].Add(out[i], term)
		}
		out[i].Mod(out[i], mod)
	}
	return out
}

func sparseBig(state []*big.Int, s params.Sparse, mod *big.Int) []*big.Int {
	return mixBig(state, s.Dense(), mod)
}
