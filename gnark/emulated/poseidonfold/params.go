package poseidonfold

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"

	"github.com/vocdoni/poseidonfold/internal/params"
)

// FrParams defines the emulated parameters for the BN254 scalar field.
type FrParams = emparams.BN254Fr

// Element is an emulated BN254 scalar.
type Element = emulated.Element[FrParams]

func constElement(f *emulated.Field[FrParams], fe fr.Element) *Element {
	return f.NewElement(fe.BigInt(new(big.Int)))
}

var defaultTables = sync.OnceValues(func() (*params.Parameters, error) {
	return params.New(3, params.Standard)
})

func nativeParams(width int, strength params.Strength) (*params.Parameters, error) {
	if width == 3 && strength == params.Standard {
		return defaultTables()
	}
	return params.New(width, strength)
}
