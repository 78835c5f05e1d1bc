package main

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vocdoni/poseidonfold"
	gposeidon "github.com/vocdoni/poseidonfold/gnark/poseidonfold"
)

func init() {
	segmentFlags(proveCmd)
}

var proveCmd = &cobra.Command{
	Use:   "prove [state...]",
	Short: "Prove every segment of one permutation with groth16 over BN254",
	RunE: func(cmd *cobra.Command, args []string) error {
		perm, err := poseidonfold.Default()
		if err != nil {
			return err
		}
		segs, err := cutSchedule(perm.Schedule())
		if err != nil {
			return err
		}
		state, err := initialState(perm, args)
		if err != nil {
			return err
		}

		log := logger.Logger().With().Int("segments", len(segs)).Logger()
		bar := progressbar.Default(int64(len(segs)), "proving segments")
		var digest fr.Element
		for i, seg := range segs {
			start := time.Now()
			next, _, err := perm.Step(state, seg)
			if err != nil {
				return err
			}

			var circuit, assignment frontend.Circuit
			if i == len(segs)-1 {
				if digest, err = perm.Digest(next); err != nil {
					return err
				}
				final := gposeidon.NewFinalStepCircuit(seg, len(state))
				copy(final.In, variables(state))
				final.Digest = digest
				circuit, assignment = gposeidon.NewFinalStepCircuit(seg, len(state)), final
			} else {
				step := gposeidon.NewStepCircuit(seg, len(state))
				copy(step.In, variables(state))
				copy(step.Out, variables(next))
				circuit, assignment = gposeidon.NewStepCircuit(seg, len(state)), step
			}

			nbConstraints, err := proveSegment(circuit, assignment)
			if err != nil {
				return errors.Wrapf(err, "segment %d %s", i, seg)
			}
			log.Info().
				Int("segment", i).
				Int("start", seg.Start).
				Int("end", seg.End).
				Int("constraints", nbConstraints).
				Bool("final", i == len(segs)-1).
				Dur("took", time.Since(start)).
				Msg("segment proven")
			state = next
			if err := bar.Add(1); err != nil {
				return errors.Wrap(err, "progress")
			}
		}
		fmt.Println("digest", digest.String())
		return nil
	},
}

// proveSegment compiles circuit, runs a groth16 setup and proves and verifies
// assignment. It returns the number of constraints.
func proveSegment(circuit, assignment frontend.Circuit) (int, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return 0, errors.Wrap(err, "compile")
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return 0, errors.Wrap(err, "setup")
	}
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return 0, errors.Wrap(err, "witness")
	}
	publicWitness, err := witness.Public()
	if err != nil {
		return 0, errors.Wrap(err, "public witness")
	}
	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return 0, errors.Wrap(err, "prove")
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return 0, errors.Wrap(err, "verify")
	}
	return ccs.GetNbConstraints(), nil
}

func variables(es []fr.Element) []frontend.Variable {
	out := make([]frontend.Variable, len(es))
	for i := range es {
		out[i] = es[i]
	}
	return out
}
